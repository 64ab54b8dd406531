package budget

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Egham-7/llm-router/internal/models"
)

const (
	redisKeyPrefix = "llm_budget:daily:"

	// Counters expire two days after creation so stale days clean
	// themselves up without a scheduler.
	redisKeyTTL = 48 * time.Hour
)

// incrementScript performs the ceiling check and the increment in one
// round trip.
// KEYS[1]: spend key for the day
// ARGV[1]: amount
// ARGV[2]: ceiling
// Returns {0, current} when the ceiling would be breached, {1, new total}
// on success.
const incrementScript = `
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local amount = tonumber(ARGV[1])
local ceiling = tonumber(ARGV[2])
local next = current + amount
if amount > 0 and next > ceiling then
	return {0, tostring(current)}
end
if next < 0 then
	next = 0
end
redis.call('SET', KEYS[1], tostring(next), 'EX', %d)
return {1, tostring(next)}
`

// RedisStore keeps the spend counter in Redis, suitable when several
// router instances share one daily budget.
type RedisStore struct {
	client *redis.Client
	script string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		script: fmt.Sprintf(incrementScript, int(redisKeyTTL.Seconds())),
	}
}

func (r *RedisStore) key(day string) string {
	return redisKeyPrefix + day
}

func (r *RedisStore) LoadDailySpend(ctx context.Context, day string) (float64, error) {
	val, err := r.client.Get(ctx, r.key(day)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load daily spend for %s: %w", day, err)
	}
	spend, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt daily spend value for %s: %w", day, err)
	}
	return spend, nil
}

func (r *RedisStore) IncrementDailySpend(ctx context.Context, day string, amount, ceiling float64) (float64, error) {
	raw, err := r.client.Eval(ctx, r.script, []string{r.key(day)},
		strconv.FormatFloat(amount, 'f', -1, 64),
		strconv.FormatFloat(ceiling, 'f', -1, 64),
	).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment daily spend for %s: %w", day, err)
	}

	reply, ok := raw.([]any)
	if !ok || len(reply) != 2 {
		return 0, fmt.Errorf("unexpected increment reply for %s: %v", day, raw)
	}
	ok2, _ := reply[0].(int64)
	total, err := strconv.ParseFloat(fmt.Sprint(reply[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt increment total for %s: %w", day, err)
	}

	if ok2 == 0 {
		return total, models.NewBudgetExhaustedError(total, ceiling)
	}
	return total, nil
}

func (r *RedisStore) ResetDay(ctx context.Context, day string) error {
	if err := r.client.Del(ctx, r.key(day)).Err(); err != nil {
		return fmt.Errorf("failed to reset daily spend for %s: %w", day, err)
	}
	return nil
}
