// Package catalog holds the static registry of approved models. The catalog
// is built once at process start; every accessor is a side-effect-free lookup
// over the immutable table. The first entry is the platform default.
package catalog

import (
	"github.com/Egham-7/llm-router/internal/models"
)

type Catalog struct {
	models []models.ModelDescriptor
	byID   map[string]int
}

// New builds a catalog from the given ordered descriptor list. The order is
// meaningful: entry zero is the platform default model.
func New(descriptors []models.ModelDescriptor) *Catalog {
	c := &Catalog{
		models: descriptors,
		byID:   make(map[string]int, len(descriptors)),
	}
	for i, m := range descriptors {
		c.byID[m.ID] = i
	}
	return c
}

// Default returns the catalog built from the approved model list.
func Default() *Catalog {
	return New(approvedModels)
}

// List returns all catalog models in order.
func (c *Catalog) List() []models.ModelDescriptor {
	out := make([]models.ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}

// ByProvider returns the models offered by one provider.
func (c *Catalog) ByProvider(provider string) []models.ModelDescriptor {
	var out []models.ModelDescriptor
	for _, m := range c.models {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}

// EUHosted returns the models whose inference stays within EU data residency.
func (c *Catalog) EUHosted() []models.ModelDescriptor {
	var out []models.ModelDescriptor
	for _, m := range c.models {
		if m.EUHosted {
			out = append(out, m)
		}
	}
	return out
}

// Recommended returns the models flagged for customer-facing recommendation.
func (c *Catalog) Recommended() []models.ModelDescriptor {
	var out []models.ModelDescriptor
	for _, m := range c.models {
		if m.Recommended {
			out = append(out, m)
		}
	}
	return out
}

// ByID returns the model with the given id, or nil when absent.
func (c *Catalog) ByID(id string) *models.ModelDescriptor {
	if i, ok := c.byID[id]; ok {
		m := c.models[i]
		return &m
	}
	return nil
}

// DefaultModel returns the platform default (first catalog entry).
func (c *Catalog) DefaultModel() models.ModelDescriptor {
	return c.models[0]
}

// DefaultEUModel returns the first EU-hosted model, falling back to the
// platform default when the catalog carries no EU-hosted entry.
func (c *Catalog) DefaultEUModel() models.ModelDescriptor {
	for _, m := range c.models {
		if m.EUHosted {
			return m
		}
	}
	return c.DefaultModel()
}

// ProviderNames maps provider keys to display names.
var ProviderNames = map[string]string{
	"openai":    "OpenAI",
	"anthropic": "Anthropic",
	"mistral":   "Mistral AI",
	"meta":      "Meta",
	"google":    "Google",
	"deepseek":  "DeepSeek",
	"qwen":      "Qwen",
	"xai":       "xAI",
	"cohere":    "Cohere",
	"custom":    "Custom Enterprise",
}
