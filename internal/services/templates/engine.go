// Package templates renders deterministic outreach message templates.
// Templates are the zero-cost floor of the personalization pipeline:
// they always produce a usable message, with or without AI enhancement.
package templates

import (
	"fmt"
	"strings"

	"github.com/Egham-7/llm-router/internal/models"
)

// genericFallback is used when a category has no entry for the campaign
// and no sales_outreach default. It only needs the prospect's first name.
const genericFallback = "Hi {{firstName}}, would love to connect!"

var messageTemplates = map[models.TemplateCategory]map[models.CampaignType]string{
	models.TemplateConnectionRequest: {
		models.CampaignSalesOutreach: "Hi {{firstName}}, I'd love to connect and share insights on {{industry}} trends that could benefit {{company}}.",
		models.CampaignRecruiting: "Hi {{firstName}}, impressed by your work at {{company}}. Would love to connect and discuss opportunities in {{industry}}.",
		models.CampaignBusinessDevelopment: "Hi {{firstName}}, I see {{company}} is making great strides in {{industry}}. Would love to explore potential partnerships.",
		models.CampaignNetworking: "Hi {{firstName}}, fellow {{industry}} professional here! Would love to connect and exchange insights.",
	},
	models.TemplateFollowUp1: {
		models.CampaignSalesOutreach: "Thanks for connecting, {{firstName}}! I noticed {{company}} is growing in {{industry}}. Would love to discuss potential synergies.",
		models.CampaignRecruiting: "Thanks for connecting, {{firstName}}! Would love to learn more about your experience at {{company}} and share relevant opportunities.",
		models.CampaignBusinessDevelopment: "Thanks for connecting, {{firstName}}! Excited to explore how we might collaborate given {{company}}'s focus on {{industry}}.",
		models.CampaignNetworking: "Thanks for connecting, {{firstName}}! Always great to connect with fellow {{industry}} professionals.",
	},
	models.TemplateFollowUp2: {
		models.CampaignSalesOutreach: "{{firstName}}, quick question about {{company}}'s approach to {{industry_challenge}}. I have some insights that might be valuable.",
		models.CampaignRecruiting: "{{firstName}}, I came across an exciting {{title}} opportunity that aligns perfectly with your background at {{company}}.",
		models.CampaignBusinessDevelopment: "{{firstName}}, I've been thinking about our conversation on {{industry}} trends. Would love to schedule a brief call to discuss further.",
		models.CampaignNetworking: "{{firstName}}, saw your recent post about {{industry}}! Would love to get your thoughts on the latest trends.",
	},
}

// Engine looks up and renders message templates.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Template returns the raw template for a category and campaign.
// Unknown campaigns fall back to the category's sales_outreach entry,
// unknown categories to a generic connection line.
func (e *Engine) Template(category models.TemplateCategory, campaign models.CampaignType) string {
	byCampaign, ok := messageTemplates[category]
	if !ok {
		return genericFallback
	}
	if tmpl, ok := byCampaign[campaign]; ok {
		return tmpl
	}
	if tmpl, ok := byCampaign[models.CampaignSalesOutreach]; ok {
		return tmpl
	}
	return genericFallback
}

// Render substitutes prospect data into the template. Every known
// placeholder is replaced; the rendered message never contains one.
func (e *Engine) Render(category models.TemplateCategory, campaign models.CampaignType, prospect models.ProspectData) string {
	return e.RenderTemplate(e.Template(category, campaign), prospect)
}

// RenderTemplate substitutes placeholders in an arbitrary template string.
func (e *Engine) RenderTemplate(tmpl string, prospect models.ProspectData) string {
	challenge := prospect.IndustryChallenge
	if challenge == "" {
		challenge = "growth"
	}
	r := strings.NewReplacer(
		"{{firstName}}", prospect.FirstName,
		"{{company}}", prospect.Company,
		"{{title}}", prospect.Title,
		"{{industry}}", prospect.Industry,
		"{{industry_challenge}}", challenge,
	)
	return r.Replace(tmpl)
}

// TemplateKey identifies which template produced a message, e.g.
// "follow_up_1.recruiting".
func TemplateKey(category models.TemplateCategory, campaign models.CampaignType) string {
	return fmt.Sprintf("%s.%s", category, campaign)
}
