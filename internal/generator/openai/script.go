package openai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shorts_pipeline/internal/domain"
)

const scriptSystemPrompt = "You are a viral video script writer. Create engaging, short-form content that drives action."

// WriteScript generates a narration script. An empty answer yields a
// placeholder script instead of an error.
func (c *Client) WriteScript(ctx context.Context, req domain.ScriptRequest) (string, error) {
	o := req.Opportunity
	prompt := organicPrompt(o, req.Style)
	if req.IsAffiliate {
		prompt = affiliatePrompt(o, req.Style)
	}

	script, err := c.complete(ctx, completion{
		system:      scriptSystemPrompt,
		user:        prompt,
		maxTokens:   500,
		temperature: 0.8,
	})
	if isEmpty(err) {
		c.logger.Warn("empty script from provider, using placeholder",
			"opportunity_id", o.ID,
			"error", err,
		)
		return PlaceholderScript(o, req.IsAffiliate), nil
	}
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}

	c.logger.Info("script generated", "opportunity_id", o.ID, "style", req.Style, "chars", len(script))
	return strings.Trim(script, "\""), nil
}

// PlaceholderScript is the narration used when the provider answers with
// nothing usable.
func PlaceholderScript(o *domain.Opportunity, affiliate bool) string {
	if affiliate {
		return fmt.Sprintf("Stop scrolling. %s is the find you did not know you needed. Tap the link below to check it out before it is gone.", o.ProductName)
	}
	return fmt.Sprintf("Here is something worth knowing: %s. Save this for later and follow for more.", o.ProductName)
}

func affiliatePrompt(o *domain.Opportunity, style string) string {
	var b strings.Builder
	b.WriteString("Create a viral video transcript for this product that will be read by a text-to-speech voice:\n\n")
	fmt.Fprintf(&b, "Product: %s\n", o.ProductName)
	writeOptional(&b, "Category", o.Category)
	writeOptional(&b, "Description", o.Description)
	if o.Price != nil {
		fmt.Fprintf(&b, "Price: $%s\n", strconv.FormatFloat(*o.Price, 'f', -1, 64))
	}
	if o.CommissionRate != nil {
		fmt.Fprintf(&b, "Commission: %s%%\n", strconv.FormatFloat(*o.CommissionRate, 'f', -1, 64))
	}
	fmt.Fprintf(&b, "\nStyle: %s\n\n", style)
	b.WriteString(`Requirements:
- 15-30 seconds when spoken
- Hook in the first 3 seconds
- Mention the product by name and end with a call to action to use the link
- Natural, conversational tone that is easy to pronounce
- Write ONLY the spoken words, no timing cues or production notes
`)
	return b.String()
}

func organicPrompt(o *domain.Opportunity, style string) string {
	var b strings.Builder
	b.WriteString("Create a short educational video transcript that will be read by a text-to-speech voice.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", o.ProductName)
	writeOptional(&b, "Context", o.Description)
	fmt.Fprintf(&b, "\nStyle: %s\n\n", style)
	b.WriteString(`Requirements:
- 15-30 seconds when spoken
- Hook in the first 3 seconds
- Do NOT mention any product, brand, price or link
- End by inviting viewers to follow for more
- Write ONLY the spoken words, no timing cues or production notes
`)
	return b.String()
}

func writeOptional(b *strings.Builder, label string, value *string) {
	if value != nil && strings.TrimSpace(*value) != "" {
		fmt.Fprintf(b, "%s: %s\n", label, strings.TrimSpace(*value))
	}
}
