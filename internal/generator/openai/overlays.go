package openai

import (
	"context"
	"fmt"
	"strings"

	"shorts_pipeline/internal/domain"
)

const (
	maxOverlays = 5
	maxIdeas    = 5
)

type overlayPayload struct {
	Overlays []string `json:"overlays"`
}

type ideaPayload struct {
	Ideas []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"ideas"`
}

// GenerateOverlays returns up to five short on-screen captions for script.
func (c *Client) GenerateOverlays(ctx context.Context, script string, o *domain.Opportunity) ([]string, error) {
	prompt := fmt.Sprintf(`Write up to %d punchy on-screen captions for a vertical short video.
Each caption must be at most 6 words and follow the narration order.
Respond with JSON: {"overlays": ["..."]}

Subject: %s
Narration:
%s`, maxOverlays, o.ProductName, script)

	text, err := c.complete(ctx, completion{
		system:      "You write on-screen captions for short-form video and only respond with valid JSON.",
		user:        prompt,
		maxTokens:   200,
		temperature: 0.7,
		json:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate overlays: %w", err)
	}

	payload, err := decodeJSON[overlayPayload](text)
	if err != nil {
		return nil, fmt.Errorf("generate overlays: %w: %w", domain.ErrCapabilityUnavailable, err)
	}

	var overlays []string
	for _, line := range payload.Overlays {
		if line = strings.TrimSpace(line); line != "" {
			overlays = append(overlays, line)
		}
		if len(overlays) == maxOverlays {
			break
		}
	}
	return overlays, nil
}

// GenerateIdeas derives up to n link-free video topics from an affiliate
// opportunity's niche.
func (c *Client) GenerateIdeas(ctx context.Context, o *domain.Opportunity, n int) ([]domain.Idea, error) {
	n = min(max(n, 1), maxIdeas)

	category := "general"
	if o.Category != nil && strings.TrimSpace(*o.Category) != "" {
		category = strings.TrimSpace(*o.Category)
	}

	prompt := fmt.Sprintf(`Suggest %d short educational video topics for people interested in %s.
They are inspired by the product "%s" but must NOT mention it, any brand, price or link.
Respond with JSON: {"ideas": [{"title": "...", "description": "..."}]}`, n, category, o.ProductName)

	text, err := c.complete(ctx, completion{
		system:      "You are a content strategist for short-form video and only respond with valid JSON.",
		user:        prompt,
		maxTokens:   600,
		temperature: 0.9,
		json:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate ideas: %w", err)
	}

	payload, err := decodeJSON[ideaPayload](text)
	if err != nil {
		return nil, fmt.Errorf("generate ideas: %w: %w", domain.ErrCapabilityUnavailable, err)
	}

	ideas := make([]domain.Idea, 0, n)
	for _, idea := range payload.Ideas {
		title := strings.TrimSpace(idea.Title)
		if title == "" {
			continue
		}
		ideas = append(ideas, domain.Idea{Title: title, Description: strings.TrimSpace(idea.Description)})
		if len(ideas) == n {
			break
		}
	}
	return ideas, nil
}
