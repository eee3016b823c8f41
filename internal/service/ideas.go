package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"shorts_pipeline/internal/domain"
)

const (
	organicPlatform     = "organic"
	ideasPerOpportunity = 5
)

// IdeaService derives link-free organic opportunities from affiliate ones.
type IdeaService struct {
	opportunities OpportunityStore
	ideas         IdeaGenerator
	logger        *slog.Logger
}

func NewIdeaService(opportunities OpportunityStore, ideas IdeaGenerator, logger *slog.Logger) *IdeaService {
	return &IdeaService{
		opportunities: opportunities,
		ideas:         ideas,
		logger:        logger.With("component", "ideas"),
	}
}

// GenerateOrganicIdeas asks for up to five ideas related to the affiliate
// opportunity id and stores each new one in the organic pool. Ideas whose
// title is already stored are skipped.
func (s *IdeaService) GenerateOrganicIdeas(ctx context.Context, id uuid.UUID) ([]domain.Opportunity, error) {
	source, err := s.opportunities.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find opportunity: %w", err)
	}
	if !source.IsAffiliate {
		return nil, fmt.Errorf("opportunity %s is already organic: %w", id, domain.ErrInvalidTrigger)
	}

	s.logger.Info("generating organic ideas", "opportunity_id", id, "product", source.ProductName)

	ideas, err := s.ideas.GenerateIdeas(ctx, source, ideasPerOpportunity)
	if err != nil {
		return nil, fmt.Errorf("generate ideas: %w", err)
	}

	created := make([]domain.Opportunity, 0, len(ideas))
	for _, idea := range ideas {
		title := strings.TrimSpace(idea.Title)
		if title == "" {
			continue
		}

		o := domain.Opportunity{
			Platform:    organicPlatform,
			ProductName: title,
			ProductURL:  organicKey(title),
			Category:    source.Category,
			IsAffiliate: false,
			Images:      []string{},
			ScrapedAt:   time.Now(),
		}
		if desc := strings.TrimSpace(idea.Description); desc != "" {
			o.Description = &desc
		}

		ok, err := s.opportunities.Create(ctx, &o)
		if err != nil {
			return created, fmt.Errorf("save idea %q: %w", title, err)
		}
		if !ok {
			s.logger.Debug("organic idea already exists", "title", title)
			continue
		}
		created = append(created, o)
	}

	s.logger.Info("organic ideas stored", "opportunity_id", id, "generated", len(ideas), "created", len(created))
	return created, nil
}

// organicKey builds the dedup key for an idea: lower-case words joined by
// single dashes.
func organicKey(title string) string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return organicPlatform + ":" + strings.Join(fields, "-")
}
