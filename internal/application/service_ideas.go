package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

// CreateIdea validates and stores a new content idea in unrouted state.
func (s *Service) CreateIdea(ctx context.Context, input IdeaInput) (IdeaView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return IdeaView{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateImpactLevel(input.ImpactLevel); err != nil {
		return IdeaView{}, err
	}

	var requested *time.Time
	if input.RequestedDate != "" {
		date, err := domain.ParseDate(input.RequestedDate)
		if err != nil {
			return IdeaView{}, fmt.Errorf("%w: requested_date %q", domain.ErrInvalidDateFormat, input.RequestedDate)
		}
		requested = &date
	}

	idea, err := s.ideas.Create(ctx, ports.IdeaCreateParams{
		Title:         title,
		ImpactLevel:   input.ImpactLevel,
		ContentType:   strings.TrimSpace(input.ContentType),
		Source:        strings.TrimSpace(input.Source),
		RequestedDate: requested,
	}, s.nowFn())
	if err != nil {
		return IdeaView{}, err
	}
	return toIdeaView(idea), nil
}

func (s *Service) GetIdea(ctx context.Context, ideaID uuid.UUID) (IdeaView, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return IdeaView{}, err
	}
	return toIdeaView(idea), nil
}

func (s *Service) ListIdeas(ctx context.Context, status string, limit, offset int) ([]IdeaView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	ideas, err := s.ideas.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]IdeaView, 0, len(ideas))
	for _, idea := range ideas {
		views = append(views, toIdeaView(idea))
	}
	return views, nil
}

func toIdeaView(idea domain.Idea) IdeaView {
	view := IdeaView{
		ID:          idea.ID,
		Title:       idea.Title,
		ImpactLevel: idea.ImpactLevel,
		ContentType: idea.ContentType,
		Source:      idea.Source,
		Status:      idea.Status,
		CreatedAt:   idea.CreatedAt,
		UpdatedAt:   idea.UpdatedAt,
	}
	if idea.RequestedDate != nil {
		view.RequestedDate = domain.FormatDate(*idea.RequestedDate)
	}
	return view
}
