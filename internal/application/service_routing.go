package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

// RouteIdea runs the rule engine for one idea and persists the decision.
// Availability is recomputed from storage immediately before the engine runs;
// the transactional slot insert (unique constraint) is the serialization
// point if another request routed onto the same day in between.
func (s *Service) RouteIdea(ctx context.Context, ideaID uuid.UUID, req RouteRequest) (RouteResponse, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return RouteResponse{}, err
	}
	if idea.Status != domain.IdeaStatusUnrouted {
		return RouteResponse{}, fmt.Errorf("%w: idea is %s", domain.ErrConflict, idea.Status)
	}

	if s.routeGuard != nil {
		acquired, err := s.routeGuard.Acquire(ctx, ideaID, 30*time.Second)
		if err == nil && !acquired {
			return RouteResponse{}, fmt.Errorf("%w: routing already in progress", domain.ErrConflict)
		}
		defer func() { _ = s.routeGuard.Release(ctx, ideaID) }()
	}

	from, err := s.resolveRouteStart(idea, req)
	if err != nil {
		return RouteResponse{}, err
	}

	rules, err := s.rules.List(ctx, false)
	if err != nil {
		return RouteResponse{}, fmt.Errorf("list rules: %w", err)
	}

	horizon := s.cfg.SearchHorizonDays
	if horizon <= 0 {
		horizon = 28
	}
	windowEnd := from.AddDate(0, 0, horizon-1)
	decisions, err := s.routing.ListBetween(ctx, from, windowEnd)
	if err != nil {
		return RouteResponse{}, fmt.Errorf("list routing records: %w", err)
	}
	avail, err := domain.ComputeAvailability(from, windowEnd, domain.ExpandDecisions(decisions), s.cfg.SlotsPerDestination)
	if err != nil {
		return RouteResponse{}, err
	}

	decision, err := domain.Route(idea, rules, avail, domain.RouteOptions{
		From:        from,
		HorizonDays: horizon,
	})
	if err != nil {
		return RouteResponse{}, err
	}
	decision.CreatedAt = s.nowFn()

	payload, _ := json.Marshal(map[string]any{
		"decision_id":   decision.ID,
		"idea_id":       decision.IdeaID,
		"routed_to":     decision.RoutedTo,
		"tier":          decision.Tier,
		"calendar_date": domain.FormatDate(decision.CalendarDate),
		"is_staggered":  decision.IsStaggered,
		"routed_at":     decision.CreatedAt,
	})
	event := ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    "idea.routed",
		PartitionKey: decision.IdeaID.String(),
		Payload:      payload,
		OccurredAt:   decision.CreatedAt,
	}

	persisted, err := s.routing.Create(ctx, decision, event)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			// A concurrent request won the slot; the caller retries with
			// fresh availability.
			return RouteResponse{}, err
		}
		return RouteResponse{}, fmt.Errorf("persist routing decision: %w", err)
	}

	if err := s.ideas.UpdateStatus(ctx, ideaID, domain.IdeaStatusScheduled, s.nowFn()); err != nil {
		return RouteResponse{}, fmt.Errorf("update idea status: %w", err)
	}

	return toRouteResponse(persisted), nil
}

// PublishIdea and CancelIdea apply the externally-driven lifecycle
// transitions and keep the routing record in step with the idea.

func (s *Service) PublishIdea(ctx context.Context, ideaID uuid.UUID) error {
	return s.transitionIdea(ctx, ideaID, domain.IdeaStatusPublished, domain.RoutingStatusPublished, "idea.published")
}

func (s *Service) CancelIdea(ctx context.Context, ideaID uuid.UUID) error {
	return s.transitionIdea(ctx, ideaID, domain.IdeaStatusCancelled, domain.RoutingStatusCancelled, "idea.cancelled")
}

func (s *Service) transitionIdea(ctx context.Context, ideaID uuid.UUID, ideaStatus, routingStatus, eventType string) error {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}
	if !domain.CanTransitionIdea(idea.Status, ideaStatus) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, idea.Status, ideaStatus)
	}

	now := s.nowFn()
	if idea.Status == domain.IdeaStatusScheduled {
		decision, err := s.routing.GetByIdeaID(ctx, ideaID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err == nil {
			if err := s.routing.UpdateStatus(ctx, decision.ID, routingStatus, now); err != nil {
				return fmt.Errorf("update routing status: %w", err)
			}
		}
	}
	if err := s.ideas.UpdateStatus(ctx, ideaID, ideaStatus, now); err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}

	payload, _ := json.Marshal(map[string]any{
		"idea_id":       ideaID,
		"status":        ideaStatus,
		"transition_at": now,
	})
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: ideaID.String(),
		Payload:      payload,
		OccurredAt:   now,
	})
}

// RoutingForIdea returns the persisted decision for an idea.
func (s *Service) RoutingForIdea(ctx context.Context, ideaID uuid.UUID) (RouteResponse, error) {
	decision, err := s.routing.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return RouteResponse{}, err
	}
	return toRouteResponse(decision), nil
}

func (s *Service) resolveRouteStart(idea domain.Idea, req RouteRequest) (time.Time, error) {
	if req.From != "" {
		from, err := domain.ParseDate(req.From)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: from %q", domain.ErrInvalidDateFormat, req.From)
		}
		return from, nil
	}
	if idea.RequestedDate != nil {
		return domain.NormalizeDate(*idea.RequestedDate), nil
	}
	return domain.NormalizeDate(s.nowFn()), nil
}

func toRouteResponse(d domain.RoutingDecision) RouteResponse {
	res := RouteResponse{
		DecisionID:     d.ID,
		IdeaID:         d.IdeaID,
		RoutedTo:       d.RoutedTo,
		Tier:           d.Tier,
		CalendarDate:   domain.FormatDate(d.CalendarDate),
		IsStaggered:    d.IsStaggered,
		YouTubeVersion: d.YouTubeVersion,
		Status:         d.Status,
	}
	if len(d.StaggerDates) > 0 {
		res.StaggerDates = make(map[string]string, len(d.StaggerDates))
		for dest, date := range d.StaggerDates {
			res.StaggerDates[dest] = domain.FormatDate(date)
		}
	}
	return res
}
