package application

import (
	"context"
	"fmt"
	"time"

	"github.com/contentpipe/scheduler/internal/domain"
)

// Calendar computes the occupancy view for the requested window. With no
// explicit range it falls back to the current UTC week (starting Sunday)
// through DefaultWindowDays-1 days later.
func (s *Service) Calendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error) {
	start, end, err := s.resolveWindow(req)
	if err != nil {
		return CalendarResponse{}, err
	}

	decisions, err := s.routing.ListBetween(ctx, start, end)
	if err != nil {
		return CalendarResponse{}, fmt.Errorf("list routing records: %w", err)
	}

	avail, err := domain.ComputeAvailability(start, end, domain.ExpandDecisions(decisions), s.cfg.SlotsPerDestination)
	if err != nil {
		return CalendarResponse{}, err
	}

	days := make([]CalendarDayView, 0, len(avail.Days))
	for _, day := range avail.Days {
		days = append(days, CalendarDayView{
			Date:                 domain.FormatDate(day.Date),
			Capacity:             day.Capacity,
			ScheduledCount:       len(day.ScheduledItems),
			Available:            len(day.ScheduledItems) < day.Capacity,
			OccupiedDestinations: day.OccupiedDestinations(),
		})
	}

	scheduled := make([]ScheduledIdeaView, 0, len(decisions))
	for _, d := range decisions {
		scheduled = append(scheduled, toScheduledIdeaView(d))
	}

	return CalendarResponse{
		StartDate:      domain.FormatDate(start),
		EndDate:        domain.FormatDate(end),
		Availability:   days,
		ScheduledIdeas: scheduled,
	}, nil
}

// resolveWindow applies the default-window policy at the caller level, as an
// explicit function of the injected clock rather than an implicit read inside
// the calculator.
func (s *Service) resolveWindow(req CalendarRequest) (time.Time, time.Time, error) {
	if req.Start == "" && req.End == "" {
		start, end := domain.DefaultWindow(s.nowFn(), s.cfg.DefaultWindowDays)
		return start, end, nil
	}

	start, err := domain.ParseDate(req.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", domain.ErrInvalidDateFormat, req.Start)
	}
	end, err := domain.ParseDate(req.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", domain.ErrInvalidDateFormat, req.End)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", domain.ErrInvalidRange, req.Start, req.End)
	}
	return start, end, nil
}

func toScheduledIdeaView(d domain.RoutingDecision) ScheduledIdeaView {
	view := ScheduledIdeaView{
		IdeaID:       d.IdeaID,
		RoutedTo:     d.RoutedTo,
		Tier:         d.Tier,
		CalendarDate: domain.FormatDate(d.CalendarDate),
		IsStaggered:  d.IsStaggered,
		Status:       d.Status,
	}
	if len(d.StaggerDates) > 0 {
		view.StaggerDates = make(map[string]string, len(d.StaggerDates))
		for dest, date := range d.StaggerDates {
			view.StaggerDates[dest] = domain.FormatDate(date)
		}
	}
	return view
}
