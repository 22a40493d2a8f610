package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
)

// CaptureChangelogEntry stores one competitor/changelog item.
func (s *Service) CaptureChangelogEntry(ctx context.Context, input ChangelogInput) (ChangelogEntryView, error) {
	source := strings.TrimSpace(input.Source)
	title := strings.TrimSpace(input.Title)
	if source == "" || title == "" {
		return ChangelogEntryView{}, fmt.Errorf("%w: source and title are required", domain.ErrInvalidInput)
	}
	if input.URL != "" {
		parsed, err := url.Parse(input.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return ChangelogEntryView{}, fmt.Errorf("%w: invalid url", domain.ErrInvalidInput)
		}
	}

	entry, err := s.changelog.Insert(ctx, domain.ChangelogEntry{
		ID:         uuid.New(),
		Source:     source,
		Title:      title,
		URL:        strings.TrimSpace(input.URL),
		Summary:    strings.TrimSpace(input.Summary),
		Tags:       input.Tags,
		CapturedAt: s.nowFn(),
	})
	if err != nil {
		return ChangelogEntryView{}, err
	}
	return toChangelogView(entry), nil
}

// ListChangelog returns the most recent captured entries.
func (s *Service) ListChangelog(ctx context.Context, limit int) ([]ChangelogEntryView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := s.changelog.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]ChangelogEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toChangelogView(entry))
	}
	return views, nil
}

func toChangelogView(entry domain.ChangelogEntry) ChangelogEntryView {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	return ChangelogEntryView{
		ID:         entry.ID,
		Source:     entry.Source,
		Title:      entry.Title,
		URL:        entry.URL,
		Summary:    entry.Summary,
		Tags:       tags,
		CapturedAt: entry.CapturedAt,
	}
}
