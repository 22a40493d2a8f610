package postgres

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/domain"
)

type changelogRepository struct {
	db *gorm.DB
}

func (r *changelogRepository) Insert(ctx context.Context, entry domain.ChangelogEntry) (domain.ChangelogEntry, error) {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return domain.ChangelogEntry{}, err
	}
	rec := changelogModel{
		EntryID:    entry.ID,
		Source:     entry.Source,
		Title:      entry.Title,
		URL:        entry.URL,
		Summary:    entry.Summary,
		Tags:       string(raw),
		CapturedAt: entry.CapturedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.ChangelogEntry{}, err
	}
	return toDomainChangelog(rec), nil
}

func (r *changelogRepository) ListRecent(ctx context.Context, limit int) ([]domain.ChangelogEntry, error) {
	var rows []changelogModel
	if err := r.db.WithContext(ctx).
		Order("captured_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ChangelogEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainChangelog(row))
	}
	return result, nil
}
