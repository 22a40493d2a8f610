package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

type ideaRepository struct {
	db *gorm.DB
}

func (r *ideaRepository) Create(ctx context.Context, params ports.IdeaCreateParams, createdAt time.Time) (domain.Idea, error) {
	rec := ideaModel{
		Title:         params.Title,
		ImpactLevel:   params.ImpactLevel,
		ContentType:   params.ContentType,
		Source:        params.Source,
		RequestedDate: params.RequestedDate,
		Status:        domain.IdeaStatusUnrouted,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Idea{}, err
	}
	return toDomainIdea(rec), nil
}

func (r *ideaRepository) GetByID(ctx context.Context, ideaID uuid.UUID) (domain.Idea, error) {
	var rec ideaModel
	if err := r.db.WithContext(ctx).Where("idea_id = ?", ideaID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Idea{}, domain.ErrNotFound
		}
		return domain.Idea{}, err
	}
	return toDomainIdea(rec), nil
}

func (r *ideaRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Idea, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var rows []ideaModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Idea, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainIdea(row))
	}
	return result, nil
}

func (r *ideaRepository) UpdateStatus(ctx context.Context, ideaID uuid.UUID, status string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&ideaModel{}).
		Where("idea_id = ?", ideaID).
		Updates(map[string]any{"status": status, "updated_at": updatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
