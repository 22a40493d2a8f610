package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/domain"
)

type tokenRepository struct {
	db *gorm.DB
}

func (r *tokenRepository) Insert(ctx context.Context, token domain.SubscriberToken) error {
	rec := subscriberTokenModel{
		TokenID:         token.ID,
		SubscriberEmail: token.SubscriberEmail,
		Scope:           token.Scope,
		SecretHash:      token.SecretHash,
		IssuedAt:        token.IssuedAt,
		ExpiresAt:       token.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, tokenID uuid.UUID) (domain.SubscriberToken, error) {
	var rec subscriberTokenModel
	if err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriberToken{}, domain.ErrNotFound
		}
		return domain.SubscriberToken{}, err
	}
	return toDomainToken(rec), nil
}

func (r *tokenRepository) List(ctx context.Context, limit, offset int) ([]domain.SubscriberToken, error) {
	var rows []subscriberTokenModel
	if err := r.db.WithContext(ctx).
		Order("issued_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.SubscriberToken, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainToken(row))
	}
	return result, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&subscriberTokenModel{}).
		Where("token_id = ?", tokenID).
		Where("revoked_at IS NULL").
		Update("revoked_at", revokedAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&subscriberTokenModel{}).Where("token_id = ?", tokenID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}
