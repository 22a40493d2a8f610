package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

type ruleRepository struct {
	db *gorm.DB
}

func (r *ruleRepository) List(ctx context.Context, includeInactive bool) ([]domain.RoutingRule, error) {
	query := r.db.WithContext(ctx).Order("priority ASC, rule_id ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var rows []ruleModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.RoutingRule, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainRule(row))
	}
	return result, nil
}

func (r *ruleRepository) GetByID(ctx context.Context, ruleID uuid.UUID) (domain.RoutingRule, error) {
	var rec ruleModel
	if err := r.db.WithContext(ctx).Where("rule_id = ?", ruleID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoutingRule{}, domain.ErrNotFound
		}
		return domain.RoutingRule{}, err
	}
	return toDomainRule(rec), nil
}

func (r *ruleRepository) Create(ctx context.Context, rule domain.RoutingRule) (domain.RoutingRule, error) {
	rec := toRuleModel(rule)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.RoutingRule{}, err
	}
	return toDomainRule(rec), nil
}

func (r *ruleRepository) Update(ctx context.Context, ruleID uuid.UUID, params ports.RuleUpdateParams, updatedAt time.Time) (domain.RoutingRule, error) {
	updates := map[string]any{"updated_at": updatedAt}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Priority != nil {
		updates["priority"] = *params.Priority
	}
	if params.Conditions != nil {
		raw, err := json.Marshal(*params.Conditions)
		if err != nil {
			return domain.RoutingRule{}, err
		}
		updates["conditions"] = string(raw)
	}
	if params.RoutesTo != nil {
		raw, err := json.Marshal(*params.RoutesTo)
		if err != nil {
			return domain.RoutingRule{}, err
		}
		updates["routes_to"] = string(raw)
	}
	if params.YouTubeVersion != nil {
		updates["youtube_version"] = *params.YouTubeVersion
	}
	if params.IsActive != nil {
		updates["is_active"] = *params.IsActive
	}

	res := r.db.WithContext(ctx).Model(&ruleModel{}).Where("rule_id = ?", ruleID).Updates(updates)
	if res.Error != nil {
		return domain.RoutingRule{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.RoutingRule{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, ruleID)
}

func (r *ruleRepository) Delete(ctx context.Context, ruleID uuid.UUID) (domain.RoutingRule, error) {
	deleted, err := r.GetByID(ctx, ruleID)
	if err != nil {
		return domain.RoutingRule{}, err
	}
	if err := r.db.WithContext(ctx).Where("rule_id = ?", ruleID).Delete(&ruleModel{}).Error; err != nil {
		return domain.RoutingRule{}, err
	}
	return deleted, nil
}
