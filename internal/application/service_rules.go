package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
)

// ListRules returns the full rule set, active and inactive, ordered by
// priority then id.
func (s *Service) ListRules(ctx context.Context) ([]RuleView, error) {
	rules, err := s.rules.List(ctx, true)
	if err != nil {
		return nil, err
	}
	views := make([]RuleView, 0, len(rules))
	for _, rule := range rules {
		views = append(views, toRuleView(rule))
	}
	return views, nil
}

func (s *Service) GetRule(ctx context.Context, ruleID uuid.UUID) (RuleView, error) {
	rule, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return RuleView{}, err
	}
	return toRuleView(rule), nil
}

// CreateRule validates and stores a new routing rule. Condition attribute
// names are checked against the recognized set at creation time so typos fail
// loudly instead of never matching.
func (s *Service) CreateRule(ctx context.Context, input RuleInput) (RuleView, error) {
	now := s.nowFn()
	rule := domain.RoutingRule{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Priority:       input.Priority,
		Conditions:     input.Conditions,
		RoutesTo:       input.RoutesTo,
		YouTubeVersion: strings.TrimSpace(input.YouTubeVersion),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}
	if rule.Conditions == nil {
		rule.Conditions = map[string][]string{}
	}
	if err := domain.ValidateRule(rule); err != nil {
		return RuleView{}, err
	}
	created, err := s.rules.Create(ctx, rule)
	if err != nil {
		return RuleView{}, err
	}
	return toRuleView(created), nil
}

// UpdateRule applies a partial update: only fields present in the input
// change. The merged result is re-validated before it is written.
func (s *Service) UpdateRule(ctx context.Context, ruleID uuid.UUID, input RuleUpdateInput) (RuleView, error) {
	current, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		return RuleView{}, err
	}

	merged := current
	if input.Name != nil {
		merged.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		merged.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		merged.Priority = *input.Priority
	}
	if input.Conditions != nil {
		merged.Conditions = *input.Conditions
		if merged.Conditions == nil {
			merged.Conditions = map[string][]string{}
		}
	}
	if input.RoutesTo != nil {
		merged.RoutesTo = *input.RoutesTo
	}
	if input.YouTubeVersion != nil {
		merged.YouTubeVersion = strings.TrimSpace(*input.YouTubeVersion)
	}
	if input.IsActive != nil {
		merged.IsActive = *input.IsActive
	}
	if err := domain.ValidateRule(merged); err != nil {
		return RuleView{}, err
	}

	updated, err := s.rules.Update(ctx, ruleID, ruleUpdateParams(input), s.nowFn())
	if err != nil {
		return RuleView{}, fmt.Errorf("update rule: %w", err)
	}
	return toRuleView(updated), nil
}

// DeleteRule removes a rule and returns the deleted resource.
func (s *Service) DeleteRule(ctx context.Context, ruleID uuid.UUID) (RuleView, error) {
	deleted, err := s.rules.Delete(ctx, ruleID)
	if err != nil {
		return RuleView{}, err
	}
	return toRuleView(deleted), nil
}

func toRuleView(rule domain.RoutingRule) RuleView {
	return RuleView{
		ID:             rule.ID,
		Name:           rule.Name,
		Description:    rule.Description,
		Priority:       rule.Priority,
		Conditions:     rule.Conditions,
		RoutesTo:       rule.RoutesTo,
		YouTubeVersion: rule.YouTubeVersion,
		IsActive:       rule.IsActive,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}
