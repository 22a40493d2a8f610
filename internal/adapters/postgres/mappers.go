package postgres

import (
	"encoding/json"
	"time"

	"github.com/contentpipe/scheduler/internal/domain"
)

func toDomainRule(rec ruleModel) domain.RoutingRule {
	conditions := map[string][]string{}
	_ = json.Unmarshal([]byte(rec.Conditions), &conditions)
	var routesTo []string
	_ = json.Unmarshal([]byte(rec.RoutesTo), &routesTo)

	return domain.RoutingRule{
		ID:             rec.RuleID,
		Name:           rec.Name,
		Description:    rec.Description,
		Priority:       rec.Priority,
		Conditions:     conditions,
		RoutesTo:       routesTo,
		YouTubeVersion: rec.YouTubeVersion,
		IsActive:       rec.IsActive,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toRuleModel(rule domain.RoutingRule) ruleModel {
	conditions, _ := json.Marshal(rule.Conditions)
	routesTo, _ := json.Marshal(rule.RoutesTo)
	return ruleModel{
		RuleID:         rule.ID,
		Name:           rule.Name,
		Description:    rule.Description,
		Priority:       rule.Priority,
		Conditions:     string(conditions),
		RoutesTo:       string(routesTo),
		YouTubeVersion: rule.YouTubeVersion,
		IsActive:       rule.IsActive,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}

func toDomainIdea(rec ideaModel) domain.Idea {
	return domain.Idea{
		ID:            rec.IdeaID,
		Title:         rec.Title,
		ImpactLevel:   rec.ImpactLevel,
		ContentType:   rec.ContentType,
		Source:        rec.Source,
		RequestedDate: rec.RequestedDate,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func toDomainDecision(rec routingModel) domain.RoutingDecision {
	var staggerRaw map[string]string
	_ = json.Unmarshal([]byte(rec.StaggerDates), &staggerRaw)
	var staggerDates map[string]time.Time
	if len(staggerRaw) > 0 {
		staggerDates = make(map[string]time.Time, len(staggerRaw))
		for dest, value := range staggerRaw {
			if date, err := domain.ParseDate(value); err == nil {
				staggerDates[dest] = date
			}
		}
	}

	return domain.RoutingDecision{
		ID:             rec.DecisionID,
		IdeaID:         rec.IdeaID,
		RoutedTo:       rec.RoutedTo,
		Tier:           rec.Tier,
		CalendarDate:   domain.NormalizeDate(rec.CalendarDate),
		IsStaggered:    rec.IsStaggered,
		StaggerDates:   staggerDates,
		YouTubeVersion: rec.YouTubeVersion,
		Status:         rec.Status,
		CreatedAt:      rec.CreatedAt,
	}
}

func toRoutingModel(d domain.RoutingDecision) routingModel {
	staggerRaw := map[string]string{}
	for dest, date := range d.StaggerDates {
		staggerRaw[dest] = domain.FormatDate(date)
	}
	stagger, _ := json.Marshal(staggerRaw)
	return routingModel{
		DecisionID:     d.ID,
		IdeaID:         d.IdeaID,
		RoutedTo:       d.RoutedTo,
		Tier:           d.Tier,
		CalendarDate:   domain.NormalizeDate(d.CalendarDate),
		IsStaggered:    d.IsStaggered,
		StaggerDates:   string(stagger),
		YouTubeVersion: d.YouTubeVersion,
		Status:         d.Status,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.CreatedAt,
	}
}

func toDomainChangelog(rec changelogModel) domain.ChangelogEntry {
	var tags []string
	_ = json.Unmarshal([]byte(rec.Tags), &tags)
	return domain.ChangelogEntry{
		ID:         rec.EntryID,
		Source:     rec.Source,
		Title:      rec.Title,
		URL:        rec.URL,
		Summary:    rec.Summary,
		Tags:       tags,
		CapturedAt: rec.CapturedAt,
	}
}

func toDomainToken(rec subscriberTokenModel) domain.SubscriberToken {
	return domain.SubscriberToken{
		ID:              rec.TokenID,
		SubscriberEmail: rec.SubscriberEmail,
		Scope:           rec.Scope,
		SecretHash:      rec.SecretHash,
		IssuedAt:        rec.IssuedAt,
		ExpiresAt:       rec.ExpiresAt,
		RevokedAt:       rec.RevokedAt,
	}
}
