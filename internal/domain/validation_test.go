package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validRule() RoutingRule {
	return RoutingRule{
		ID:         uuid.New(),
		Name:       "major releases",
		Priority:   1,
		Conditions: map[string][]string{AttrImpactLevel: {"major"}},
		RoutesTo:   []string{DestinationYouTube, DestinationSubstack},
		IsActive:   true,
	}
}

func TestValidateRuleAcceptsWellFormedRule(t *testing.T) {
	t.Parallel()

	if err := ValidateRule(validRule()); err != nil {
		t.Fatalf("valid rule rejected: %v", err)
	}
}

func TestValidateRuleRejectsUnknownConditionAttribute(t *testing.T) {
	t.Parallel()

	rule := validRule()
	rule.Conditions = map[string][]string{"audience": {"developers"}}
	if err := ValidateRule(rule); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown attribute, got %v", err)
	}
}

func TestValidateRuleRejectsEmptyConditionValues(t *testing.T) {
	t.Parallel()

	rule := validRule()
	rule.Conditions = map[string][]string{AttrImpactLevel: {}}
	if err := ValidateRule(rule); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty value list, got %v", err)
	}

	rule.Conditions = map[string][]string{AttrImpactLevel: {"  "}}
	if err := ValidateRule(rule); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank value, got %v", err)
	}
}

func TestValidateRoutesTo(t *testing.T) {
	t.Parallel()

	if err := ValidateRoutesTo(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty routes_to, got %v", err)
	}
	if err := ValidateRoutesTo([]string{"myspace"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown destination, got %v", err)
	}
	if err := ValidateRoutesTo([]string{DestinationBlog, DestinationBlog}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate destination, got %v", err)
	}
	if err := ValidateRoutesTo([]string{DestinationBlog, DestinationTwitter}); err != nil {
		t.Fatalf("valid routes_to rejected: %v", err)
	}
}

func TestValidateRuleYouTubeVersionRequiresYouTube(t *testing.T) {
	t.Parallel()

	rule := validRule()
	rule.RoutesTo = []string{DestinationBlog}
	rule.YouTubeVersion = "short"
	if err := ValidateRule(rule); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for youtube_version without youtube, got %v", err)
	}
}

func TestValidateRuleRequiresName(t *testing.T) {
	t.Parallel()

	rule := validRule()
	rule.Name = "   "
	if err := ValidateRule(rule); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestValidateImpactLevel(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"major", "moderate", "minor"} {
		if err := ValidateImpactLevel(ok); err != nil {
			t.Fatalf("impact %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "critical", "MAJOR"} {
		if err := ValidateImpactLevel(bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q, got %v", bad, err)
		}
	}
}

func TestCanTransitionIdea(t *testing.T) {
	t.Parallel()

	allowed := [][2]string{
		{IdeaStatusUnrouted, IdeaStatusScheduled},
		{IdeaStatusUnrouted, IdeaStatusCancelled},
		{IdeaStatusScheduled, IdeaStatusPublished},
		{IdeaStatusScheduled, IdeaStatusCancelled},
	}
	for _, pair := range allowed {
		if !CanTransitionIdea(pair[0], pair[1]) {
			t.Fatalf("transition %s -> %s should be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{IdeaStatusUnrouted, IdeaStatusPublished},
		{IdeaStatusPublished, IdeaStatusScheduled},
		{IdeaStatusCancelled, IdeaStatusScheduled},
		{IdeaStatusPublished, IdeaStatusCancelled},
	}
	for _, pair := range denied {
		if CanTransitionIdea(pair[0], pair[1]) {
			t.Fatalf("transition %s -> %s should be denied", pair[0], pair[1])
		}
	}
}

func TestRuleMatchesUnknownAttributeNeverMatches(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		Conditions: map[string][]string{"audience": {"developers"}},
	}
	if rule.Matches(testIdea("major", "video", "internal")) {
		t.Fatalf("rule with unrecognized attribute must not match")
	}
}
