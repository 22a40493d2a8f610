package domain

import (
	"fmt"
	"strings"
)

var recognizedAttributes = map[string]bool{
	AttrImpactLevel: true,
	AttrContentType: true,
	AttrSource:      true,
}

var knownDestinations = map[string]bool{
	DestinationYouTube:  true,
	DestinationSubstack: true,
	DestinationBlog:     true,
	DestinationTwitter:  true,
}

// ValidateConditions rejects rule conditions that reference attributes
// outside the recognized set. Unknown keys would otherwise never match and
// fail silently.
func ValidateConditions(conditions map[string][]string) error {
	for attr, values := range conditions {
		if !recognizedAttributes[attr] {
			return fmt.Errorf("%w: unrecognized condition attribute %q", ErrInvalidInput, attr)
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: condition %q has no accepted values", ErrInvalidInput, attr)
		}
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%w: condition %q has an empty value", ErrInvalidInput, attr)
			}
		}
	}
	return nil
}

// ValidateRoutesTo checks the destination list of a rule.
func ValidateRoutesTo(routesTo []string) error {
	if len(routesTo) == 0 {
		return fmt.Errorf("%w: routes_to must list at least one destination", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(routesTo))
	for _, dest := range routesTo {
		if !knownDestinations[dest] {
			return fmt.Errorf("%w: unknown destination %q", ErrInvalidInput, dest)
		}
		if seen[dest] {
			return fmt.Errorf("%w: duplicate destination %q", ErrInvalidInput, dest)
		}
		seen[dest] = true
	}
	return nil
}

// ValidateRule checks a complete rule prior to create/update.
func ValidateRule(rule RoutingRule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return fmt.Errorf("%w: rule name is required", ErrInvalidInput)
	}
	if rule.Priority < 0 {
		return fmt.Errorf("%w: priority must be >= 0", ErrInvalidInput)
	}
	if err := ValidateConditions(rule.Conditions); err != nil {
		return err
	}
	if err := ValidateRoutesTo(rule.RoutesTo); err != nil {
		return err
	}
	if rule.YouTubeVersion != "" && !routesToYouTube(rule.RoutesTo) {
		return fmt.Errorf("%w: youtube_version requires youtube in routes_to", ErrInvalidInput)
	}
	return nil
}

// ValidateImpactLevel checks the closed impact vocabulary on idea input.
func ValidateImpactLevel(v string) error {
	switch v {
	case "major", "moderate", "minor":
		return nil
	default:
		return fmt.Errorf("%w: impact_level must be one of major, moderate, minor", ErrInvalidInput)
	}
}

// CanTransitionIdea checks the idea lifecycle:
// unrouted -> scheduled -> {published, cancelled}.
func CanTransitionIdea(from, to string) bool {
	switch from {
	case IdeaStatusUnrouted:
		return to == IdeaStatusScheduled || to == IdeaStatusCancelled
	case IdeaStatusScheduled:
		return to == IdeaStatusPublished || to == IdeaStatusCancelled
	default:
		return false
	}
}
