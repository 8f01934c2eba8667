package poller

import (
	"strings"

	"uigen-bridge/internal/domain/entity"
)

type Verdict int

const (
	// VerdictPending: nothing recognizable on the page, not even a
	// progress indicator.
	VerdictPending Verdict = iota
	VerdictGenerating
	VerdictCompleted
	VerdictFailed
)

type Classification struct {
	Verdict Verdict
	Marker  string
}

// Marker tables are matched case-insensitively against action labels.
// This is string matching against UI copy and will go stale when the
// remote site rewords its buttons; keep the lists here so they can be
// updated without touching the polling loop.
var (
	errorMarkers = []string{
		"error",
		"failed",
		"something went wrong",
		"try again",
	}
	completionMarkers = []string{
		"copy code",
		"preview",
		"download",
		"save to project",
		"add to codebase",
	}
	generatingMarkers = []string{
		"generating",
		"stop generating",
		"thinking",
		"loading",
	}
)

// Classify reduces one observation snapshot to a verdict. Error markers
// take precedence over completion markers when both are present in the
// same snapshot (fail fast); the decision is binary per poll, no partial
// completion is modeled.
func Classify(actions []entity.ObservedAction) Classification {
	if m := firstMatch(actions, errorMarkers); m != "" {
		return Classification{Verdict: VerdictFailed, Marker: m}
	}
	if m := firstMatch(actions, completionMarkers); m != "" {
		return Classification{Verdict: VerdictCompleted, Marker: m}
	}
	if m := firstMatch(actions, generatingMarkers); m != "" {
		return Classification{Verdict: VerdictGenerating, Marker: m}
	}
	return Classification{Verdict: VerdictPending}
}

func firstMatch(actions []entity.ObservedAction, markers []string) string {
	for _, a := range actions {
		label := strings.ToLower(a.Label)
		for _, m := range markers {
			if strings.Contains(label, m) {
				return a.Label
			}
		}
	}
	return ""
}
