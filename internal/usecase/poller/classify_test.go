package poller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uigen-bridge/internal/domain/entity"
)

func actions(labels ...string) []entity.ObservedAction {
	var out []entity.ObservedAction
	for _, l := range labels {
		out = append(out, entity.ObservedAction{Type: "button", Label: l})
	}
	return out
}

func TestClassify_Completed(t *testing.T) {
	for _, label := range []string{"Copy code", "Preview", "Download ZIP", "Save to Project", "Add to Codebase"} {
		c := Classify(actions("New Chat", label))
		assert.Equal(t, VerdictCompleted, c.Verdict, "label %q", label)
		assert.Equal(t, label, c.Marker)
	}
}

func TestClassify_Failed(t *testing.T) {
	c := Classify(actions("Something went wrong", "Retry"))
	assert.Equal(t, VerdictFailed, c.Verdict)
	assert.Equal(t, "Something went wrong", c.Marker)
}

func TestClassify_ErrorBeatsCompletion(t *testing.T) {
	// Fail fast: a snapshot holding both markers is a failure, never a
	// completion, regardless of element order.
	c := Classify(actions("Copy code", "Generation failed"))
	assert.Equal(t, VerdictFailed, c.Verdict)

	c = Classify(actions("Generation failed", "Copy code"))
	assert.Equal(t, VerdictFailed, c.Verdict)
}

func TestClassify_Generating(t *testing.T) {
	c := Classify(actions("Stop generating"))
	assert.Equal(t, VerdictGenerating, c.Verdict)
}

func TestClassify_Pending(t *testing.T) {
	c := Classify(actions("Sign in", "Feedback", "Pricing"))
	assert.Equal(t, VerdictPending, c.Verdict)
	assert.Empty(t, c.Marker)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := Classify(actions("COPY CODE"))
	assert.Equal(t, VerdictCompleted, c.Verdict)
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(nil)
	assert.Equal(t, VerdictPending, c.Verdict)
}
