package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationResult_OrderAndUniqueness(t *testing.T) {
	r := NewGenerationResult()
	r.Add("app.tsx", "a")
	r.Add("styles.css", "b")
	r.Add("app.tsx", "a2") // overwrite keeps position

	files := r.Files()
	assert.Equal(t, []GeneratedFile{
		{Name: "app.tsx", Content: "a2"},
		{Name: "styles.css", Content: "b"},
	}, files)
	assert.Equal(t, 2, r.Len())
}

func TestGenerationResult_EmptyNameFallsBack(t *testing.T) {
	r := NewGenerationResult()
	r.Add("", "content")

	assert.Equal(t, FallbackFilename, r.Files()[0].Name)
}

func TestGenerationResult_HasContent(t *testing.T) {
	r := NewGenerationResult()
	assert.False(t, r.HasContent())

	r.Add("empty.tsx", "")
	assert.False(t, r.HasContent())

	r.Add("real.tsx", "x")
	assert.True(t, r.HasContent())
}

func TestCredentials_Configured(t *testing.T) {
	assert.False(t, Credentials{}.Configured())
	assert.False(t, Credentials{Email: "a@b.c"}.Configured())
	assert.False(t, Credentials{Password: "p"}.Configured())
	assert.True(t, Credentials{Email: "a@b.c", Password: "p"}.Configured())
}

func TestSessionState_Empty(t *testing.T) {
	var s *SessionState
	assert.True(t, s.Empty())
	assert.True(t, (&SessionState{}).Empty())
	assert.False(t, (&SessionState{Cookies: []Cookie{{Name: "sid"}}}).Empty())
}
