package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(Answers, "answer-intro")
	require.NoError(t, err)
	assert.Contains(t, prompt, "application form questions")
	assert.Contains(t, prompt, "{{.Company}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(Answers, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(Answers, "answer-format"))
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "all placeholders",
			template: "Company: {{.Company}}\nRole: {{.Role}}",
			data:     map[string]string{"Company": "Acme", "Role": "Engineer"},
			want:     "Company: Acme\nRole: Engineer",
		},
		{
			name:     "unknown placeholder kept",
			template: "{{.Company}} {{.Missing}}",
			data:     map[string]string{"Company": "Acme"},
			want:     "Acme {{.Missing}}",
		},
		{
			name:     "values are not re-expanded",
			template: "{{.A}}",
			data:     map[string]string{"A": "{{.B}}", "B": "x"},
			want:     "{{.B}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(Answers)
	require.NoError(t, err)
	assert.Equal(t, []string{"answer-applicant", "answer-format", "answer-intro", "answer-job-description"}, keys)
}
