package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/autofill-core/internal/answer"
	"github.com/jonathan/autofill-core/internal/cache"
	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/stretchr/testify/assert"
)

func TestPrintPage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	questions := []*question.Question{
		question.MustNew(question.Raw{Text: "Email", Type: "email", Required: true}),
		question.MustNew(question.Raw{Text: "Gender", Type: "select", Options: []string{"Male", "Female", "Non-binary", "Other", "Decline"}}),
	}
	step := platform.Step{Current: 2, Total: 3, Label: "My Experience", HasNext: true, Errors: []string{"Email is required"}}

	p.PrintPage("https://acme.wd5.myworkdayjobs.com/apply", "Workday", step, questions)

	output := buf.String()
	assert.Contains(t, output, "Adapter:  Workday")
	assert.Contains(t, output, "2/3 My Experience (more steps)")
	assert.Contains(t, output, "⚠ Email is required")
	assert.Contains(t, output, "* [simple] Email (text)")
	assert.Contains(t, output, "[eeo] Gender (select)")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "┌")
	assert.Contains(t, output, "└")
}

func TestPrintPage_NoQuestions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPage("https://example.com", "Generic", platform.Step{}, nil)
	assert.Contains(t, buf.String(), "No questions found")
	assert.Contains(t, buf.String(), "Step:     unknown")
}

func TestPrintAnswers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	email := question.MustNew(question.Raw{Text: "Email", Type: "email"})
	why := question.MustNew(question.Raw{Text: "Why Acme?", Type: "textarea"})
	cover := question.MustNew(question.Raw{Text: "Cover letter", Type: "textarea"})

	p.PrintAnswers([]answer.Result{
		{Question: email, Answer: "ada@example.com", Source: answer.SourceProfile},
		{Question: why, Source: answer.SourceNone},
		{Question: cover, Source: answer.SourceNone, Err: errors.New("quota exceeded")},
	})

	output := buf.String()
	assert.Contains(t, output, "profile 1")
	assert.Contains(t, output, "none 2")
	assert.Contains(t, output, "→ ada@example.com [profile]")
	assert.Contains(t, output, "(left for the applicant)")
	assert.Contains(t, output, "✗ quota exceeded")
}

func TestPrintAnswers_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnswers(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCacheStats("ai_cache_", cache.Stats{Count: 3, ApproxSizeKB: 1.5})

	output := buf.String()
	assert.Contains(t, output, "ai_cache_")
	assert.Contains(t, output, "Entries: 3")
	assert.Contains(t, output, "1.50 KB")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
