// Package observability provides formatted output for the CLI's
// human-readable modes.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/autofill-core/internal/answer"
	"github.com/jonathan/autofill-core/internal/cache"
	"github.com/jonathan/autofill-core/internal/platform"
	"github.com/jonathan/autofill-core/internal/question"
)

const (
	// boxWidth is the width of formatted output boxes
	boxWidth = 72
	// maxOptionsToShow caps option lists inside a box
	maxOptionsToShow = 4
)

// Printer writes boxed summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPage outputs the adapter, form step and classified questions of one page.
func (p *Printer) PrintPage(url, adapter string, step platform.Step, questions []*question.Question) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Adapter:  %s\n", adapter))
	sb.WriteString(fmt.Sprintf("Step:     %s\n", describeStep(step)))
	for _, e := range step.Errors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e))
	}
	sb.WriteString("\n")

	if len(questions) == 0 {
		sb.WriteString("No questions found")
	}
	for i, q := range questions {
		marker := " "
		if q.Required() {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s (%s)", marker, question.Classify(q), q.RawText(), q.InputType()))
		if opts := q.Options(); len(opts) > 0 {
			shown := opts[:min(len(opts), maxOptionsToShow)]
			sb.WriteString(fmt.Sprintf("\n    options: %s", strings.Join(shown, " | ")))
			if len(opts) > maxOptionsToShow {
				sb.WriteString(fmt.Sprintf(" ... and %d more", len(opts)-maxOptionsToShow))
			}
		}
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(url, sb.String())
}

// PrintPageError outputs a page that could not be scanned.
func (p *Printer) PrintPageError(url string, err string) {
	p.printBox(url, "error: "+err)
}

// PrintAnswers outputs each answer with where it came from.
func (p *Printer) PrintAnswers(results []answer.Result) {
	if len(results) == 0 {
		return
	}

	counts := make(map[answer.Source]int)
	var sb strings.Builder
	for i, r := range results {
		counts[r.Source]++
		sb.WriteString(fmt.Sprintf("%s\n", r.Question.RawText()))
		switch {
		case r.Err != nil:
			sb.WriteString(fmt.Sprintf("  ✗ %v", r.Err))
		case r.Answer == "":
			sb.WriteString("  (left for the applicant)")
		default:
			sb.WriteString(fmt.Sprintf("  → %s [%s]", r.Answer, r.Source))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	title := fmt.Sprintf("ANSWERS (profile %d, policy %d, cache %d, ai %d, none %d)",
		counts[answer.SourceProfile], counts[answer.SourcePolicy], counts[answer.SourceCache],
		counts[answer.SourceAI], counts[answer.SourceNone])
	p.printBox(title, sb.String())
}

// PrintCacheStats outputs the answer cache summary.
func (p *Printer) PrintCacheStats(prefix string, stats cache.Stats) {
	content := fmt.Sprintf("Prefix: %s\nEntries: %d\nApprox size: %.2f KB", prefix, stats.Count, stats.ApproxSizeKB)
	p.printBox("ANSWER CACHE", content)
}

func describeStep(s platform.Step) string {
	var parts []string
	if s.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.Current, s.Total))
	}
	if s.Label != "" {
		parts = append(parts, s.Label)
	}
	if s.IsFinal() {
		parts = append(parts, "(final)")
	} else if s.HasNext {
		parts = append(parts, "(more steps)")
	}
	if s.HasEEO {
		parts = append(parts, "[EEO]")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " ")
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
