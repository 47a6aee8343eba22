package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/autofill-core/internal/dom"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/jonathan/autofill-core/internal/selectors"
	"go.uber.org/zap"
)

// Adapter reads and fills the application form of one platform.
type Adapter interface {
	PlatformID() selectors.PlatformID
	PlatformName() string
	// ExtractQuestions returns the canonical questions found on the page.
	ExtractQuestions(doc *dom.Document) ([]*question.Question, error)
	// FillField writes value into the control behind q in the parsed document.
	FillField(doc *dom.Document, q *question.Question, value string) error
	// DetectStep reports where a multi-step form currently is.
	DetectStep(doc *dom.Document) Step
}

// Factory constructs a fresh adapter.
type Factory func() Adapter

// Step describes the current page of a multi-step application.
type Step struct {
	Current     int      `json:"current"` // 1-based; 0 when unknown
	Total       int      `json:"total"`   // 0 when unknown
	Label       string   `json:"label,omitempty"`
	HasNext     bool     `json:"hasNext"`
	HasPrevious bool     `json:"hasPrevious"`
	HasSubmit   bool     `json:"hasSubmit"`
	HasEEO      bool     `json:"hasEEO"`
	Errors      []string `json:"errors,omitempty"`
}

// IsFinal reports whether the form can be submitted from this step.
func (s Step) IsFinal() bool {
	return s.HasSubmit && !s.HasNext
}

// formAdapter is the selector-driven implementation every platform shares.
// Platform variants customize it through the hook fields.
type formAdapter struct {
	id     selectors.PlatformID
	name   string
	set    selectors.Set
	logger *zap.Logger

	// cleanLabel strips platform-specific label noise.
	cleanLabel func(string) string
	// decorate adds platform metadata to an extracted field.
	decorate func(f *dom.Field)
}

func newFormAdapter(id selectors.PlatformID, name string, logger *zap.Logger) *formAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &formAdapter{
		id:     id,
		name:   name,
		set:    selectors.MustLookup(id),
		logger: logger.With(zap.String("platform", string(id))),
	}
}

func (a *formAdapter) PlatformID() selectors.PlatformID { return a.id }

func (a *formAdapter) PlatformName() string { return a.name }

func (a *formAdapter) ExtractQuestions(doc *dom.Document) ([]*question.Question, error) {
	if doc == nil {
		return nil, fmt.Errorf("%s adapter: nil document", a.id)
	}
	ex := &dom.Extractor{Set: a.set, CleanLabel: a.cleanLabel}
	fields := ex.Extract(doc)

	questions := make([]*question.Question, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		if a.decorate != nil {
			a.decorate(f)
		}
		q, err := question.New(f.Raw)
		if err != nil {
			a.logger.Debug("Skipping unusable field", zap.String("label", f.Raw.Text), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}

	a.logger.Debug("Extracted questions", zap.Int("fields", len(fields)), zap.Int("questions", len(questions)))
	return questions, nil
}

func (a *formAdapter) FillField(doc *dom.Document, q *question.Question, value string) error {
	block, ok := doc.Resolve(q.Block())
	if !ok {
		return fmt.Errorf("%s adapter: block for %s is no longer available", a.id, q.ID())
	}
	input, ok := doc.Resolve(q.Metadata().InputRef)
	if !ok {
		input = dom.FirstMatch(block, dom.InputSelector(a.set, q.InputType())).First()
	}
	if input.Length() == 0 {
		return fmt.Errorf("%s adapter: no %s control for %s", a.id, q.InputType(), q.ID())
	}
	return dom.SetValue(doc, a.set, block, input, q.InputType(), value)
}

func (a *formAdapter) DetectStep(doc *dom.Document) Step {
	root := doc.Root()
	step := Step{
		HasNext:     dom.AnyMatch(root, a.set.Navigation.Next).Length() > 0,
		HasPrevious: dom.AnyMatch(root, a.set.Navigation.Previous).Length() > 0,
		HasSubmit:   dom.AnyMatch(root, a.set.Navigation.Submit).Length() > 0,
		HasEEO:      dom.AnyMatch(root, a.set.EEOSection).Length() > 0,
	}
	// Single-page forms use one button for both; treat it as submit only.
	if step.HasNext && step.HasSubmit && sameNodes(dom.AnyMatch(root, a.set.Navigation.Next), dom.AnyMatch(root, a.set.Navigation.Submit)) {
		step.HasNext = false
	}

	dom.AnyMatch(root, a.set.Errors).Each(func(_ int, s *goquery.Selection) {
		if text := dom.Text(s); text != "" {
			step.Errors = append(step.Errors, text)
		}
	})

	if dom.FirstMatch(root, a.set.Progress.Container).Length() == 0 {
		return step
	}

	steps := dom.FirstMatch(root, a.set.Progress.Steps)
	step.Total = steps.Length()
	current := dom.FirstMatch(root, a.set.Progress.CurrentStep).First()
	if current.Length() > 0 {
		step.Label = dom.Text(current)
		if idx := steps.IndexOfSelection(current); idx >= 0 {
			step.Current = idx + 1
		} else {
			step.Current, step.Total = progressValues(current, step.Total)
		}
	}
	if step.Current == 0 && step.Total == 0 {
		step.Current, step.Total = 1, 1
	}
	return step
}

// progressValues reads value/max from a <progress> or aria progressbar.
func progressValues(s *goquery.Selection, total int) (int, int) {
	value := firstAttr(s, "value", "aria-valuenow")
	maxValue := firstAttr(s, "max", "aria-valuemax")
	if maxValue > 0 && value > 0 {
		return value, maxValue
	}
	return 0, total
}

func firstAttr(s *goquery.Selection, names ...string) int {
	for _, name := range names {
		if v, ok := s.Attr(name); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func sameNodes(a, b *goquery.Selection) bool {
	if a.Length() != b.Length() {
		return false
	}
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			return false
		}
	}
	return true
}
