package platform

import (
	"regexp"
	"strings"

	"github.com/jonathan/autofill-core/internal/dom"
	"github.com/jonathan/autofill-core/internal/selectors"
	"go.uber.org/zap"
)

// WorkdayAdapter reads Workday application flows.
type WorkdayAdapter struct{ *formAdapter }

// NewWorkdayAdapter creates a Workday adapter.
func NewWorkdayAdapter(logger *zap.Logger) *WorkdayAdapter {
	a := newFormAdapter(selectors.Workday, "Workday", logger)
	a.decorate = func(f *dom.Field) {
		id := f.Input.AttrOr("data-automation-id", "")
		if id == "" {
			id = f.Block.AttrOr("data-automation-id", "")
		}
		f.Raw.Metadata.AutomationID = id
	}
	return &WorkdayAdapter{a}
}

// GreenhouseAdapter reads Greenhouse job boards.
type GreenhouseAdapter struct{ *formAdapter }

var greenhouseQuestionID = regexp.MustCompile(`question_(\d+)|answers\]\[(\d+)\]`)

// NewGreenhouseAdapter creates a Greenhouse adapter.
func NewGreenhouseAdapter(logger *zap.Logger) *GreenhouseAdapter {
	a := newFormAdapter(selectors.Greenhouse, "Greenhouse", logger)
	a.cleanLabel = stripOptionalSuffix
	a.decorate = func(f *dom.Field) {
		for _, attr := range []string{f.Raw.Metadata.InputID, f.Raw.Metadata.InputName} {
			if m := greenhouseQuestionID.FindStringSubmatch(attr); m != nil {
				f.Raw.Metadata.QuestionID = m[1] + m[2]
				return
			}
		}
	}
	return &GreenhouseAdapter{a}
}

// LeverAdapter reads Lever application pages.
type LeverAdapter struct{ *formAdapter }

var leverCardName = regexp.MustCompile(`^cards\[([0-9a-f-]+)\]`)

// NewLeverAdapter creates a Lever adapter.
func NewLeverAdapter(logger *zap.Logger) *LeverAdapter {
	a := newFormAdapter(selectors.Lever, "Lever", logger)
	a.cleanLabel = func(s string) string {
		return strings.TrimSpace(strings.TrimRight(s, "✱ "))
	}
	a.decorate = func(f *dom.Field) {
		if m := leverCardName.FindStringSubmatch(f.Raw.Metadata.InputName); m != nil {
			setExtra(f, "card", m[1])
		}
	}
	return &LeverAdapter{a}
}

// LinkedInAdapter reads LinkedIn Easy Apply modals.
type LinkedInAdapter struct{ *formAdapter }

// NewLinkedInAdapter creates a LinkedIn adapter.
func NewLinkedInAdapter(logger *zap.Logger) *LinkedInAdapter {
	a := newFormAdapter(selectors.LinkedIn, "LinkedIn", logger)
	a.cleanLabel = collapseRepeatedLabel
	return &LinkedInAdapter{a}
}

// AshbyAdapter reads Ashby application forms.
type AshbyAdapter struct{ *formAdapter }

// NewAshbyAdapter creates an Ashby adapter.
func NewAshbyAdapter(logger *zap.Logger) *AshbyAdapter {
	a := newFormAdapter(selectors.Ashby, "Ashby", logger)
	a.decorate = func(f *dom.Field) {
		if name := f.Raw.Metadata.InputName; strings.HasPrefix(name, "_systemfield_") {
			setExtra(f, "systemField", strings.TrimPrefix(name, "_systemfield_"))
		}
	}
	return &AshbyAdapter{a}
}

// GenericAdapter reads any HTML form with permissive selectors.
type GenericAdapter struct{ *formAdapter }

// NewGenericAdapter creates the fallback adapter.
func NewGenericAdapter(logger *zap.Logger) *GenericAdapter {
	a := newFormAdapter(selectors.Generic, "Generic", logger)
	a.cleanLabel = stripOptionalSuffix
	return &GenericAdapter{a}
}

// DefaultFactories returns a factory for every built-in adapter.
func DefaultFactories(logger *zap.Logger) map[selectors.PlatformID]Factory {
	return map[selectors.PlatformID]Factory{
		selectors.Workday:    func() Adapter { return NewWorkdayAdapter(logger) },
		selectors.Greenhouse: func() Adapter { return NewGreenhouseAdapter(logger) },
		selectors.Lever:      func() Adapter { return NewLeverAdapter(logger) },
		selectors.LinkedIn:   func() Adapter { return NewLinkedInAdapter(logger) },
		selectors.Ashby:      func() Adapter { return NewAshbyAdapter(logger) },
		selectors.Generic:    func() Adapter { return NewGenericAdapter(logger) },
	}
}

func setExtra(f *dom.Field, key, value string) {
	if f.Raw.Metadata.Extra == nil {
		f.Raw.Metadata.Extra = make(map[string]string)
	}
	f.Raw.Metadata.Extra[key] = value
}

func stripOptionalSuffix(s string) string {
	lower := strings.ToLower(s)
	for _, suffix := range []string{"(optional)", "(required)"} {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(s[:len(s)-len(suffix)])
		}
	}
	return s
}

// collapseRepeatedLabel undoes LinkedIn's visible+screen-reader duplication,
// e.g. "Phone numberPhone number" or "City City".
func collapseRepeatedLabel(s string) string {
	s = strings.TrimSpace(s)
	n := len(s)
	if n%2 == 0 && n > 0 && s[:n/2] == s[n/2:] {
		return s[:n/2]
	}
	if half := (n - 1) / 2; n%2 == 1 && n > 2 && s[half] == ' ' && s[:half] == s[half+1:] {
		return s[:half]
	}
	return s
}
