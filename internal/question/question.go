// Package question provides the platform-agnostic representation of a single
// application form question and the predicates that route it to an answering
// strategy. Nothing in this package knows which ATS a question came from
// beyond the provenance id it carries.
package question

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/autofill-core/internal/hashkey"
	"github.com/jonathan/autofill-core/internal/selectors"
)

// IDPrefix is prepended to every derived question id.
const IDPrefix = "q_"

// InputType is the kind of control a question is answered with.
type InputType string

// Supported input types
const (
	TypeText     InputType = "text"
	TypeTextarea InputType = "textarea"
	TypeRadio    InputType = "radio"
	TypeCheckbox InputType = "checkbox"
	TypeSelect   InputType = "select"
	TypeFile     InputType = "file"
)

// Selectable reports whether the type offers a fixed list of choices.
func (t InputType) Selectable() bool {
	return t == TypeRadio || t == TypeCheckbox || t == TypeSelect
}

// ParseInputType maps an HTML control type onto an InputType.
// Textual HTML5 variants (email, tel, url, number, date) collapse to text.
func ParseInputType(s string) (InputType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "email", "tel", "url", "number", "date", "search", "password":
		return TypeText, nil
	case "textarea":
		return TypeTextarea, nil
	case "radio":
		return TypeRadio, nil
	case "checkbox":
		return TypeCheckbox, nil
	case "select", "select-one", "select-multiple":
		return TypeSelect, nil
	case "file":
		return TypeFile, nil
	default:
		return "", &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported input type %q", s)}
	}
}

// BlockRef is an opaque, lookup-only handle to the DOM element a question was
// read from. Holding one never keeps the element alive; it is resolved back
// through the document that issued it.
type BlockRef string

// Metadata carries platform-specific extras with a known schema plus an
// unstructured remainder for attributes that have none.
type Metadata struct {
	InputID      string
	InputName    string
	AutomationID string              // Workday data-automation-id
	QuestionID   string              // Greenhouse question_<n> identifier
	Placeholder  string
	MaxLength    int
	InputRef     BlockRef            // handle to the input element itself
	Field        selectors.FieldName // well-known field whose locator matched the input
	Extra        map[string]string
}

// Raw is an unnormalized question as produced by a DOM extractor.
type Raw struct {
	ID       string
	Text     string `validate:"required"`
	Type     string `validate:"required"`
	Options  []string
	Required bool
	Platform selectors.PlatformID
	Block    BlockRef
	Metadata Metadata
}

// Question is the canonical form of one form question.
type Question struct {
	id             string
	normalizedText string
	rawText        string
	inputType      InputType
	options        []string
	required       bool
	platform       selectors.PlatformID
	block          BlockRef
	metadata       Metadata
}

var validate = validator.New()

// New builds a canonical question from raw extractor output.
// The id is derived from the normalized text unless raw.ID is set.
func New(raw Raw) (*Question, error) {
	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &ValidationError{
				Field:   strings.ToLower(verrs[0].Field()),
				Message: fmt.Sprintf("failed %q check", verrs[0].Tag()),
			}
		}
		return nil, &ValidationError{Message: err.Error()}
	}

	inputType, err := ParseInputType(raw.Type)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(raw.Text)
	if normalized == "" {
		return nil, &ValidationError{Field: "text", Message: "text has no word characters"}
	}

	id := raw.ID
	if id == "" {
		id = IDFor(normalized)
	}

	var options []string
	if inputType.Selectable() {
		options = make([]string, 0, len(raw.Options))
		for _, opt := range raw.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
	}

	platform := raw.Platform
	if platform == "" {
		platform = selectors.Generic
	}

	meta := raw.Metadata
	if raw.Metadata.Extra != nil {
		meta.Extra = make(map[string]string, len(raw.Metadata.Extra))
		for k, v := range raw.Metadata.Extra {
			meta.Extra[k] = v
		}
	}

	return &Question{
		id:             id,
		normalizedText: normalized,
		rawText:        strings.TrimSpace(raw.Text),
		inputType:      inputType,
		options:        options,
		required:       raw.Required,
		platform:       platform,
		block:          raw.Block,
		metadata:       meta,
	}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(raw Raw) *Question {
	q, err := New(raw)
	if err != nil {
		panic(err)
	}
	return q
}

// Normalize lower-cases text, strips everything except letters, digits,
// underscores and whitespace, collapses runs of whitespace and trims.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// IDFor returns the stable id for already-normalized text.
func IDFor(normalized string) string {
	return hashkey.Prefixed(IDPrefix, normalized)
}

// ID returns the stable question identifier.
func (q *Question) ID() string { return q.id }

// NormalizedText returns the normalized question text.
func (q *Question) NormalizedText() string { return q.normalizedText }

// RawText returns the original label text.
func (q *Question) RawText() string { return q.rawText }

// InputType returns the control type.
func (q *Question) InputType() InputType { return q.inputType }

// Options returns a copy of the choices, or nil for non-selectable types.
func (q *Question) Options() []string {
	if q.options == nil {
		return nil
	}
	out := make([]string, len(q.options))
	copy(out, q.options)
	return out
}

// Required reports whether the form marks the question as mandatory.
func (q *Question) Required() bool { return q.required }

// Platform returns the platform the question was extracted from.
func (q *Question) Platform() selectors.PlatformID { return q.platform }

// Block returns the lookup handle of the originating question block.
func (q *Question) Block() BlockRef { return q.block }

// Metadata returns the platform extras.
func (q *Question) Metadata() Metadata { return q.metadata }

func (q *Question) String() string {
	return fmt.Sprintf("%s[%s] %q", q.id, q.inputType, q.rawText)
}
