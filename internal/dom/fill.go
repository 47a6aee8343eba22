package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/jonathan/autofill-core/internal/selectors"
)

// FillError reports a value that could not be written into a control.
type FillError struct {
	Field   string
	Message string
}

func (e *FillError) Error() string {
	return fmt.Sprintf("fill error for %q: %s", e.Field, e.Message)
}

// SetValue writes value into the parsed document for the given control type.
// This only mutates the in-memory tree; live-page filling happens elsewhere.
// For choice controls, the option whose label or value equals value
// (case-insensitive) is selected; checkboxes accept a comma-separated list.
// Groups and options are located through set, so custom listboxes fill the
// same way native selects do.
func SetValue(doc *Document, set selectors.Set, block, input *goquery.Selection, t question.InputType, value string) error {
	name := input.AttrOr("name", input.AttrOr("id", "field"))

	switch t {
	case question.TypeText:
		input.SetAttr("value", value)
		return nil

	case question.TypeTextarea:
		input.SetText(value)
		return nil

	case question.TypeSelect:
		var chosen *goquery.Selection
		options := OptionNodes(doc, set, block, input)
		options.Each(func(_ int, opt *goquery.Selection) {
			if chosen == nil && choiceMatches(Text(opt), opt.AttrOr("value", ""), value) {
				chosen = opt
			}
		})
		if chosen == nil {
			return &FillError{Field: name, Message: fmt.Sprintf("no option matches %q", value)}
		}
		options.Each(func(_ int, opt *goquery.Selection) {
			selected := opt.IsSelection(chosen)
			if goquery.NodeName(opt) == "option" {
				if selected {
					opt.SetAttr("selected", "selected")
				} else {
					opt.RemoveAttr("selected")
				}
				return
			}
			opt.SetAttr("aria-selected", fmt.Sprint(selected))
		})
		if goquery.NodeName(input) != "select" {
			// Custom listbox buttons display the current choice as their text.
			input.SetText(Text(chosen))
		}
		return nil

	case question.TypeRadio, question.TypeCheckbox:
		wanted := []string{value}
		if t == question.TypeCheckbox {
			wanted = strings.Split(value, ",")
		}
		group := AnyMatch(block, InputSelector(set, t))
		matched := 0
		group.Each(func(_ int, in *goquery.Selection) {
			label := choiceLabel(doc, set, in)
			hit := false
			for _, w := range wanted {
				if choiceMatches(label, in.AttrOr("value", ""), w) {
					hit = true
					break
				}
			}
			if hit && (t == question.TypeCheckbox || matched == 0) {
				in.SetAttr("checked", "checked")
				matched++
			} else {
				in.RemoveAttr("checked")
			}
		})
		if matched == 0 {
			return &FillError{Field: name, Message: fmt.Sprintf("no choice matches %q", value)}
		}
		return nil

	case question.TypeFile:
		return &FillError{Field: name, Message: "file inputs cannot be filled from text"}

	default:
		return &FillError{Field: name, Message: fmt.Sprintf("unsupported input type %q", t)}
	}
}

func choiceMatches(label, value, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(label), want) || strings.EqualFold(strings.TrimSpace(value), want)
}
