package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/autofill-core/internal/question"
	"github.com/jonathan/autofill-core/internal/selectors"
	"golang.org/x/net/html"
)

// Field is one question block found on the page, before canonicalization.
type Field struct {
	Raw   question.Raw
	Block *goquery.Selection
	Input *goquery.Selection
}

// Extractor resolves one selector set against a document.
type Extractor struct {
	Set selectors.Set
	// CleanLabel, when set, post-processes label text (platform-specific noise).
	CleanLabel func(string) string
}

// controlOrder is the order control types are tried inside a block. Radios and
// checkboxes come before text so permissive text locators never claim them.
var controlOrder = []question.InputType{
	question.TypeFile,
	question.TypeTextarea,
	question.TypeSelect,
	question.TypeRadio,
	question.TypeCheckbox,
	question.TypeText,
}

// Extract returns every question block under the set's form container, in
// document order. Blocks without a recognizable control or label are skipped.
func (e *Extractor) Extract(doc *Document) []Field {
	form := FirstMatch(doc.Root(), e.Set.Form).First()
	if form.Length() == 0 {
		form = doc.Root()
	}

	blocks := FirstMatch(form, e.Set.QuestionBlock)
	if blocks.Length() == 0 {
		// No block markup: treat each control's parent as its block.
		blocks = AnyMatch(form, e.allControls()).Parent()
	}

	seen := make(map[*html.Node]bool)
	var fields []Field
	blocks.Each(func(_ int, block *goquery.Selection) {
		inputType, inputs := e.controls(block)
		if inputs.Length() == 0 {
			return
		}
		first := inputs.First()
		if seen[first.Get(0)] {
			return
		}
		inputs.Each(func(_ int, in *goquery.Selection) { seen[in.Get(0)] = true })

		rawLabel := e.rawLabel(doc, block, first, inputType, inputs)
		label := strings.TrimSpace(strings.TrimRight(rawLabel, "* "))
		if e.CleanLabel != nil {
			label = e.CleanLabel(label)
		}
		if label == "" {
			return
		}

		raw := question.Raw{
			Text:     label,
			Type:     string(inputType),
			Options:  e.options(doc, block, inputType, inputs),
			Required: e.required(block, first, rawLabel),
			Platform: e.Set.Platform,
			Block:    doc.Handle(block),
			Metadata: e.inputMetadata(doc, first, inputType),
		}
		fields = append(fields, Field{Raw: raw, Block: block, Input: first})
	})
	return fields
}

func (e *Extractor) allControls() selectors.Selector {
	in := e.Set.Inputs
	var all selectors.Selector
	for _, sel := range []selectors.Selector{in.File, in.Textarea, in.Select, in.Radio, in.Checkbox, in.Text} {
		all = append(all, sel...)
	}
	return all
}

// InputSelector returns the set's locator for controls of type t.
func InputSelector(set selectors.Set, t question.InputType) selectors.Selector {
	switch t {
	case question.TypeFile:
		return set.Inputs.File
	case question.TypeTextarea:
		return set.Inputs.Textarea
	case question.TypeSelect:
		return set.Inputs.Select
	case question.TypeRadio:
		return set.Inputs.Radio
	case question.TypeCheckbox:
		return set.Inputs.Checkbox
	default:
		return set.Inputs.Text
	}
}

func (e *Extractor) controls(block *goquery.Selection) (question.InputType, *goquery.Selection) {
	for _, t := range controlOrder {
		if found := FirstMatch(block, InputSelector(e.Set, t)); found.Length() > 0 {
			return t, found
		}
	}
	return "", none(block)
}

// rawLabel finds the question text of a block. For choice groups, labels that
// belong to an individual radio or checkbox are skipped so the group caption
// (usually a legend) wins.
func (e *Extractor) rawLabel(doc *Document, block, input *goquery.Selection, t question.InputType, inputs *goquery.Selection) string {
	choice := t == question.TypeRadio || t == question.TypeCheckbox
	var text string
	for _, locator := range e.Set.Label {
		block.Find(locator).EachWithBreak(func(_ int, l *goquery.Selection) bool {
			if choice && e.isChoiceLabel(l, inputs) {
				return true
			}
			text = Text(l)
			return text == ""
		})
		if text != "" {
			return text
		}
	}

	if !choice {
		text = controlLabel(doc, e.Set, input)
	}
	for _, attr := range []string{"aria-label", "placeholder", "name"} {
		if text != "" {
			break
		}
		text = strings.TrimSpace(input.AttrOr(attr, ""))
	}
	return text
}

// isChoiceLabel reports whether l labels one option of a choice group rather
// than the group itself.
func (e *Extractor) isChoiceLabel(l, choices *goquery.Selection) bool {
	choiceInputs := append(append(selectors.Selector{}, e.Set.Inputs.Radio...), e.Set.Inputs.Checkbox...)
	if AnyMatch(l, choiceInputs).Length() > 0 {
		return true
	}
	target := l.AttrOr("for", "")
	if target == "" {
		return false
	}
	match := false
	choices.EachWithBreak(func(_ int, in *goquery.Selection) bool {
		match = in.AttrOr("id", "") == target
		return !match
	})
	return match
}

func (e *Extractor) required(block, input *goquery.Selection, rawLabel string) bool {
	if AnyMatch(block, e.Set.Required).Length() > 0 {
		return true
	}
	if _, ok := input.Attr("required"); ok {
		return true
	}
	if input.AttrOr("aria-required", "") == "true" {
		return true
	}
	return strings.HasSuffix(strings.TrimSpace(rawLabel), "*")
}

func (e *Extractor) options(doc *Document, block *goquery.Selection, t question.InputType, inputs *goquery.Selection) []string {
	var opts []string
	switch t {
	case question.TypeSelect:
		OptionNodes(doc, e.Set, block, inputs.First()).Each(func(_ int, opt *goquery.Selection) {
			text := Text(opt)
			value, _ := opt.Attr("value")
			if text == "" || (value == "" && isPlaceholderOption(text)) {
				return
			}
			opts = append(opts, text)
		})
	case question.TypeRadio, question.TypeCheckbox:
		inputs.Each(func(_ int, in *goquery.Selection) {
			if text := choiceLabel(doc, e.Set, in); text != "" {
				opts = append(opts, text)
			}
		})
	}
	return opts
}

// OptionNodes returns the choices of a select-like control. Native selects
// hold their options; custom listboxes point at them with aria-controls or
// render them elsewhere in the question block.
func OptionNodes(doc *Document, set selectors.Set, block, control *goquery.Selection) *goquery.Selection {
	if found := FirstMatch(control, set.Inputs.Option); found.Length() > 0 {
		return found
	}
	for _, attr := range []string{"aria-controls", "aria-owns"} {
		id := control.AttrOr(attr, "")
		if id == "" {
			continue
		}
		if popup := doc.Find("#" + cssIdent(id)); popup.Length() > 0 {
			if found := FirstMatch(popup, set.Inputs.Option); found.Length() > 0 {
				return found
			}
		}
	}
	return FirstMatch(block, set.Inputs.Option)
}

// controlLabel finds the label element pointing at one control, through a
// for= reference or by nesting.
func controlLabel(doc *Document, set selectors.Set, in *goquery.Selection) string {
	if id, ok := in.Attr("id"); ok && id != "" {
		for _, locator := range set.ControlLabel {
			if text := Text(doc.Find(locator + "[for='" + cssEscape(id) + "']").First()); text != "" {
				return text
			}
		}
	}
	for _, locator := range set.ControlLabel {
		if parent := in.Closest(locator); parent.Length() > 0 {
			if text := Text(parent); text != "" {
				return text
			}
		}
	}
	return ""
}

// choiceLabel finds the visible label of one radio/checkbox input.
func choiceLabel(doc *Document, set selectors.Set, in *goquery.Selection) string {
	if text := controlLabel(doc, set, in); text != "" {
		return text
	}
	if text := strings.TrimSpace(in.AttrOr("aria-label", "")); text != "" {
		return text
	}
	return strings.TrimSpace(in.AttrOr("value", ""))
}

// fieldCandidates are the control types a well-known field can live in.
var fieldCandidates = map[question.InputType]bool{
	question.TypeText:   true,
	question.TypeSelect: true,
	question.TypeFile:   true,
}

func (e *Extractor) inputMetadata(doc *Document, input *goquery.Selection, t question.InputType) question.Metadata {
	meta := question.Metadata{
		InputID:     input.AttrOr("id", ""),
		InputName:   input.AttrOr("name", ""),
		Placeholder: input.AttrOr("placeholder", ""),
		InputRef:    doc.Handle(input),
	}
	if n, ok := parseMaxLength(input.AttrOr("maxlength", "")); ok {
		meta.MaxLength = n
	}
	if fieldCandidates[t] {
		meta.Field = e.wellKnownField(input)
	}
	return meta
}

// wellKnownField returns the first field, in selectors.WellKnownFields order,
// whose locator matches input.
func (e *Extractor) wellKnownField(input *goquery.Selection) selectors.FieldName {
	for _, name := range selectors.WellKnownFields() {
		if sel, ok := e.Set.Fields[name]; ok && MatchesAny(input, sel) {
			return name
		}
	}
	return ""
}

func isPlaceholderOption(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "select") || strings.HasPrefix(lower, "choose") ||
		strings.HasPrefix(lower, "please select") || lower == "--" || lower == "-"
}

func parseMaxLength(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// cssEscape quotes a value for use inside a single-quoted attribute selector.
func cssEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// cssIdent escapes characters that would end an #id selector early.
func cssIdent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
