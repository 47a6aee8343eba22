package question

import (
	"regexp"
	"strings"

	"github.com/jonathan/autofill-core/internal/selectors"
)

// Category is the answering strategy a question is routed to.
type Category string

// Categories in precedence order.
const (
	CategorySimple    Category = "simple"
	CategoryYesNo     Category = "yes_no"
	CategoryEEO       Category = "eeo"
	CategoryAI        Category = "ai"
	CategoryUnhandled Category = "unhandled"
)

type fieldPattern struct {
	field   selectors.FieldName
	pattern *regexp.Regexp
	// exact patterns match the whole normalized label. Words like "state",
	// "country" and "name" appear in ordinary questions, so they only count
	// when they are the label.
	exact bool
}

// Order matters: "email address" must resolve to email, not address, and
// "linkedin profile url" to linkedin, not website.
var simpleFieldPatterns = []fieldPattern{
	{field: selectors.FieldEmail, pattern: regexp.MustCompile(`(?i)\be-?mail\b`)},
	{field: selectors.FieldPhone, pattern: regexp.MustCompile(`(?i)\b(phone|mobile|telephone|cell)\b`)},
	{field: selectors.FieldLinkedIn, pattern: regexp.MustCompile(`(?i)\blinked\s*in\b`)},
	{field: selectors.FieldGitHub, pattern: regexp.MustCompile(`(?i)\bgit\s*hub\b`)},
	{field: selectors.FieldPortfolio, pattern: regexp.MustCompile(`(?i)\bportfolio\b`)},
	{field: selectors.FieldWebsite, pattern: regexp.MustCompile(`(?i)\b(website|personal site|homepage)\b`)},
	{field: selectors.FieldFirstName, pattern: regexp.MustCompile(`(?i)\b(first|given|preferred)\s*name\b`)},
	{field: selectors.FieldLastName, pattern: regexp.MustCompile(`(?i)\b(last|family|sur)\s*name\b`)},
	{field: selectors.FieldFullName, pattern: regexp.MustCompile(`^(your |candidate )?(full )?(legal )?name$`), exact: true},
	{field: selectors.FieldAddress, pattern: regexp.MustCompile(`^(street |home |mailing |current |residential )?address( line 1)?$`), exact: true},
	{field: selectors.FieldCity, pattern: regexp.MustCompile(`^(current |home )?city( town)?( of residence)?$`), exact: true},
	{field: selectors.FieldState, pattern: regexp.MustCompile(`^(state|province|region)( (state|province|region))*$`), exact: true},
	{field: selectors.FieldCountry, pattern: regexp.MustCompile(`^(current |home )?country( of residence)?$`), exact: true},
	{field: selectors.FieldZip, pattern: regexp.MustCompile(`(?i)\b(zip|postal)(\s*code)?\b`)},
}

var (
	yesNoOptionPattern = regexp.MustCompile(`(?i)\b(yes|no)\b`)
	yesNoTextPattern   = regexp.MustCompile(`(?i)^\s*(are|do|have|will|can|would|did|is) you\b|\b(authorized|eligible|willing)\b`)
	eeoPattern         = regexp.MustCompile(`(?i)\b(gender|race|ethnicity|ethnic|veteran|disability|disabled|sex|hispanic|latino)\b`)
	needsAIPattern     = regexp.MustCompile(`(?i)\b(why|describe|explain|tell us|cover letter|experience with|about yourself)\b`)
)

// SimpleField returns the profile field a question maps to directly, if any.
// Only text inputs and dropdowns qualify: a choice group or an essay box is
// never a contact field, whatever its label says. A field located through the
// platform's well-known field table wins over the label.
func (q *Question) SimpleField() (selectors.FieldName, bool) {
	if q.inputType != TypeText && q.inputType != TypeSelect {
		return "", false
	}
	if f := q.metadata.Field; f != "" && f.ProfileBacked() {
		return f, true
	}
	for _, fp := range simpleFieldPatterns {
		text := q.rawText
		if fp.exact {
			text = q.normalizedText
		}
		if fp.pattern.MatchString(text) {
			return fp.field, true
		}
	}
	return "", false
}

// IsSimpleField reports whether the question asks for well-known personal
// data that maps 1:1 onto a profile field.
func (q *Question) IsSimpleField() bool {
	_, ok := q.SimpleField()
	return ok
}

// IsYesNo reports whether the question is a binary yes/no question. Option
// labels are checked first since they are more reliable than phrasing.
func (q *Question) IsYesNo() bool {
	if q.inputType == TypeRadio || q.inputType == TypeCheckbox {
		if yesNoOptionPattern.MatchString(strings.Join(q.options, " ")) {
			return true
		}
	}
	return yesNoTextPattern.MatchString(q.rawText)
}

// IsEEO reports whether the question is an equal-opportunity demographic question.
func (q *Question) IsEEO() bool {
	return eeoPattern.MatchString(q.rawText)
}

// NeedsAI reports whether the question is an open-ended prose question.
// Only textareas qualify; short text fields never do.
func (q *Question) NeedsAI() bool {
	if q.inputType != TypeTextarea {
		return false
	}
	return needsAIPattern.MatchString(q.rawText)
}

// Classify applies the fixed precedence simple > yes/no > EEO > AI > unhandled.
// The predicates themselves may overlap; this is where overlap is resolved.
func Classify(q *Question) Category {
	switch {
	case q.IsSimpleField():
		return CategorySimple
	case q.IsYesNo():
		return CategoryYesNo
	case q.IsEEO():
		return CategoryEEO
	case q.NeedsAI():
		return CategoryAI
	default:
		return CategoryUnhandled
	}
}
