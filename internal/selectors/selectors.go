// Package selectors holds the declarative DOM locator tables for every supported
// applicant tracking system. Adapters address the page only through these tables,
// so a markup change on one platform means editing only that platform's Set.
package selectors

import (
	"fmt"
	"strings"
)

// PlatformID identifies a job application platform.
type PlatformID string

const (
	// Workday is the Workday ATS (myworkdayjobs.com and friends)
	Workday PlatformID = "workday"
	// Greenhouse is the Greenhouse ATS
	Greenhouse PlatformID = "greenhouse"
	// Lever is the Lever ATS
	Lever PlatformID = "lever"
	// LinkedIn is LinkedIn Easy Apply
	LinkedIn PlatformID = "linkedin"
	// Ashby is the Ashby ATS
	Ashby PlatformID = "ashby"
	// ICIMS is detected but has no dedicated selector set
	ICIMS PlatformID = "icims"
	// SmartRecruiters is detected but has no dedicated selector set
	SmartRecruiters PlatformID = "smartrecruiters"
	// Jobvite is detected but has no dedicated selector set
	Jobvite PlatformID = "jobvite"
	// Generic is the permissive fallback for any HTML form
	Generic PlatformID = "generic"
)

// Selector is an ordered list of CSS locator alternatives. Alternatives are
// tried in order and the first one that matches wins.
type Selector []string

// First returns the preferred locator, or "" when empty.
func (s Selector) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Join returns all alternatives as one CSS selector group.
func (s Selector) Join() string {
	return strings.Join(s, ", ")
}

// Empty reports whether the selector has no locator.
func (s Selector) Empty() bool {
	return len(s) == 0
}

// FieldName names a well-known applicant field that maps 1:1 to profile data.
type FieldName string

// Well-known fields
const (
	FieldFirstName   FieldName = "firstName"
	FieldLastName    FieldName = "lastName"
	FieldFullName    FieldName = "fullName"
	FieldEmail       FieldName = "email"
	FieldPhone       FieldName = "phone"
	FieldAddress     FieldName = "address"
	FieldCity        FieldName = "city"
	FieldState       FieldName = "state"
	FieldCountry     FieldName = "country"
	FieldZip         FieldName = "zip"
	FieldLinkedIn    FieldName = "linkedin"
	FieldGitHub      FieldName = "github"
	FieldPortfolio   FieldName = "portfolio"
	FieldWebsite     FieldName = "website"
	FieldResume      FieldName = "resume"
	FieldCoverLetter FieldName = "coverLetter"
)

var wellKnownFields = []FieldName{
	FieldFirstName, FieldLastName, FieldFullName, FieldEmail, FieldPhone,
	FieldAddress, FieldCity, FieldState, FieldCountry, FieldZip,
	FieldLinkedIn, FieldGitHub, FieldPortfolio, FieldWebsite,
	FieldResume, FieldCoverLetter,
}

// WellKnownFields returns every field name in a fixed order. Locator matching
// walks this order so an input that two fields claim resolves the same way
// every time.
func WellKnownFields() []FieldName {
	return append([]FieldName(nil), wellKnownFields...)
}

// ProfileBacked reports whether the field is answered with profile text.
// Uploads are well-known fields too, but nothing types them in.
func (f FieldName) ProfileBacked() bool {
	return f != "" && f != FieldResume && f != FieldCoverLetter
}

// Inputs locates the input controls inside a question block, by type.
type Inputs struct {
	Text     Selector
	Textarea Selector
	Select   Selector
	Checkbox Selector
	Radio    Selector
	File     Selector
	// Option locates the choices of a Select control, inside the control or,
	// for custom listboxes, inside the question block.
	Option   Selector
}

// Navigation locates the multi-step form controls.
type Navigation struct {
	Next     Selector
	Previous Selector
	Submit   Selector
}

// Progress locates the step indicator of multi-page forms.
type Progress struct {
	Container   Selector
	CurrentStep Selector
	Steps       Selector
}

// Set is the complete locator table for one platform.
type Set struct {
	Platform      PlatformID
	Form          Selector
	QuestionBlock Selector
	Label         Selector
	ControlLabel  Selector // label of one control, by for= or by nesting
	Required      Selector
	Inputs        Inputs
	Fields        map[FieldName]Selector
	Navigation    Navigation
	Progress      Progress
	EEOSection    Selector
	Errors        Selector
}

// Validate checks that every role an adapter relies on resolves to at least
// one locator. It returns an error naming all missing roles.
func (s Set) Validate() error {
	var missing []string
	check := func(role string, sel Selector) {
		if sel.Empty() {
			missing = append(missing, role)
		}
	}

	check("form", s.Form)
	check("questionBlock", s.QuestionBlock)
	check("label", s.Label)
	check("required", s.Required)
	check("inputs.text", s.Inputs.Text)
	check("inputs.textarea", s.Inputs.Textarea)
	check("inputs.select", s.Inputs.Select)
	check("inputs.checkbox", s.Inputs.Checkbox)
	check("inputs.radio", s.Inputs.Radio)
	check("inputs.file", s.Inputs.File)
	check("inputs.option", s.Inputs.Option)
	check("controlLabel", s.ControlLabel)
	check("navigation.next", s.Navigation.Next)
	check("navigation.submit", s.Navigation.Submit)
	check("progress.container", s.Progress.Container)
	check("eeoSection", s.EEOSection)
	check("errors", s.Errors)
	for _, name := range []FieldName{FieldEmail, FieldResume} {
		check("fields."+string(name), s.Fields[name])
	}

	if len(missing) > 0 {
		return fmt.Errorf("selector set %s has no locator for: %s", s.Platform, strings.Join(missing, ", "))
	}
	return nil
}

// Lookup returns a copy of the selector set registered for a platform.
// Platforms that are detected but have no dedicated table return false.
func Lookup(id PlatformID) (Set, bool) {
	set, ok := tables[id]
	if !ok {
		return Set{}, false
	}
	return set.clone(), true
}

// MustLookup is like Lookup but panics when the platform has no table.
// Used by adapter constructors, whose tables are compiled in.
func MustLookup(id PlatformID) Set {
	set, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("selectors: no selector set for platform %q", id))
	}
	return set
}

// Platforms returns the ids that have a selector set.
func Platforms() []PlatformID {
	ids := make([]PlatformID, 0, len(tables))
	for _, id := range []PlatformID{Workday, Greenhouse, Lever, LinkedIn, Ashby, Generic} {
		if _, ok := tables[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s Set) clone() Set {
	out := s
	out.Form = cloneSelector(s.Form)
	out.QuestionBlock = cloneSelector(s.QuestionBlock)
	out.Label = cloneSelector(s.Label)
	out.ControlLabel = cloneSelector(s.ControlLabel)
	out.Required = cloneSelector(s.Required)
	out.Inputs = Inputs{
		Text:     cloneSelector(s.Inputs.Text),
		Textarea: cloneSelector(s.Inputs.Textarea),
		Select:   cloneSelector(s.Inputs.Select),
		Checkbox: cloneSelector(s.Inputs.Checkbox),
		Radio:    cloneSelector(s.Inputs.Radio),
		File:     cloneSelector(s.Inputs.File),
		Option:   cloneSelector(s.Inputs.Option),
	}
	out.Fields = make(map[FieldName]Selector, len(s.Fields))
	for k, v := range s.Fields {
		out.Fields[k] = cloneSelector(v)
	}
	out.Navigation = Navigation{
		Next:     cloneSelector(s.Navigation.Next),
		Previous: cloneSelector(s.Navigation.Previous),
		Submit:   cloneSelector(s.Navigation.Submit),
	}
	out.Progress = Progress{
		Container:   cloneSelector(s.Progress.Container),
		CurrentStep: cloneSelector(s.Progress.CurrentStep),
		Steps:       cloneSelector(s.Progress.Steps),
	}
	out.EEOSection = cloneSelector(s.EEOSection)
	out.Errors = cloneSelector(s.Errors)
	return out
}

func cloneSelector(s Selector) Selector {
	if s == nil {
		return nil
	}
	out := make(Selector, len(s))
	copy(out, s)
	return out
}
