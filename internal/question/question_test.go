package question

import (
	"testing"

	"github.com/jonathan/autofill-core/internal/selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Email Address", "email address"},
		{"strips punctuation", "Why do you want this role?", "why do you want this role"},
		{"collapses whitespace", "  First \t\n  Name  ", "first name"},
		{"keeps underscores and digits", "Field_2 (optional)*", "field_2 optional"},
		{"keeps unicode letters", "Ciudad / Población", "ciudad población"},
		{"empty", "", ""},
		{"only punctuation", "?!*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Why do you want this role?",
		"  LinkedIn  Profile (URL) ",
		"Are you legally authorized to work in the U.S.?",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestID_StableAcrossFormattingAndPlatform(t *testing.T) {
	variants := []Raw{
		{Text: "Why do you want this role?", Type: "textarea", Platform: selectors.Greenhouse},
		{Text: "  WHY do you want THIS role ", Type: "textarea", Platform: selectors.Workday},
		{Text: "why, do you want this role!!", Type: "text", Platform: selectors.Lever},
	}

	var ids []string
	for _, raw := range variants {
		q, err := New(raw)
		require.NoError(t, err)
		ids = append(ids, q.ID())
	}

	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])
	assert.Equal(t, IDFor("why do you want this role"), ids[0])
	assert.Regexp(t, `^q_[0-9a-z]+$`, ids[0])
}

func TestNew_ExplicitIDWins(t *testing.T) {
	q, err := New(Raw{ID: "custom-1", Text: "Email", Type: "email"})
	require.NoError(t, err)
	assert.Equal(t, "custom-1", q.ID())
}

func TestNew_PreservesRawText(t *testing.T) {
	q := MustNew(Raw{Text: "  Tell us about yourself! ", Type: "textarea"})
	assert.Equal(t, "Tell us about yourself!", q.RawText())
	assert.Equal(t, "tell us about yourself", q.NormalizedText())
}

func TestNew_OptionsOnlyForSelectable(t *testing.T) {
	text := MustNew(Raw{Text: "City", Type: "text", Options: []string{"ignored"}})
	assert.Nil(t, text.Options())

	radio := MustNew(Raw{Text: "Relocate?", Type: "radio", Options: []string{" Yes ", "", "No"}})
	assert.Equal(t, []string{"Yes", "No"}, radio.Options())

	// Accessor returns a copy
	opts := radio.Options()
	opts[0] = "mutated"
	assert.Equal(t, "Yes", radio.Options()[0])
}

func TestNew_Defaults(t *testing.T) {
	q := MustNew(Raw{Text: "Email", Type: "email", Required: true})
	assert.Equal(t, TypeText, q.InputType())
	assert.Equal(t, selectors.Generic, q.Platform())
	assert.True(t, q.Required())
	assert.Equal(t, BlockRef(""), q.Block())
}

func TestNew_CopiesMetadata(t *testing.T) {
	extra := map[string]string{"data-qa": "why"}
	q := MustNew(Raw{
		Text:     "Why us?",
		Type:     "textarea",
		Block:    "blk-1",
		Metadata: Metadata{InputName: "question_123", InputRef: "in-1", Extra: extra},
	})
	extra["data-qa"] = "mutated"

	assert.Equal(t, BlockRef("blk-1"), q.Block())
	assert.Equal(t, "question_123", q.Metadata().InputName)
	assert.Equal(t, BlockRef("in-1"), q.Metadata().InputRef)
	assert.Equal(t, "why", q.Metadata().Extra["data-qa"])
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   Raw
		field string
	}{
		{"missing text", Raw{Type: "text"}, "text"},
		{"missing type", Raw{Text: "Email"}, "type"},
		{"unsupported type", Raw{Text: "Email", Type: "hidden"}, "type"},
		{"no word characters", Raw{Text: "???", Type: "text"}, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.raw)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Raw{}) })
}

func TestParseInputType(t *testing.T) {
	tests := map[string]InputType{
		"text":            TypeText,
		"EMAIL":           TypeText,
		"tel":             TypeText,
		"url":             TypeText,
		"number":          TypeText,
		"textarea":        TypeTextarea,
		"radio":           TypeRadio,
		"checkbox":        TypeCheckbox,
		"select-one":      TypeSelect,
		"select-multiple": TypeSelect,
		"file":            TypeFile,
	}
	for in, want := range tests {
		got, err := ParseInputType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
