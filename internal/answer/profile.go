// Package answer routes canonical questions to an answering strategy and
// produces the values an application form should be filled with.
package answer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/autofill-core/internal/selectors"
)

var validate = validator.New()

// Profile is the applicant data simple and yes/no questions are answered from.
type Profile struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`

	WorkAuthorized    bool `json:"workAuthorized"`
	NeedsSponsorship  bool `json:"needsSponsorship"`
	WillingToRelocate bool `json:"willingToRelocate"`

	// Summary is free text handed to the answer generator.
	Summary string `json:"summary,omitempty"`
}

// LoadProfile reads and validates a JSON profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks required fields and URL formats.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// Field returns the profile value for a well-known form field.
func (p *Profile) Field(name selectors.FieldName) string {
	switch name {
	case selectors.FieldFirstName:
		return p.FirstName
	case selectors.FieldLastName:
		return p.LastName
	case selectors.FieldFullName:
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	case selectors.FieldEmail:
		return p.Email
	case selectors.FieldPhone:
		return p.Phone
	case selectors.FieldAddress:
		return p.Address
	case selectors.FieldCity:
		return p.City
	case selectors.FieldState:
		return p.State
	case selectors.FieldCountry:
		return p.Country
	case selectors.FieldZip:
		return p.Zip
	case selectors.FieldLinkedIn:
		return p.LinkedIn
	case selectors.FieldGitHub:
		return p.GitHub
	case selectors.FieldPortfolio:
		return p.Portfolio
	case selectors.FieldWebsite:
		return p.Website
	default:
		return ""
	}
}

// Background renders the profile as text for the answer generator.
func (p *Profile) Background() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s %s\n", p.FirstName, p.LastName)
	var loc []string
	for _, part := range []string{p.City, p.State, p.Country} {
		if part != "" {
			loc = append(loc, part)
		}
	}
	if len(loc) > 0 {
		fmt.Fprintf(&sb, "Location: %s\n", strings.Join(loc, ", "))
	}
	if p.Summary != "" {
		sb.WriteString(p.Summary)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
