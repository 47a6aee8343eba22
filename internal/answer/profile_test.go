package answer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/autofill-core/internal/selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"city": "London",
		"country": "UK",
		"github": "https://github.com/ada",
		"workAuthorized": true
	}`), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.Field(selectors.FieldFullName))
	assert.Equal(t, "https://github.com/ada", p.Field(selectors.FieldGitHub))
	assert.Equal(t, "", p.Field(selectors.FieldResume))
	assert.True(t, p.WorkAuthorized)
	assert.Equal(t, "Name: Ada Lovelace\nLocation: London, UK", p.Background())
}

func TestLoadProfile_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"firstName": "Ada", "lastName": "L", "email": "not-an-email"}`), 0o600))
	_, err := LoadProfile(bad)
	assert.Error(t, err)

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte(`{`), 0o600))
	_, err = LoadProfile(garbled)
	assert.Error(t, err)

	_, err = LoadProfile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
