package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const applicationPage = `<html><body>
<form id="application_form">
  <div class="field">
    <label for="first_name">First Name <span class="asterisk">*</span></label>
    <input type="text" id="first_name" name="first_name">
  </div>
  <div class="field">
    <label for="linkedin">LinkedIn Profile (Optional)</label>
    <input type="text" id="linkedin" name="linkedin">
  </div>
  <div class="field">
    <label for="cl">Cover Letter</label>
    <textarea id="cl" name="cover_letter"></textarea>
  </div>
  <div class="field">
    <label for="gender">Gender</label>
    <select id="gender" name="gender">
      <option value="">Please select</option>
      <option value="1">Male</option>
      <option value="2">Female</option>
      <option value="3">Decline to self identify</option>
    </select>
  </div>
  <button type="submit">Submit Application</button>
</form>
</body></html>`

const testProfile = `{
  "firstName": "Ada",
  "lastName": "Lovelace",
  "email": "ada@example.com",
  "linkedin": "https://www.linkedin.com/in/ada",
  "workAuthorized": true
}`

// execute runs the root command in-process with fresh flag state and an
// environment that cannot reach real services.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"GEMINI_API_KEY", "DATABASE_URL", "AUTOFILL_STORAGE", "AUTOFILL_SQLITE_PATH", "AUTOFILL_PROFILE"} {
		t.Setenv(env, "")
	}
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func servePage(t *testing.T, html string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/apply"
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
