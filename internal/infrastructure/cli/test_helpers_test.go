package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/config"
)

func resetBurndownFlags() {
	burndownSprint = 0
	burndownConfig = ""
	burndownOut = ""
	burndownJSON = false
	burndownNoChart = false
	burndownVerbose = false
}

// newRedmineServer serves a fixed set of sprint 1 issues.
func newRedmineServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeTestConfig(t *testing.T, url string) string {
	t.Helper()
	t.Setenv(config.EnvURL, "")
	t.Setenv(config.EnvAPIKey, "")

	path := filepath.Join(t.TempDir(), "burndown.yaml")
	body := "redmine:\n  url: " + url + "\n  projects: [suseqa]\n  max_attempts: 1\n  timeout: 5s\nteam:\n  tag: y\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// runRoot executes the root command and returns stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(resetBurndownFlags)

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
