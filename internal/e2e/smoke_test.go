package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newFoodcookServer(t)

	stdout, stderr, err := runFC(t, binaryPath, home, server.URL,
		"auth", "register",
		"--username", "alice",
		"--email", "alice@example.com",
		"--password", "secret",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Registered and signed in as alice")

	stdout, stderr, err = runFC(t, binaryPath, home, server.URL, "dish", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Mapo Tofu")
	assert.Contains(t, stdout, "showing 1 of 1")

	_, stderr, err = runFC(t, binaryPath, home, server.URL, "auth", "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, _, err = runFC(t, binaryPath, home, server.URL, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not logged in")
}

func newFoodcookServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/register":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "smoke-token",
				"user":  map[string]any{"id": 1, "username": "alice", "email": "alice@example.com", "role": "user"},
			})
		case r.Header.Get("Authorization") != "Bearer smoke-token":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing token"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/dishes":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Mapo Tofu","price":12.5}],"total":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"route not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "fc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build fc binary: %s", string(output))
	return binaryPath
}

func runFC(t *testing.T, binaryPath, home, baseURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"FC_API_BASE_URL="+strings.TrimSuffix(baseURL, "/")+"/api",
		"FC_SESSION_SECRET_BACKEND=file",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
