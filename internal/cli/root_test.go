package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/models"
	"monitor-swiezosci/internal/session"
	"monitor-swiezosci/internal/validate"
)

func testApp(t *testing.T, backend http.Handler) *App {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return &App{
		Session: store,
		Client:  api.NewClient(server.URL, store),
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	app := testApp(t, http.NotFoundHandler())
	_, err := execute(t, app, "--format", "yaml", "units")
	require.ErrorContains(t, err, `invalid format "yaml"`)
}

func TestLoginCommand_StoresSession(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "jwt-token", ID: 4, Name: "Anna", Email: "anna@example.com", Roles: "ROLE_USER",
		})
	}))

	out, err := execute(t, app, "login", "--email", "anna@example.com", "--password", "hunter22")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as Anna (anna@example.com)")
	require.True(t, app.Session.Authenticated())
	require.Equal(t, "jwt-token", app.Session.Token())
}

func TestLoginCommand_ValidatesBeforeRequest(t *testing.T) {
	called := false
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := execute(t, app, "login", "--email", "not-an-email", "--password", "x")
	require.ErrorContains(t, err, "invalid input")
	require.ErrorContains(t, err, "email")
	require.False(t, called, "invalid input never reaches the backend")
}

func TestSignupCommand_MismatchedPasswords(t *testing.T) {
	app := testApp(t, http.NotFoundHandler())

	_, err := execute(t, app, "signup",
		"--name", "Anna",
		"--email", "anna@example.com",
		"--password", "hunter2234",
		"--confirm-password", "different11")
	require.ErrorContains(t, err, "Passwords do not match")
}

func TestLogoutCommand_ClearsSession(t *testing.T) {
	app := testApp(t, http.NotFoundHandler())
	require.NoError(t, app.Session.Set(session.Session{Token: "abc"}))

	out, err := execute(t, app, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Logged out")
	require.False(t, app.Session.Authenticated())
}

func TestOverviewCommand_JSONFormat(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := json.Marshal(map[string]any{"unitId": 5, "latestFreshnessScore": 72})
		json.NewEncoder(w).Encode(models.Envelope{Status: "success", Data: data})
	}))
	require.NoError(t, app.Session.Set(session.Session{Token: "abc"}))

	out, err := execute(t, app, "--format", "json", "overview", "5")
	require.NoError(t, err)

	var overview models.FreshnessOverview
	require.NoError(t, json.Unmarshal([]byte(out), &overview))
	require.Equal(t, int64(5), overview.UnitID)
	require.Equal(t, 72, *overview.LatestFreshnessScore)
}

func TestFormError_StableOrder(t *testing.T) {
	result := validate.Result{
		Valid: false,
		Errors: map[string][]string{
			"b": {"second"},
			"a": {"first"},
		},
	}
	require.EqualError(t, formError(result), "invalid input: a: first | b: second")
}
