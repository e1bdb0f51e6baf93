package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "anna@example.com",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_SetLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	store := NewStore(path)
	require.NoError(t, store.Load(), "missing file is not an error")
	require.Nil(t, store.Current())
	require.False(t, store.Authenticated())

	sess := Session{Token: "abc", ID: 7, Name: "Anna", Email: "anna@example.com", Roles: "ROLE_USER"}
	require.NoError(t, store.Set(sess))
	require.True(t, store.Authenticated())
	require.Equal(t, "abc", store.Token())

	// A fresh store hydrates from the same file.
	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	current := reloaded.Current()
	require.NotNil(t, current)
	require.Equal(t, sess, *current)

	require.NoError(t, store.Clear())
	require.Nil(t, store.Current())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	reloaded = NewStore(path)
	require.NoError(t, reloaded.Load())
	require.Nil(t, reloaded.Current())
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(Session{Token: "abc", Name: "Anna"}))

	copy := store.Current()
	copy.Name = "mutated"
	require.Equal(t, "Anna", store.Current().Name)
}

func TestStore_IsAdmin(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.False(t, store.IsAdmin())

	require.NoError(t, store.Set(Session{Token: "abc", Roles: "ROLE_USER"}))
	require.False(t, store.IsAdmin())

	require.NoError(t, store.Set(Session{Token: "abc", Roles: "ROLE_USER, ROLE_ADMIN"}))
	require.True(t, store.IsAdmin())
}

func TestStore_Expired(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.False(t, store.Expired(), "no session never reads as expired")

	require.NoError(t, store.Set(Session{Token: testToken(t, time.Now().Add(time.Hour))}))
	require.False(t, store.Expired())

	require.NoError(t, store.Set(Session{Token: testToken(t, time.Now().Add(-time.Minute))}))
	require.True(t, store.Expired())

	require.NoError(t, store.Set(Session{Token: "not-a-jwt"}))
	require.False(t, store.Expired(), "unparsable tokens are left to the backend")
}
