package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/models"
)

func TestSignUpAndSignIn(t *testing.T) {
	kv := localstore.NewMemoryStore()
	service := NewService(kv)

	user, err := service.SignUp("Max@Example.com", "geheim", false)
	require.NoError(t, err)
	require.Equal(t, "max@example.com", user.Email)
	require.NotEqual(t, "geheim", user.PasswordHash, "password must not be stored in plain text")

	session, err := service.SignIn("max@example.com", "geheim")
	require.NoError(t, err)
	require.Equal(t, "max@example.com", session.Email)

	current, err := service.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, session.Email, current.Email)
}

func TestSignUpRejectsDuplicatesAndBlanks(t *testing.T) {
	service := NewService(localstore.NewMemoryStore())

	_, err := service.SignUp("max@example.com", "geheim", false)
	require.NoError(t, err)

	_, err = service.SignUp("max@example.com", "anders", false)
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = service.SignUp("", "geheim", false)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.SignUp("neu@example.com", "", false)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	service := NewService(localstore.NewMemoryStore())

	_, err := service.SignUp("max@example.com", "geheim", false)
	require.NoError(t, err)

	_, err = service.SignIn("max@example.com", "falsch")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.SignIn("unbekannt@example.com", "geheim")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	service := NewService(localstore.NewMemoryStore())

	_, err := service.SignUp("max@example.com", "geheim", true)
	require.NoError(t, err)
	session, err := service.SignIn("max@example.com", "geheim")
	require.NoError(t, err)
	require.True(t, session.Admin)

	require.NoError(t, service.SignOut())

	_, err = service.CurrentUser()
	require.ErrorIs(t, err, ErrNotSignedIn)

	// Signing out twice is fine.
	require.NoError(t, service.SignOut())
}

func TestSettings(t *testing.T) {
	service := NewService(localstore.NewMemoryStore())

	settings, err := service.Settings()
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings(), settings)

	settings.DisplayName = "Max"
	settings.Theme = "dark"
	require.NoError(t, service.SaveSettings(settings))

	loaded, err := service.Settings()
	require.NoError(t, err)
	require.Equal(t, "Max", loaded.DisplayName)
	require.Equal(t, "dark", loaded.Theme)
}
