// Package auth implements the hub's mocked sign-in. Credentials live in a
// local slot, sessions in another; there is no server and this is not a
// security boundary. Passwords are still stored bcrypt-hashed.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Service runs the mocked auth flows against the kv store.
type Service struct {
	kv localstore.Store
}

func NewService(kv localstore.Store) *Service {
	return &Service{kv: kv}
}

// SignUp registers a new credential row. Blank email or password is rejected,
// as is a duplicate email (case-insensitive).
func (s *Service) SignUp(email, password string, admin bool) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	users, err := s.users()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Admin:        admin,
		CreatedAt:    time.Now(),
	}
	users = append(users, user)

	if err := s.writeUsers(users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SignIn checks the credential table and writes the session slot on success.
func (s *Service) SignIn(email, password string) (models.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	users, err := s.users()
	if err != nil {
		return models.Session{}, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return models.Session{}, ErrInvalidCredentials
		}
		session := models.Session{Email: u.Email, Admin: u.Admin, SignedIn: time.Now()}
		data, err := json.Marshal(session)
		if err != nil {
			return models.Session{}, fmt.Errorf("failed to encode session: %w", err)
		}
		if err := s.kv.Put(localstore.KeySession, data); err != nil {
			return models.Session{}, err
		}
		return session, nil
	}

	return models.Session{}, ErrInvalidCredentials
}

// SignOut clears the session slot. Signing out while signed out is a no-op.
func (s *Service) SignOut() error {
	return s.kv.Delete(localstore.KeySession)
}

// CurrentUser returns the active session, or ErrNotSignedIn.
func (s *Service) CurrentUser() (models.Session, error) {
	data, ok, err := s.kv.Get(localstore.KeySession)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		return models.Session{}, ErrNotSignedIn
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("corrupt session slot: %w", err)
	}
	return session, nil
}

// Settings returns the saved display preferences, or the defaults.
func (s *Service) Settings() (models.Settings, error) {
	data, ok, err := s.kv.Get(localstore.KeyUserSettings)
	if err != nil {
		return models.Settings{}, err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings persists display preferences.
func (s *Service) SaveSettings(settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.kv.Put(localstore.KeyUserSettings, data)
}

func (s *Service) users() ([]models.User, error) {
	data, ok, err := s.kv.Get(localstore.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("corrupt user table: %w", err)
	}
	return users, nil
}

func (s *Service) writeUsers(users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user table: %w", err)
	}
	return s.kv.Put(localstore.KeyUsers, data)
}
