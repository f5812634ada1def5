package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

var ErrNotSignedIn = goerr.New("not signed in")

// Session is the persisted authenticated identity. It is written once at
// login and removed at logout; question data itself is never persisted.
type Session struct {
	UserID model.UserID `yaml:"user_id"`
	Email  string       `yaml:"email"`
}

// Store reads and writes the session file
type Store struct {
	path string
}

// DefaultPath returns the session file location under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve user config dir")
	}
	return filepath.Join(dir, "holmes", "session.yml"), nil
}

// NewStore creates a session store at the given path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Login authenticates by email and persists the resulting identity
func (s *Store) Login(ctx context.Context, auth interfaces.Auth, email string) (*Session, error) {
	user, err := auth.Login(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.save(user)
}

// Register creates a new account and persists the resulting identity
func (s *Store) Register(ctx context.Context, auth interfaces.Auth, email string) (*Session, error) {
	user, err := auth.Register(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.save(user)
}

// Current loads the persisted identity, or ErrNotSignedIn
func (s *Store) Current() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotSignedIn
		}
		return nil, goerr.Wrap(err, "failed to read session file", goerr.V("path", s.path))
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, goerr.Wrap(err, "failed to parse session file", goerr.V("path", s.path))
	}
	if sess.UserID == "" {
		return nil, ErrNotSignedIn
	}

	return &sess, nil
}

// Logout removes the persisted identity. Logging out while signed out is
// not an error.
func (s *Store) Logout() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove session file", goerr.V("path", s.path))
	}
	return nil
}

func (s *Store) save(user *model.User) (*Session, error) {
	sess := &Session{UserID: user.ID, Email: user.Email}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, goerr.Wrap(err, "failed to create session dir", goerr.V("path", s.path))
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return nil, goerr.Wrap(err, "failed to write session file", goerr.V("path", s.path))
	}

	return sess, nil
}
