package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/askholmes/holmes/pkg/adapter"
	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

// Auth is a thin typed wrapper over the transport for /auth operations
type Auth struct {
	client *adapter.Client
}

// NewAuth creates an Auth facade
func NewAuth(client *adapter.Client) interfaces.Auth {
	return &Auth{client: client}
}

type userEnvelope struct {
	User *model.User `json:"user"`
}

func (s *Auth) Login(ctx context.Context, email string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, goerr.New("email is required")
	}

	raw, err := s.client.Do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email}, nil)
	if err != nil {
		return nil, err
	}

	return decodeUser(raw)
}

func (s *Auth) Register(ctx context.Context, email string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, goerr.New("email is required")
	}

	raw, err := s.client.Do(ctx, http.MethodPost, "/auth/register", map[string]string{"email": email}, nil)
	if err != nil {
		return nil, err
	}

	return decodeUser(raw)
}

func (s *Auth) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	raw, err := s.client.Do(ctx, http.MethodGet, "/auth/user/"+string(id), nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeUser(raw)
}

func decodeUser(raw json.RawMessage) (*model.User, error) {
	var env userEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user response")
	}
	if env.User == nil {
		return nil, goerr.New("user missing in response")
	}
	return env.User, nil
}
