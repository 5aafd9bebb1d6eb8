package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/sharetab/sharetab/internal/auth"
	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/pkg/api"
)

// AuthService implements the AuthService RPC surface: account registration
// and password login, issuing JWT session tokens.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	slog.Info("Register request", "party", req.Msg.Party)

	if req.Msg.DisplayName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("display name required"))
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Party, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		slog.Warn("Registration failed", "party", req.Msg.Party, "error", err)
		return nil, asAuthError(err)
	}

	token, err := s.jwtManager.Generate(user.Party)
	if err != nil {
		slog.Error("Failed to generate token", "party", user.Party, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("User registered", "party", user.Party)
	return connect.NewResponse(&api.RegisterResponse{
		Party:       string(user.Party),
		DisplayName: user.DisplayName,
		Token:       token,
	}), nil
}

// Login authenticates a party and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request", "party", req.Msg.Party)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Party, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "party", req.Msg.Party, "error", err)
		return nil, asAuthError(err)
	}

	token, err := s.jwtManager.Generate(user.Party)
	if err != nil {
		slog.Error("Failed to generate token", "party", user.Party, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.LoginResponse{
		Party:       string(user.Party),
		DisplayName: user.DisplayName,
		Token:       token,
	}), nil
}

func asAuthError(err error) error {
	var partyErr *identity.InvalidPartyError
	switch {
	case errors.Is(err, auth.ErrPartyTaken):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword), errors.As(err, &partyErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
