package auth

import "context"

// AuthService verifies credentials and issues tokens. Credential issuance
// itself (initial passwords, onboarding) belongs to the identity provider
// collaborator, not this core.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
