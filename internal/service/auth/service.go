package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/auth"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	userRepo user.UserRepository
	jwt      jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

// Login verifies the password and issues an access/refresh token pair. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if u.Blocked {
		return auth.LoginResponse{}, auth.ErrAccountBlocked
	}
	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    accessExp,
		UserID:       u.ID,
		EmployeeID:   u.EmployeeID,
		Role:         string(u.Role),
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. Revoked
// tokens (logout) are refused.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwt.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if typ, ok := token.Get("type"); !ok || typ != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if u.Blocked {
		return auth.RefreshResponse{}, auth.ErrAccountBlocked
	}

	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, err
	}
	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExp,
	}, nil
}

// Logout revokes the refresh token; the short-lived access token simply
// expires.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	s.jwt.RevokeToken(refreshToken)
	return nil
}
