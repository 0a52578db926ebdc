package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/config"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// AuthService owns the dual-token session lifecycle: credential verification,
// token pair issuance, rotation-on-use, and revocation. Access tokens are
// stateless; the single refresh token stored on the user record is what makes
// refresh tokens revocable and enforces one active session per user.
type AuthService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// IssueTokenPair builds both signed tokens from user claims using two
// distinct secrets and expiries. It has no side effects; callers persist the
// refresh token once both tokens exist, so a signing failure leaves the
// stored session untouched.
func (s *AuthService) IssueTokenPair(user *model.User) (*model.TokenPair, error) {
	now := time.Now()
	subject := strconv.FormatInt(user.ID, 10)

	accessClaims := model.AccessTokenClaims{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.AccessTokenMaxAge) * time.Second)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// The jti makes every issued refresh token distinct even within the same
	// second; without it, rotation could re-mint the superseded token
	// byte-for-byte and equality against the stored value would pass replays.
	refreshClaims := model.RefreshTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.RefreshTokenMaxAge) * time.Second)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.config.RefreshTokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// PersistRefreshToken overwrites the user's stored refresh token, invalidating
// any previously issued one.
func (s *AuthService) PersistRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, &refreshToken)
}

// VerifyAccessToken checks signature and expiry only.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AccessTokenClaims, error) {
	var claims model.AccessTokenClaims
	if err := s.parseToken(tokenString, &claims, s.config.AccessTokenSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefreshToken checks signature and expiry only. Equality against the
// stored value is the rotation protocol's responsibility, not this primitive's.
func (s *AuthService) VerifyRefreshToken(tokenString string) (*model.RefreshTokenClaims, error) {
	var claims model.RefreshTokenClaims
	if err := s.parseToken(tokenString, &claims, s.config.RefreshTokenSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *AuthService) parseToken(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.ErrTokenExpired
		}
		return model.ErrTokenInvalid
	}
	if !token.Valid {
		return model.ErrTokenInvalid
	}
	return nil
}

// Login verifies the credential, issues a token pair, and persists the
// refresh token, overwriting any previous session. The returned user
// projection excludes password and refresh token fields.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: username or email is required", model.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrValidation)
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		// Don't reveal whether the account exists.
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Persist last: a failure here leaves no half-issued session behind.
	if err := s.PersistRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	user.RefreshToken = nil

	return &model.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates the token pair. The presented token must pass signature and
// expiry checks AND match the stored value byte for byte; a correctly signed
// but superseded token fails with ErrTokenReused, which callers surface
// distinctly from a plain invalid token.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*model.TokenPair, error) {
	claims, err := s.VerifyRefreshToken(presented)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, model.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrTokenInvalid
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, model.ErrTokenReused
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Rotation-on-use: persisting the new token invalidates the presented one.
	// Concurrent refreshes with the same stale token race on this write; only
	// the winner's token matches on the next round.
	if err := s.PersistRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout clears the stored refresh token unconditionally. Every previously
// issued refresh token fails afterwards.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil)
}
