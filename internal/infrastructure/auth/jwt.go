package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/config"
	apperrors "github.com/tasknest/tasknest/internal/shared/errors"
)

const (
	accessTokenLabel  = "access token"
	refreshTokenLabel = "refresh token"
)

// Claims is the signed payload: {sub, email, iat, exp} plus a random jti that
// keeps two pairs issued within the same second distinct.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPayload identifies the subject of a token pair.
type TokenPayload struct {
	Sub   string
	Email string
}

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// JWTService signs access and refresh tokens with separate HS256 secrets.
// It keeps no state; revocation happens by deleting sessions.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	parserOpts    []jwt.ParserOption
}

// NewJWTService builds the signer. A non-empty cfg.Issuer is stamped into
// every token as iss and required on verification.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(biztime.NowUTC),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &JWTService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
		issuer:        cfg.Issuer,
		parserOpts:    opts,
	}
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GeneratePair signs both tokens concurrently. refreshTTL overrides the
// configured refresh lifetime when positive (remember-me logins).
func (s *JWTService) GeneratePair(ctx context.Context, payload TokenPayload, refreshTTL time.Duration) (*TokenPair, error) {
	if payload.Sub == "" {
		return nil, fmt.Errorf("token subject is required")
	}
	if refreshTTL <= 0 {
		refreshTTL = s.refreshTTL
	}

	now := biztime.NowUTC()
	pair := &TokenPair{
		AccessExpiresAt:  now.Add(s.accessTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		tok, err := s.sign(payload, now, pair.AccessExpiresAt, s.accessSecret)
		if err != nil {
			return fmt.Errorf("failed to sign access token: %w", err)
		}
		pair.AccessToken = tok
		return nil
	})
	g.Go(func() error {
		tok, err := s.sign(payload, now, pair.RefreshExpiresAt, s.refreshSecret)
		if err != nil {
			return fmt.Errorf("failed to sign refresh token: %w", err)
		}
		pair.RefreshToken = tok
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *JWTService) sign(payload TokenPayload, issuedAt, expiresAt time.Time, secret []byte) (string, error) {
	claims := &Claims{
		Email: payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   payload.Sub,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *JWTService) parse(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, s.parserOpts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// VerifyAccess validates an access token. The returned error tells expired,
// not-yet-active and malformed tokens apart so clients can decide whether to refresh.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, s.accessSecret)
	if err == nil {
		return claims, nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, apperrors.NewTokenExpiredError(accessTokenLabel)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return nil, apperrors.NewTokenNotActiveError(accessTokenLabel)
	default:
		return nil, apperrors.NewTokenInvalidError(accessTokenLabel)
	}
}

// VerifyRefresh validates a refresh token. Every defect maps to the same error.
func (s *JWTService) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, s.refreshSecret)
	if err != nil {
		return nil, apperrors.NewTokenInvalidError(refreshTokenLabel)
	}
	return claims, nil
}
