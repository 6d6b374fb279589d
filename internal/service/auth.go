package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chadmarket/backoffice/internal/backend"
	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/store"
)

// IdentityProvider is the slice of the managed identity provider the
// authenticator needs: credential verification and session revocation.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (accessToken string, err error)
	SignOut(ctx context.Context, accessToken string) error
}

// Principal is the authenticated admin identity attached to a request.
type Principal struct {
	Email string
	Role  model.AdminRole

	// providerToken is the identity provider's session token, carried so
	// logout can revoke the provider session. Never exposed in responses.
	providerToken string
}

// Auth verifies credentials against the identity provider, resolves the
// caller's administrative role, and issues/validates session tokens.
type Auth struct {
	store     *store.Store
	idp       IdentityProvider
	jwtSecret []byte
}

// NewAuth creates the authenticator.
func NewAuth(st *store.Store, idp IdentityProvider, jwtSecret string) *Auth {
	return &Auth{
		store:     st,
		idp:       idp,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login verifies the credentials, then performs the second authorization
// check against the admin_roles table. When the identity authenticates but
// holds no administrative role, the just-created provider session is revoked
// before ErrNotAuthorized is returned, so no authenticated-but-unauthorized
// state survives the call.
func (a *Auth) Login(ctx context.Context, email, password string) (*model.Session, error) {
	providerToken, err := a.idp.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, backend.ErrSignInRejected) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity provider: %w", err)
	}

	grant, err := a.store.GetGrantByEmail(ctx, email)
	if err != nil {
		// Credential check passed but the role lookup did not; tear the
		// provider session down either way.
		_ = a.idp.SignOut(ctx, providerToken)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, fmt.Errorf("role lookup: %w", err)
	}

	expiresAt := time.Now().Add(model.SessionTTL)
	token, err := a.issueToken(grant, providerToken, expiresAt)
	if err != nil {
		_ = a.idp.SignOut(ctx, providerToken)
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &model.Session{
		Token:     token,
		Email:     grant.Email,
		Name:      grant.Name,
		Role:      grant.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the provider session embedded in the token. It is
// idempotent: a missing, expired, or malformed token is not an error, the
// caller clears its cookies regardless.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := a.parseClaims(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ProviderToken == "" {
		return nil
	}
	if err := a.idp.SignOut(ctx, claims.ProviderToken); err != nil {
		return fmt.Errorf("revoke provider session: %w", err)
	}
	return nil
}

// Validate checks a session token and returns the authenticated principal.
func (a *Auth) Validate(token string) (*Principal, error) {
	claims, err := a.parseClaims(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	role := model.AdminRole(claims.Role)
	if !role.Valid() {
		return nil, ErrNotAuthorized
	}
	return &Principal{
		Email:         claims.Email,
		Role:          role,
		providerToken: claims.ProviderToken,
	}, nil
}

type sessionClaims struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	ProviderToken string `json:"pt,omitempty"`
	jwt.RegisteredClaims
}

func (a *Auth) issueToken(grant *model.AdminGrant, providerToken string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:         grant.Email,
		Role:          string(grant.Role),
		ProviderToken: providerToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   grant.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "backoffice",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

func (a *Auth) parseClaims(tokenStr string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
