package tokenstore

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// Sentinel errors for the two distinguishable validation failures.
// ErrTokenExpired means the signature checked out but the expiry has
// passed; everything else (bad signature, malformed structure, wrong
// algorithm) is ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenPayload is the claim set carried by issued tokens.
// Subject is the account username.
type TokenPayload struct {
	jwt.RegisteredClaims
}

// Store issues and validates signed bearer tokens. Tokens are stateless:
// there is no revocation list, a token stays valid until its expiry.
type Store interface {
	// Issue generates a signed token for the user with subject = username,
	// issued-at = now and expiry = now + the configured duration.
	// The expiry time is returned alongside the token string.
	Issue(user *models.User) (string, time.Time, error)

	// Validate parses and verifies a token string, returning its payload.
	// Fails with ErrTokenExpired or ErrTokenInvalid.
	Validate(tokenStr string) (*TokenPayload, error)
}

type tokenStore struct {
	log           *slog.Logger
	secret        []byte
	tokenDuration time.Duration
	method        jwt.SigningMethod
	methodName    string
}

// signingMethods maps the configurable algorithm identifiers onto the
// symmetric JWT methods this service accepts.
var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// New builds a token store from configuration. The algorithm must be one of
// HS256, HS384 or HS512; anything else is a configuration error so startup
// can fail fast rather than silently downgrade.
func New(logger *slog.Logger, signingSecret string, tokenDuration time.Duration, algorithm string) (Store, error) {
	if signingSecret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}

	return &tokenStore{
		log:           logger,
		secret:        []byte(signingSecret),
		tokenDuration: tokenDuration,
		method:        method,
		methodName:    algorithm,
	}, nil
}

func (t *tokenStore) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.tokenDuration)
	payload := TokenPayload{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(t.method, payload)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	t.log.Debug("issued token", "sub", user.Username, "expires_at", expiresAt)
	return signed, expiresAt, nil
}

func (t *tokenStore) Validate(tokenStr string) (*TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenPayload{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{t.methodName}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		t.log.Debug("token rejected", "err", err)
		return nil, ErrTokenInvalid
	}

	payload, ok := token.Claims.(*TokenPayload)
	if !ok || !token.Valid || payload.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return payload, nil
}
