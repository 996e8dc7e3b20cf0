package arbiter

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/signalyard/internal/command"
	"github.com/louisbranch/signalyard/internal/platform/requestctx"
)

// Join grants are short-lived EdDSA tokens minted by the lobby when a
// client is admitted to a game. The arbiter only verifies them; it never
// signs.

var (
	// ErrGrantInvalid reports a grant that fails signature or claim checks.
	ErrGrantInvalid = errors.New("join grant is invalid")
	// ErrGrantExpired reports a grant past its expiry.
	ErrGrantExpired = errors.New("join grant is expired")
)

// grantEnv holds raw env values before post-parse validation.
type grantEnv struct {
	Issuer    string `env:"SIGNALYARD_JOIN_GRANT_ISSUER"`
	Audience  string `env:"SIGNALYARD_JOIN_GRANT_AUDIENCE"`
	PublicKey string `env:"SIGNALYARD_JOIN_GRANT_PUBLIC_KEY"`
}

// GrantConfig defines how join grants are verified.
type GrantConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Enabled reports whether grant verification is configured. An unset key
// disables auth entirely (local games, tests).
func (c GrantConfig) Enabled() bool {
	return len(c.Key) == ed25519.PublicKeySize
}

// grantClaims is the internal claims type used for JWT parsing.
type grantClaims struct {
	jwt.RegisteredClaims
	ClientID  uint32 `json:"client_id"`
	CompanyID uint8  `json:"company_id"`
	Spectator bool   `json:"spectator"`
}

// LoadGrantConfigFromEnv reads join grant verification configuration. All
// three variables unset means auth is disabled; a partial set is an error.
func LoadGrantConfigFromEnv(now func() time.Time) (GrantConfig, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return GrantConfig{}, fmt.Errorf("parse join grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" && audience == "" && publicKey == "" {
		return GrantConfig{}, nil
	}
	if issuer == "" {
		return GrantConfig{}, fmt.Errorf("SIGNALYARD_JOIN_GRANT_ISSUER is required")
	}
	if audience == "" {
		return GrantConfig{}, fmt.Errorf("SIGNALYARD_JOIN_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return GrantConfig{}, fmt.Errorf("SIGNALYARD_JOIN_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return GrantConfig{}, fmt.Errorf("decode join grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return GrantConfig{}, fmt.Errorf("join grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return GrantConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// ValidateGrant verifies a join grant token and returns the client identity
// it asserts.
func ValidateGrant(grant string, cfg GrantConfig) (requestctx.Client, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return requestctx.Client{}, ErrGrantInvalid
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || !cfg.Enabled() {
		return requestctx.Client{}, errors.New("join grant verifier is not configured")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return requestctx.Client{}, ErrGrantInvalid
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return requestctx.Client{}, fmt.Errorf("%w: issuer mismatch", ErrGrantInvalid)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return requestctx.Client{}, fmt.Errorf("%w: audience mismatch", ErrGrantInvalid)
	}
	if parsed.ID == "" {
		return requestctx.Client{}, fmt.Errorf("%w: jti is required", ErrGrantInvalid)
	}
	if parsed.ExpiresAt == nil {
		return requestctx.Client{}, fmt.Errorf("%w: exp is required", ErrGrantInvalid)
	}
	if parsed.ClientID == 0 {
		return requestctx.Client{}, fmt.Errorf("%w: client id is required", ErrGrantInvalid)
	}

	now := cfg.Now().UTC()
	if !parsed.ExpiresAt.Time.UTC().After(now) {
		return requestctx.Client{}, ErrGrantExpired
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return requestctx.Client{}, fmt.Errorf("%w: not active yet", ErrGrantInvalid)
	}

	return requestctx.Client{
		ID:        command.ClientID(parsed.ClientID),
		Company:   command.CompanyID(parsed.CompanyID),
		Spectator: parsed.Spectator,
	}, nil
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
