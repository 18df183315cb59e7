package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTokenTTL defines the fallback validity period for session tokens.
const DefaultSessionTokenTTL = 7 * 24 * time.Hour

// DefaultInviteTokenTTL defines the fallback validity period for invite tokens.
const DefaultInviteTokenTTL = 7 * 24 * time.Hour

// JWTConfig bundles the configuration required to build a JWTService.
type JWTConfig struct {
	Secret          string
	Issuer          string
	SessionTokenTTL time.Duration
	InviteTokenTTL  time.Duration
	Clock           func() time.Time
}

// SessionClaims represents the custom claims embedded in session tokens.
type SessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// InviteClaims represents the custom claims embedded in invite tokens.
// Exactly one of WorkspaceID and ChannelID is set, matching the invite target.
type InviteClaims struct {
	Email       string `json:"email"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	ChannelID   string `json:"channel_id,omitempty"`
	jwt.RegisteredClaims
}

// InviteTokenInput holds the parameters used when generating a new invite token.
type InviteTokenInput struct {
	Email       string
	WorkspaceID string
	ChannelID   string
}

// JWTService is responsible for issuing and validating JSON Web Tokens.
type JWTService struct {
	secret     []byte
	issuer     string
	sessionTTL time.Duration
	inviteTTL  time.Duration
	now        func() time.Time
}

// NewJWTService constructs a JWTService instance when provided with the required configuration.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret must be provided")
	}

	sessionTTL := cfg.SessionTokenTTL
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTokenTTL
	}

	inviteTTL := cfg.InviteTokenTTL
	if inviteTTL <= 0 {
		inviteTTL = DefaultInviteTokenTTL
	}

	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}

	return &JWTService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		sessionTTL: sessionTTL,
		inviteTTL:  inviteTTL,
		now:        now,
	}, nil
}

// SessionTokenTTL reports the validity period applied to issued session tokens.
func (s *JWTService) SessionTokenTTL() time.Duration {
	return s.sessionTTL
}

// GenerateSessionToken issues a signed JWT identifying an authenticated user.
func (s *JWTService) GenerateSessionToken(userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("jwt: user id is required")
	}

	now := s.now()
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, nil
}

// ValidateSessionToken parses and validates a signed session JWT.
func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	var claims SessionClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("jwt: missing user id claim")
	}
	return &claims, nil
}

// GenerateInviteToken issues a signed JWT binding an invitee email to a target.
func (s *JWTService) GenerateInviteToken(input InviteTokenInput) (string, error) {
	if input.Email == "" {
		return "", errors.New("jwt: invitee email is required")
	}
	if (input.WorkspaceID == "") == (input.ChannelID == "") {
		return "", errors.New("jwt: invite requires exactly one target")
	}

	now := s.now()
	claims := &InviteClaims{
		Email:       input.Email,
		WorkspaceID: input.WorkspaceID,
		ChannelID:   input.ChannelID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   input.Email,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.inviteTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, nil
}

// ValidateInviteToken parses and validates a signed invite JWT.
func (s *JWTService) ValidateInviteToken(tokenString string) (*InviteClaims, error) {
	var claims InviteClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("jwt: missing email claim")
	}
	if (claims.WorkspaceID == "") == (claims.ChannelID == "") {
		return nil, errors.New("jwt: invite token target is ambiguous")
	}
	return &claims, nil
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims) error {
	if tokenString == "" {
		return errors.New("jwt: token string is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("jwt: parse token: %w", err)
	}

	if s.issuer != "" {
		issuer, err := claims.GetIssuer()
		if err != nil || issuer != s.issuer {
			return errors.New("jwt: invalid issuer")
		}
	}

	return nil
}
