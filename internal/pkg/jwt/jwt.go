package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
)

var ErrInvalidToken = apperror.New(apperror.ErrAuthorization, "INVALID_TOKEN", "invalid or expired token")

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID   string
	AgencyID string
}

type Service interface {
	GenerateAccessToken(userID, agencyID string) (token string, expiresAt int64, err error)

	// Verify decodes and validates an access token, failing with ErrInvalidToken
	Verify(token string) (Identity, error)

	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, agencyID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()
	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   userID,
		"agency_id": agencyID,
		"type":      "access",
		"exp":       expiresAt,
	})
	return token, expiresAt, err
}

func (j *JWTService) Verify(tokenString string) (Identity, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return IdentityFromToken(token)
}

// IdentityFromToken reads the identity claims of an already verified access token.
func IdentityFromToken(token jwt.Token) (Identity, error) {
	if token == nil {
		return Identity{}, ErrInvalidToken
	}
	if tokenType, _ := claim(token, "type"); tokenType != "access" {
		return Identity{}, ErrInvalidToken
	}
	userID, _ := claim(token, "user_id")
	agencyID, _ := claim(token, "agency_id")
	if userID == "" || agencyID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, AgencyID: agencyID}, nil
}

func claim(token jwt.Token, name string) (string, bool) {
	v, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NewJWTService signs HS256 tokens with secretKey; expiration is a Go duration such as "24h".
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	ttl, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime: ttl,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}
