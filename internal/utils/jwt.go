package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // sentinel for malformed claims
	"strconv" // device-scoped subject encoding
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// Staff clients send it in the Authorization header.  The token only proves
// who signed in on which device; whether the session is still live is
// decided by the session store.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// StaffClaims are the claims carried by a staff access token.
type StaffClaims struct {
	EmployeeID uint64
	Role       string
	Device     string
}

// ErrInvalidClaims is returned by ParseAccessToken for a token that verifies
// but lacks the expected claims.
var ErrInvalidClaims = errors.New("invalid claims")

// NewAccessToken builds and signs an HS256 JWT for an employee on a device.
// The JWT includes sub (employee id), role, dev (device id), exp and iat.
func NewAccessToken(secret string, claims StaffClaims, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(claims.EmployeeID, 10),
		"role": claims.Role,
		"dev":  claims.Device,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and extracts the staff claims.
// Only HMAC signing methods are accepted.
func ParseAccessToken(secret, raw string) (StaffClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return StaffClaims{}, err
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return StaffClaims{}, ErrInvalidClaims
	}
	sub, _ := mc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return StaffClaims{}, ErrInvalidClaims
	}
	dev, _ := mc["dev"].(string)
	if dev == "" {
		return StaffClaims{}, ErrInvalidClaims
	}
	role, _ := mc["role"].(string)
	return StaffClaims{EmployeeID: id, Role: role, Device: dev}, nil
}
