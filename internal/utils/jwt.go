// Package utils provides the two cryptographic helpers of the service:
// bcrypt password hashing and signed bearer tokens.
package utils

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/user-directory/internal/model"
)

// ErrInvalidToken covers every way a token can fail verification:
// malformed, forged, expired or carrying an unreadable snapshot. Callers
// deliberately cannot tell these apart; all of them mean the request is
// unauthenticated.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 JWT for the user and returns it together
// with its absolute expiration in epoch milliseconds. The subject claim
// is the JSON-serialized user snapshot with the password already
// redacted, so verification can rebuild the caller identity without
// touching the store.
func IssueToken(secret string, user model.User, validity time.Duration) (model.Authentication, error) {
	snapshot, err := json.Marshal(user.Redacted())
	if err != nil {
		return model.Authentication{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(validity)
	claims := jwt.MapClaims{
		"sub": string(snapshot),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return model.Authentication{}, err
	}
	return model.Authentication{Token: signed, Expiration: exp.UnixMilli()}, nil
}

// VerifyToken checks signature and expiration and decodes the embedded
// user snapshot. Role changes made after issuance are not visible here;
// a live token keeps the roles it was minted with until it expires.
func VerifyToken(secret, raw string) (model.User, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return model.User{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.User{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return model.User{}, ErrInvalidToken
	}
	var user model.User
	if err := json.Unmarshal([]byte(sub), &user); err != nil {
		return model.User{}, ErrInvalidToken
	}
	return user, nil
}
