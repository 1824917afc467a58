// Package auth derives the per-user Croissant API token from a Discord user id.
package auth

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
)

var (
	ErrMissingUser   = errors.New("auth: missing user id")
	ErrMissingSecret = errors.New("auth: hash secret not configured")
)

// GenKey returns the lowercase hex MD5 of userID + userID + secret.
func GenKey(userID, secret string) string {
	sum := md5.Sum([]byte(userID + userID + secret))
	return hex.EncodeToString(sum[:])
}

// Keyer derives tokens with a fixed secret.
type Keyer struct {
	Secret string
}

func (k Keyer) Key(userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingUser
	}
	if k.Secret == "" {
		return "", ErrMissingSecret
	}
	return GenKey(userID, k.Secret), nil
}
