package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns when the token cookie should expire: now+ttl, or the
// token's own "exp" claim when the token is a JWT that expires sooner. An
// "exp" that is not after now is ignored, so a fresh login always yields a
// live cookie. The token is not verified; it is opaque to the client.
func TokenExpiry(token string, now time.Time, ttl time.Duration) time.Time {
	expiry := now.Add(ttl)

	exp, ok := JWTExpiry(token)
	if ok && exp.After(now) && exp.Before(expiry) {
		return exp
	}
	return expiry
}

// JWTExpiry reads the "exp" claim of an unverified JWT.
func JWTExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
