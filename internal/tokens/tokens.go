package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Bearer tokens are opaque to this client, but when one happens to be a
// JWT its exp claim lets authed calls refresh proactively instead of
// paying a guaranteed 401 round trip. Payload-only parsing, no signature
// verification — validity is the backend's call.

// ExpiresAt returns the token's expiry and true when the token is a JWT
// carrying an exp claim. Any other token reports (zero, false).
func ExpiresAt(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ExpiresWithin reports whether the token expires inside the next d.
// Unknown expiry is reported as false — an opaque token is sent as-is.
func ExpiresWithin(token string, d time.Duration) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return false
	}
	return time.Now().Add(d).After(exp)
}
