package pinbox

import "github.com/golang-jwt/jwt/v5"

// UserIDFromToken derives the user id that prefixes every API endpoint
// path from the token's audience claim. The token is decoded, not
// verified: the server checks the signature, the client only needs the
// routing claim. Returns an AuthError when the token structure is
// malformed or the claim is absent.
func UserIDFromToken(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", &AuthError{Reason: "malformed access token", Err: err}
	}

	aud, err := parsed.Claims.GetAudience()
	if err != nil {
		return "", &AuthError{Reason: "unreadable audience claim", Err: err}
	}
	if len(aud) == 0 || aud[0] == "" {
		return "", &AuthError{Reason: "token has no audience claim"}
	}

	return aud[0], nil
}
