package models

import "github.com/golang-jwt/jwt/v5"

// HubClaims is the access token payload issued by the hub. The hub user id
// travels in the jti claim; older tokens only carry it as the subject.
type HubClaims struct {
	jwt.RegisteredClaims
}

// HubID returns the hub user identifier carried by the token.
func (c *HubClaims) HubID() string {
	if c == nil {
		return ""
	}
	if c.ID != "" {
		return c.ID
	}
	return c.Subject
}
