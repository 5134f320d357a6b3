// Package authz decides who may enter the admin area. Authorization is a
// pluggable predicate over the token claims, so replacing the strategy
// (role claim, static identity, future group membership) needs no change
// in the route setup.
package authz

import (
	"strings"

	"imovia_backend/pkg/utils/jwt"
)

// Predicate reports whether the authenticated identity is an administrator.
type Predicate func(claims *jwt.Claims) bool

// RoleIs authorizes on the role claim carried in the token.
func RoleIs(role string) Predicate {
	return func(claims *jwt.Claims) bool {
		return claims != nil && claims.Role == role
	}
}

// StaticEmail authorizes a single configured identity. Kept for
// deployments that predate role claims.
func StaticEmail(email string) Predicate {
	return func(claims *jwt.Claims) bool {
		return claims != nil && email != "" &&
			strings.EqualFold(claims.Email, email)
	}
}

// Any authorizes when any of the given predicates does.
func Any(preds ...Predicate) Predicate {
	return func(claims *jwt.Claims) bool {
		for _, p := range preds {
			if p(claims) {
				return true
			}
		}
		return false
	}
}
