package authz

import (
	"testing"

	"imovia_backend/pkg/utils/jwt"
)

func TestRoleIs(t *testing.T) {
	pred := RoleIs("admin")

	if !pred(&jwt.Claims{Role: "admin"}) {
		t.Error("RoleIs(admin) rejected an admin claim")
	}
	if pred(&jwt.Claims{Role: "user"}) {
		t.Error("RoleIs(admin) accepted a user claim")
	}
	if pred(nil) {
		t.Error("RoleIs(admin) accepted nil claims")
	}
}

func TestStaticEmail(t *testing.T) {
	pred := StaticEmail("admin@imovia.com.br")

	if !pred(&jwt.Claims{Email: "Admin@imovia.com.br"}) {
		t.Error("StaticEmail is case sensitive, want case-insensitive match")
	}
	if pred(&jwt.Claims{Email: "other@imovia.com.br"}) {
		t.Error("StaticEmail accepted a different identity")
	}
	if StaticEmail("")(&jwt.Claims{Email: ""}) {
		t.Error("StaticEmail with empty config accepted an empty email")
	}
}

func TestAny(t *testing.T) {
	pred := Any(RoleIs("admin"), StaticEmail("legacy@imovia.com.br"))

	if !pred(&jwt.Claims{Role: "user", Email: "legacy@imovia.com.br"}) {
		t.Error("Any rejected a claim matching the second predicate")
	}
	if pred(&jwt.Claims{Role: "user", Email: "nobody@example.com"}) {
		t.Error("Any accepted a claim matching no predicate")
	}
}
