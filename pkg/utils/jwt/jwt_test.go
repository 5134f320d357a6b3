package jwt

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	Init("configured-secret")

	token, err := GenerateToken(7, "admin@imovia.com.br", "admin")
	if err != nil {
		t.Fatalf("could not generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("could not validate token: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "admin@imovia.com.br" || claims.Role != "admin" {
		t.Errorf("claims = %+v, want the generated identity", claims)
	}
}

func TestInit_ChangesSigningSecret(t *testing.T) {
	Init("first-secret")
	token, err := GenerateToken(1, "user@example.com", "user")
	if err != nil {
		t.Fatalf("could not generate token: %v", err)
	}

	Init("second-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed under the old secret validated after Init with a new one")
	}

	Init("first-secret")
	if _, err := ValidateToken(token); err != nil {
		t.Errorf("token did not validate under its own secret: %v", err)
	}
}
