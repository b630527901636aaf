package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService(time.Hour)
	orgID := int64(10)
	user := &models.User{
		ID:             42,
		Email:          "student@example.com",
		RoleType:       models.RoleOrgAdmin,
		OrganizationID: &orgID,
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("userID = %d, want 42", claims.UserID)
	}
	if claims.Email != "student@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != string(models.RoleOrgAdmin) {
		t.Errorf("role = %q, want org-admin", claims.Role)
	}
	if claims.OrganizationID == nil || *claims.OrganizationID != 10 {
		t.Errorf("organizationID = %v, want 10", claims.OrganizationID)
	}
	if claims.Issuer != "campushub.test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "student@example.com", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.ValidateToken(accessToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := testJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "student@example.com", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := issuer.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	verifier := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	})
	if _, err := verifier.ValidateToken(accessToken); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	svc := testJWTService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %q", token)
	}

	for _, header := range []string{"", "abc.def.ghi", "Basic dXNlcg==", "bearer abc"} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ExtractBearerToken(%q) err = %v, want ErrInvalidFormat", header, err)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sekret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sekret123" {
		t.Fatal("password not hashed")
	}
	if !CheckPassword(hash, "Sekret123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "Wrong1234") {
		t.Error("wrong password accepted")
	}
}
