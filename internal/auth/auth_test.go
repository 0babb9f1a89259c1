package auth

import (
	"testing"

	"carte-backend/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Chez Marcel", "chez-marcel"},
		{"accents français", "Crêperie de l'Été", "creperie-de-l-ete"},
		{"cédille", "Le Garçon", "le-garcon"},
		{"espaces superflus", "  La  Table  ", "la-table"},
		{"ponctuation condensée", "Bistro!!! & Co", "bistro-co"},
		{"chiffres conservés", "Brasserie 1900", "brasserie-1900"},
		{"vide", "", ""},
		{"que des symboles", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenRoundtrip(t *testing.T) {
	secret := "une-clef-de-test-suffisamment-longue"
	rid := uint(42)
	user := &models.User{
		ID:           7,
		Email:        "marcel@example.com",
		Role:         models.RoleOwner,
		RestaurantID: &rid,
	}

	token, err := GenerateToken(secret, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleOwner {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleOwner)
	}
	if claims.RestaurantID == nil || *claims.RestaurantID != rid {
		t.Errorf("RestaurantID = %v, want %d", claims.RestaurantID, rid)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "x@example.com", Role: models.RoleSuperAdmin}

	token, err := GenerateToken("premier-secret-suffisamment-long-aussi", user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken("un-autre-secret-tout-aussi-long-la", token); err == nil {
		t.Error("ParseToken should reject a token signed with another secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "pas-un-jwt"); err == nil {
		t.Error("ParseToken should reject malformed input")
	}
}
