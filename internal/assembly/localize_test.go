package assembly

import (
	"testing"

	"carte-backend/internal/models"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"fr", LangFR},
		{"en", LangEN},
		{"it", LangIT},
		{"es", LangES},
		{"de", LangFR}, // hors ensemble -> français
		{"", LangFR},
		{"EN", LangFR}, // codes en minuscules uniquement
	}
	for _, tt := range tests {
		if got := ParseLanguage(tt.in); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_Fallback(t *testing.T) {
	item := &models.MenuItem{
		Title:   "Tarte au citron",
		TitleEN: "Lemon tart",
		TitleIT: "", // pas de traduction italienne
	}

	tests := []struct {
		name string
		lang Language
		want string
	}{
		{"variante présente", LangEN, "Lemon tart"},
		{"variante vide -> repli", LangIT, "Tarte au citron"},
		{"variante absente -> repli", LangES, "Tarte au citron"},
		{"français verbatim", LangFR, "Tarte au citron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(item, FieldTitle, tt.lang); got != tt.want {
				t.Errorf("Resolve(title, %s) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestResolve_MissingFieldDegradesToEmpty(t *testing.T) {
	// Addon n'a pas de champ text : chaîne vide, pas d'erreur
	addon := &models.Addon{Title: "Sauce", Description: "Maison"}
	if got := Resolve(addon, FieldText, LangEN); got != "" {
		t.Errorf("Resolve(addon, text) = %q, want empty", got)
	}

	// type inconnu : chaîne vide
	if got := Resolve(struct{}{}, FieldTitle, LangFR); got != "" {
		t.Errorf("Resolve(unknown type) = %q, want empty", got)
	}
}

func TestResolve_Category(t *testing.T) {
	cat := &models.Category{
		Title:  "Desserts",
		TextES: "Dulces de la casa",
		Text:   "Nos douceurs",
	}
	if got := Resolve(cat, FieldText, LangES); got != "Dulces de la casa" {
		t.Errorf("Resolve(category, text, es) = %q", got)
	}
	if got := Resolve(cat, FieldText, LangEN); got != "Nos douceurs" {
		t.Errorf("Resolve(category, text, en) = %q, want repli français", got)
	}
}
