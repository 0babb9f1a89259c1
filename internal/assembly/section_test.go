package assembly

import (
	"reflect"
	"testing"

	"carte-backend/internal/models"
)

const (
	specialsLabel    = "Spéciaux"
	supplementsLabel = "Suppléments"
)

func basicBundle() *Bundle {
	return &Bundle{
		Category: models.Category{ID: 1, Title: "Plats"},
		Subcategories: []models.Subcategory{
			{ID: 10, CategoryID: 1, Title: "General", Order: 1},
		},
		Items: []models.MenuItem{
			{ID: 100, SubcategoryID: 10, Title: "Plat B", Price: 12.5, Order: 2},
			{ID: 101, SubcategoryID: 10, Title: "Plat A", Price: 9, Order: 1},
		},
	}
}

func itemIDs(s Section) []uint {
	ids := make([]uint, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestBuildSections_GeneralSection(t *testing.T) {
	sections := BuildSections(basicBundle(), LangFR, specialsLabel, supplementsLabel)

	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	general := sections[0]
	if general.Title != "" {
		t.Errorf("general section title = %q, want empty", general.Title)
	}
	if general.Subtitle != nil {
		t.Errorf("general section subtitle = %v, want nil", *general.Subtitle)
	}
	// tri croissant par ordre
	if got, want := itemIDs(general), []uint{101, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("general items = %v, want %v", got, want)
	}
	if general.Items[1].PriceLabel != "12,50 €" {
		t.Errorf("price label = %q, want %q", general.Items[1].PriceLabel, "12,50 €")
	}
}

func TestBuildSections_SpecialPromotedOutOfGeneral(t *testing.T) {
	b := basicBundle()
	b.Items = append(b.Items, models.MenuItem{
		ID: 102, SubcategoryID: 10, Title: "Plat du chef", IsSpecial: true, Order: 1,
	})

	sections := BuildSections(b, LangFR, specialsLabel, supplementsLabel)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2 (général + spéciaux)", len(sections))
	}

	general := sections[0]
	for _, it := range general.Items {
		if it.ID == 102 {
			t.Error("special item should not appear in the general section")
		}
	}

	specials := sections[1]
	if specials.Title != specialsLabel {
		t.Errorf("specials title = %q, want %q", specials.Title, specialsLabel)
	}
	if !specials.IsSpecial {
		t.Error("specials section should be flagged IsSpecial")
	}
	if got, want := itemIDs(specials), []uint{102}; !reflect.DeepEqual(got, want) {
		t.Errorf("specials items = %v, want %v", got, want)
	}
}

func TestBuildSections_CustomSubcategories(t *testing.T) {
	b := &Bundle{
		Category: models.Category{ID: 1},
		Subcategories: []models.Subcategory{
			{ID: 20, Title: "Pizzas", Text: "Au feu de bois", Order: 2},
			{ID: 21, Title: "Pâtes", TitleEN: "Pasta", Order: 1},
			{ID: 22, Title: "Vide", Order: 3}, // aucune ligne -> omise
		},
		Items: []models.MenuItem{
			{ID: 200, SubcategoryID: 20, Title: "Margherita", Order: 1},
			{ID: 201, SubcategoryID: 21, Title: "Carbonara", Order: 1},
		},
	}

	sections := BuildSections(b, LangEN, specialsLabel, supplementsLabel)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}

	// tri des sous-catégories par ordre, pas par ordre de chargement
	if sections[0].Title != "Pasta" {
		t.Errorf("first custom section = %q, want %q (localized)", sections[0].Title, "Pasta")
	}
	if sections[1].Title != "Pizzas" {
		t.Errorf("second custom section = %q, want %q", sections[1].Title, "Pizzas")
	}
	if sections[1].Subtitle == nil || *sections[1].Subtitle != "Au feu de bois" {
		t.Errorf("subtitle = %v, want %q", sections[1].Subtitle, "Au feu de bois")
	}
	if sections[0].Subtitle != nil {
		t.Errorf("empty text should give nil subtitle, got %q", *sections[0].Subtitle)
	}
}

// Comportement historique conservé : un plat spécial dans une sous-catégorie
// personnalisée reste listé dans sa section ET dans les Spéciaux.
func TestBuildSections_SpecialInCustomSubcategoryAppearsTwice(t *testing.T) {
	b := &Bundle{
		Category: models.Category{ID: 1},
		Subcategories: []models.Subcategory{
			{ID: 20, Title: "Pizzas", Order: 1},
		},
		Items: []models.MenuItem{
			{ID: 200, SubcategoryID: 20, Title: "Margherita", Order: 1},
			{ID: 201, SubcategoryID: 20, Title: "Tartufo", IsSpecial: true, Order: 2},
		},
	}

	sections := BuildSections(b, LangFR, specialsLabel, supplementsLabel)
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if got, want := itemIDs(sections[0]), []uint{200, 201}; !reflect.DeepEqual(got, want) {
		t.Errorf("custom section items = %v, want %v", got, want)
	}
	if got, want := itemIDs(sections[1]), []uint{201}; !reflect.DeepEqual(got, want) {
		t.Errorf("specials items = %v, want %v", got, want)
	}
}

func TestBuildSections_AddonsOnly(t *testing.T) {
	b := &Bundle{
		Category: models.Category{ID: 1},
		Addons: []models.Addon{
			{ID: 300, Title: "Frites", Price: 3, Order: 3},
			{ID: 301, Title: "Sauce", Description: "Maison", Price: 1, Order: 1},
		},
	}

	sections := BuildSections(b, LangFR, specialsLabel, supplementsLabel)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want exactly 1 (Suppléments)", len(sections))
	}
	supp := sections[0]
	if supp.Title != supplementsLabel {
		t.Errorf("title = %q, want %q", supp.Title, supplementsLabel)
	}
	if got, want := itemIDs(supp), []uint{301, 300}; !reflect.DeepEqual(got, want) {
		t.Errorf("addon items = %v, want %v", got, want)
	}
	for _, it := range supp.Items {
		if it.Has3D || it.Model3DURL != "" {
			t.Errorf("addon %d should never carry 3D assets", it.ID)
		}
	}
	if supp.Items[0].Subtitle != "Maison" {
		t.Errorf("addon subtitle = %q, want description", supp.Items[0].Subtitle)
	}
}

func TestBuildSections_StableOrderOnTies(t *testing.T) {
	b := &Bundle{
		Category: models.Category{ID: 1},
		Subcategories: []models.Subcategory{
			{ID: 10, Title: "General", Order: 1},
		},
		Items: []models.MenuItem{
			{ID: 100, SubcategoryID: 10, Order: 1},
			{ID: 101, SubcategoryID: 10, Order: 1},
			{ID: 102, SubcategoryID: 10, Order: 1},
		},
	}

	sections := BuildSections(b, LangFR, specialsLabel, supplementsLabel)
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	// égalité d'ordre : l'ordre de chargement est conservé
	if got, want := itemIDs(sections[0]), []uint{100, 101, 102}; !reflect.DeepEqual(got, want) {
		t.Errorf("tie order = %v, want %v", got, want)
	}
}

func TestBuildSections_Deterministic(t *testing.T) {
	b := basicBundle()
	b.Items = append(b.Items, models.MenuItem{ID: 103, SubcategoryID: 10, IsSpecial: true, Order: 5})
	b.Addons = append(b.Addons, models.Addon{ID: 300, Title: "Frites", Order: 1})

	first := BuildSections(b, LangEN, specialsLabel, supplementsLabel)
	second := BuildSections(b, LangEN, specialsLabel, supplementsLabel)
	if !reflect.DeepEqual(first, second) {
		t.Error("BuildSections should be deterministic for a fixed bundle")
	}
}

func TestBuildSections_NilBundle(t *testing.T) {
	sections := BuildSections(nil, LangFR, specialsLabel, supplementsLabel)
	if len(sections) != 0 {
		t.Errorf("nil bundle should give an empty sequence, got %d sections", len(sections))
	}
}

func TestIsGeneralSubcategory(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"General", true},
		{"GENERAL", true},
		{"Menu general", true},
		{"Plats generaux", false}, // le pluriel échappe à la convention de nommage
		{"Pizzas", false},
		{"", false},
	}
	for _, tt := range tests {
		sc := models.Subcategory{Title: tt.title}
		if got := IsGeneralSubcategory(sc); got != tt.want {
			t.Errorf("IsGeneralSubcategory(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
