package assembly

import (
	"sort"
	"strings"

	"carte-backend/internal/models"
)

// Bundle regroupe les lignes d'une catégorie : sous-catégories, plats et
// suppléments, tels que chargés par le fournisseur de données.
type Bundle struct {
	Category      models.Category      `json:"category"`
	Subcategories []models.Subcategory `json:"subcategories"`
	Items         []models.MenuItem    `json:"items"`
	Addons        []models.Addon       `json:"addons"`
}

// Section est un groupe ordonné de plats rendu d'un bloc sur la carte
// publique. Un titre vide signifie qu'aucun en-tête n'est affiché.
type Section struct {
	Title     string        `json:"title"`
	Subtitle  *string       `json:"subtitle"`
	IsSpecial bool          `json:"is_special"`
	Items     []DisplayItem `json:"items"`
}

type DisplayItem struct {
	ID           uint   `json:"id"`
	Image        string `json:"image,omitempty"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	PriceLabel   string `json:"price_label"`
	Has3D        bool   `json:"has_3d"`
	Model3DURL   string `json:"model_3d_url,omitempty"`
	Model3DARURL string `json:"model_3d_ar_url,omitempty"`
}

// IsGeneralSubcategory - la sous-catégorie "générale" est reconnue par
// convention de nommage sur son titre canonique, pas par un drapeau dédié.
// Prédicat isolé pour pouvoir changer la convention sans toucher au reste.
func IsGeneralSubcategory(sc models.Subcategory) bool {
	return strings.Contains(strings.ToLower(sc.Title), "general")
}

// BuildSections construit la liste ordonnée des sections d'une catégorie :
// plats généraux sans en-tête, puis sous-catégories dans leur ordre, puis
// les plats spéciaux regroupés, puis les suppléments. Déterministe pour un
// bundle donné ; un bundle nil donne une liste vide.
func BuildSections(b *Bundle, lang Language, specialsLabel, supplementsLabel string) []Section {
	if b == nil {
		return []Section{}
	}

	sections := make([]Section, 0, len(b.Subcategories)+2)

	// 1. Sous-catégorie générale : plats non spéciaux, sans en-tête
	if general, ok := findGeneral(b.Subcategories); ok {
		var items []models.MenuItem
		for _, it := range b.Items {
			if it.SubcategoryID == general.ID && !it.IsSpecial {
				items = append(items, it)
			}
		}
		sortByOrder(items)
		if len(items) > 0 {
			sections = append(sections, Section{
				Title: "",
				Items: displayItems(items, lang),
			})
		}
	}

	// 2. Sous-catégories personnalisées, par ordre croissant.
	// Les plats spéciaux ne sont PAS filtrés ici : un spécial dans une
	// sous-catégorie personnalisée apparaît aussi dans la section Spéciaux
	// (comportement historique, voir DESIGN.md)
	customs := make([]models.Subcategory, 0, len(b.Subcategories))
	for _, sc := range b.Subcategories {
		if !IsGeneralSubcategory(sc) {
			customs = append(customs, sc)
		}
	}
	sort.SliceStable(customs, func(i, j int) bool { return customs[i].Order < customs[j].Order })

	for i := range customs {
		sc := customs[i]
		var items []models.MenuItem
		for _, it := range b.Items {
			if it.SubcategoryID == sc.ID {
				items = append(items, it)
			}
		}
		sortByOrder(items)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{
			Title:    Resolve(&sc, FieldTitle, lang),
			Subtitle: optional(Resolve(&sc, FieldText, lang)),
			Items:    displayItems(items, lang),
		})
	}

	// 3. Spéciaux : tous les plats marqués, toutes sous-catégories confondues
	var specials []models.MenuItem
	for _, it := range b.Items {
		if it.IsSpecial {
			specials = append(specials, it)
		}
	}
	sortByOrder(specials)
	if len(specials) > 0 {
		sections = append(sections, Section{
			Title:     specialsLabel,
			IsSpecial: true,
			Items:     displayItems(specials, lang),
		})
	}

	// 4. Suppléments, toujours en dernière section
	if len(b.Addons) > 0 {
		addons := make([]models.Addon, len(b.Addons))
		copy(addons, b.Addons)
		sort.SliceStable(addons, func(i, j int) bool { return addons[i].Order < addons[j].Order })

		items := make([]DisplayItem, 0, len(addons))
		for i := range addons {
			a := addons[i]
			items = append(items, DisplayItem{
				ID:         a.ID,
				Title:      Resolve(&a, FieldTitle, lang),
				Subtitle:   Resolve(&a, FieldDescription, lang),
				PriceLabel: FormatPrice(a.Price),
				// jamais de 3D sur un supplément
			})
		}
		sections = append(sections, Section{
			Title: supplementsLabel,
			Items: items,
		})
	}

	return sections
}

// findGeneral renvoie la première sous-catégorie générale du bundle, dans
// l'ordre de chargement.
func findGeneral(subcategories []models.Subcategory) (models.Subcategory, bool) {
	for _, sc := range subcategories {
		if IsGeneralSubcategory(sc) {
			return sc, true
		}
	}
	return models.Subcategory{}, false
}

func displayItems(items []models.MenuItem, lang Language) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for i := range items {
		it := items[i]

		// sous-titre : champ text, repli sur description
		subtitle := Resolve(&it, FieldText, lang)
		if subtitle == "" {
			subtitle = Resolve(&it, FieldDescription, lang)
		}

		out = append(out, DisplayItem{
			ID:           it.ID,
			Image:        it.ImagePath,
			Title:        Resolve(&it, FieldTitle, lang),
			Subtitle:     subtitle,
			PriceLabel:   FormatPrice(it.Price),
			Has3D:        it.Model3DURL != "" || it.Redirect3DURL != "",
			Model3DURL:   it.Model3DURL,
			Model3DARURL: it.Redirect3DURL,
		})
	}
	return out
}

func sortByOrder(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
