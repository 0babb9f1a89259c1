package publicmenu

import "carte-backend/internal/assembly"

// Libellés des sections construites par le moteur, par langue d'affichage.
var specialsLabels = map[assembly.Language]string{
	assembly.LangFR: "Spéciaux",
	assembly.LangEN: "Specials",
	assembly.LangIT: "Speciali",
	assembly.LangES: "Especiales",
}

var supplementsLabels = map[assembly.Language]string{
	assembly.LangFR: "Suppléments",
	assembly.LangEN: "Supplements",
	assembly.LangIT: "Supplementi",
	assembly.LangES: "Suplementos",
}

func SpecialsLabel(lang assembly.Language) string {
	if s, ok := specialsLabels[lang]; ok {
		return s
	}
	return specialsLabels[assembly.LangFR]
}

func SupplementsLabel(lang assembly.Language) string {
	if s, ok := supplementsLabels[lang]; ok {
		return s
	}
	return supplementsLabels[assembly.LangFR]
}
