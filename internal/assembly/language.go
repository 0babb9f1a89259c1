package assembly

// Language est le code de la langue d'affichage active. Le français est la
// langue canonique : les champs sans suffixe sont toujours en français.
type Language string

const (
	LangFR Language = "fr"
	LangEN Language = "en"
	LangIT Language = "it"
	LangES Language = "es"
)

// ParseLanguage retombe sur le français pour toute valeur hors de
// l'ensemble fermé {fr, en, it, es}.
func ParseLanguage(s string) Language {
	switch Language(s) {
	case LangEN, LangIT, LangES:
		return Language(s)
	default:
		return LangFR
	}
}
