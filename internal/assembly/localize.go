package assembly

import "carte-backend/internal/models"

// Field est le nom logique d'un champ localisé.
type Field string

const (
	FieldTitle       Field = "title"
	FieldText        Field = "text"
	FieldDescription Field = "description"
)

// variants porte la valeur canonique (français) et ses traductions.
type variants struct {
	base string
	en   string
	it   string
	es   string
}

func (v variants) forLanguage(lang Language) string {
	switch lang {
	case LangEN:
		return v.en
	case LangIT:
		return v.it
	case LangES:
		return v.es
	default:
		return v.base
	}
}

// fieldVariants est la table de correspondance (type, champ) -> variantes,
// sans réflexion. Un champ inconnu pour un type donne des variantes vides.
func fieldVariants(rec any, field Field) variants {
	switch r := rec.(type) {
	case *models.Category:
		switch field {
		case FieldTitle:
			return variants{r.Title, r.TitleEN, r.TitleIT, r.TitleES}
		case FieldText:
			return variants{r.Text, r.TextEN, r.TextIT, r.TextES}
		}
	case *models.Subcategory:
		switch field {
		case FieldTitle:
			return variants{r.Title, r.TitleEN, r.TitleIT, r.TitleES}
		case FieldText:
			return variants{r.Text, r.TextEN, r.TextIT, r.TextES}
		}
	case *models.MenuItem:
		switch field {
		case FieldTitle:
			return variants{r.Title, r.TitleEN, r.TitleIT, r.TitleES}
		case FieldText:
			return variants{r.Text, r.TextEN, r.TextIT, r.TextES}
		case FieldDescription:
			return variants{r.Description, r.DescriptionEN, r.DescriptionIT, r.DescriptionES}
		}
	case *models.Addon:
		switch field {
		case FieldTitle:
			return variants{r.Title, r.TitleEN, r.TitleIT, r.TitleES}
		case FieldDescription:
			return variants{r.Description, r.DescriptionEN, r.DescriptionIT, r.DescriptionES}
		}
	}
	return variants{}
}

// Resolve renvoie la valeur d'un champ dans la langue active. En français la
// valeur canonique est renvoyée telle quelle ; sinon la variante traduite
// quand elle est non vide, avec repli sur la valeur canonique. L'absence de
// champ dégrade en chaîne vide, jamais en erreur.
func Resolve(rec any, field Field, lang Language) string {
	v := fieldVariants(rec, field)
	if lang == LangFR {
		return v.base
	}
	if s := v.forLanguage(lang); s != "" {
		return s
	}
	return v.base
}
