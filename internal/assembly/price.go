package assembly

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// L'affichage des prix reste en format numérique français quelle que soit la
// langue active (virgule décimale, " €" en suffixe).
var frPrinter = message.NewPrinter(language.French)

// FormatPrice rend un prix affichable avec deux décimales. Un prix absent ou
// invalide est ramené à zéro plutôt que de laisser fuir un libellé non
// numérique.
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		price = 0
	}
	return frPrinter.Sprintf("%.2f €", price)
}
