package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var priceCleanPattern = regexp.MustCompile(`[^\d,.]`)

// ParsePrice converte uma string de preço ("150.000kz", "5.000,50") para float64.
// Vírgula sem ponto é separador decimal; com ambos, o ponto é separador de
// milhares e a vírgula é decimal. Qualquer falha de parse resulta em 0.0.
func ParsePrice(raw string) float64 {
	clean := priceCleanPattern.ReplaceAllString(raw, "")

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")

	switch {
	case hasComma && !hasDot:
		clean = strings.ReplaceAll(clean, ",", ".")
	case hasComma && hasDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case hasDot:
		// Em kwanzas o ponto é usado como separador de milhares
		if parts := strings.Split(clean, "."); len(parts[len(parts)-1]) == 3 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0.0
	}

	return value
}
