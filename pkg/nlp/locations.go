package nlp

import (
	"regexp"
	"strings"
)

// Localidades angolanas conhecidas: províncias, municípios de Luanda e
// zonas da capital. Usadas como léxico de apoio quando o usuário responde
// só com o nome do lugar, sem preposição.
var knownLocations = []string{
	"luanda", "benguela", "huambo", "lobito", "cabinda", "namibe", "malanje",
	"uige", "zaire", "cuando cubango", "cunene", "huila", "lunda norte",
	"lunda sul", "moxico", "bengo", "bie",
	"cacuaco", "viana", "cazenga", "sambizanga", "maianga", "ingombota",
	"rangel", "kilamba", "talatona", "zango",
	"marginal", "baixa", "cidade alta", "miramar", "alvalade", "kinaxixi",
}

var locationFallbackPattern = regexp.MustCompile(`\b(?:em|na|no)\s+([a-z]{3,})`)

// FindLocation localiza uma referência de lugar no texto normalizado.
// Tenta primeiro as entidades extraídas, depois o léxico de localidades
// conhecidas como palavras soltas e por fim um padrão com preposição.
func FindLocation(normalized string, entities Entities) string {
	if loc := entities.First(EntityLocalizacao); loc != "" {
		return Title(loc)
	}

	padded := " " + normalized + " "
	for _, loc := range knownLocations {
		if strings.Contains(padded, " "+loc+" ") {
			return Title(loc)
		}
	}

	if match := locationFallbackPattern.FindStringSubmatch(normalized); match != nil {
		return Title(match[1])
	}

	return ""
}

// Title capitaliza a primeira letra de cada palavra, para apresentar
// localidades e nomes extraídos do texto normalizado
func Title(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
