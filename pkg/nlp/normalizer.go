package nlp

import (
	"regexp"
	"strings"
)

// Tabela fixa de remoção de acentos do português angolano
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i", "î", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "û", "u",
	"ç", "c",
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize prepara o texto para classificação e extração: minúsculas,
// remoção de acentos, caracteres especiais substituídos por espaço e
// espaços colapsados. É idempotente e retorna vazio para entrada vazia.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = accentReplacer.Replace(text)
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
