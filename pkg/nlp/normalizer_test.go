package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soliciteia/assistente/pkg/nlp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "minusculas e acentos",
			input:    "Preciso de um ELETRICISTA até amanhã",
			expected: "preciso de um eletricista ate amanha",
		},
		{
			name:     "pontuacao vira espaco",
			input:    "Olá! Tudo bem?",
			expected: "ola tudo bem",
		},
		{
			name:     "espacos colapsados",
			input:    "  vender    iphone  ",
			expected: "vender iphone",
		},
		{
			name:     "cedilha",
			input:    "serviço de reparação",
			expected: "servico de reparacao",
		},
		{
			name:     "entrada vazia",
			input:    "",
			expected: "",
		},
		{
			name:     "emoji removido",
			input:    "obrigado 🙏",
			expected: "obrigado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nlp.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotente(t *testing.T) {
	inputs := []string{
		"Sou eletricista em Luanda",
		"Perdi a minha carteira na Marginal!",
		"Quero vender um iPhone por 150.000Kz",
	}

	for _, input := range inputs {
		once := nlp.Normalize(input)
		assert.Equal(t, once, nlp.Normalize(once), "normalização deve ser idempotente para %q", input)
	}
}
