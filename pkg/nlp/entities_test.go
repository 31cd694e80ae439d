package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/nlp"
)

func TestExtractEntities(t *testing.T) {
	normalized := nlp.Normalize("Sou eletricista em Luanda, contato 923456789")
	entities := nlp.ExtractEntities(normalized)

	assert.Equal(t, "luanda", entities.First(nlp.EntityLocalizacao))
	assert.Equal(t, "923456789", entities.First(nlp.EntityTelefone))
	assert.False(t, entities.Has(nlp.EntityPreco))
	assert.False(t, entities.Has(nlp.EntityIdade))
}

func TestExtractEntitiesPreco(t *testing.T) {
	tests := []struct {
		message string
		parsed  float64
	}{
		{"vendo por 150.000kz", 150000},
		{"custa 5000 kz", 5000},
		{"preço de 1.500.000 kwanza", 1500000},
		{"por 300 usd", 300},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			entities := nlp.ExtractEntities(nlp.Normalize(tt.message))
			require.True(t, entities.Has(nlp.EntityPreco), "esperava preço em %q", tt.message)
			assert.Equal(t, tt.parsed, nlp.ParsePrice(entities.First(nlp.EntityPreco)))
		})
	}
}

func TestExtractEntitiesIdade(t *testing.T) {
	entities := nlp.ExtractEntities(nlp.Normalize("tenho 25 anos e moro em Viana"))
	assert.Equal(t, "25", entities.First(nlp.EntityIdade))
	assert.Equal(t, "viana", entities.First(nlp.EntityLocalizacao))
}

func TestExtractEntitiesSemDuplicatas(t *testing.T) {
	entities := nlp.ExtractEntities("em luanda trabalho em luanda")
	assert.Equal(t, []string{"luanda"}, entities[nlp.EntityLocalizacao])
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
	}{
		{"150.000kz", 150000},
		{"150 000", 150000},
		{"5.000,50", 5000.50},
		{"2500,75", 2500.75},
		{"1000", 1000},
		{"12.50", 12.50},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, nlp.ParsePrice(tt.raw))
		})
	}
}

func TestFindLocation(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"entidade com preposicao", "perdi a carteira em Talatona ontem", "Talatona"},
		{"lexico sem preposicao", "Maianga, Luanda", "Luanda"},
		{"resposta so com o lugar", "kilamba", "Kilamba"},
		{"preposicao na", "encontrei na Marginal", "Marginal"},
		{"sem localizacao", "quero vender um iphone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := nlp.Normalize(tt.message)
			entities := nlp.ExtractEntities(normalized)
			assert.Equal(t, tt.expected, nlp.FindLocation(normalized, entities))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Cuando Cubango", nlp.Title("cuando cubango"))
	assert.Equal(t, "Luanda", nlp.Title("luanda"))
	assert.Equal(t, "", nlp.Title(""))
}
