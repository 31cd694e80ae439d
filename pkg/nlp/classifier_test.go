package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/nlp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected nlp.Intent
	}{
		{"cadastro de prestador", "Sou eletricista em Luanda", nlp.IntentCadastroPrestador},
		{"trabalho como", "Trabalho como canalizador", nlp.IntentCadastroPrestador},
		{"busca de prestador", "Preciso de um eletricista", nlp.IntentBuscaPrestador},
		{"procuro em", "Procuro cabeleireira em Viana", nlp.IntentBuscaPrestador},
		{"venda de produto", "Quero vender um iPhone", nlp.IntentVendaProduto},
		{"compra de produto", "Comprar geladeira usada", nlp.IntentBuscaProduto},
		{"conexao pessoal", "Procuro mulher para relacionamento", nlp.IntentConexaoPessoal},
		{"achado perdido", "Perdi a minha carteira", nlp.IntentAchadoPerdido},
		{"objeto encontrado", "Encontrei um telemóvel na Baixa", nlp.IntentAchadoPerdido},
		{"reclamacao", "Quero reclamar da Unitel", nlp.IntentReclamacao},
		{"bolsa de estudo", "Como consigo bolsa de estudo?", nlp.IntentBolsaEstudo},
		{"mercado financeiro", "Qual a cotação do dolar?", nlp.IntentMercadoFinanceiro},
		{"pesquisa geral", "Onde fica o aeroporto?", nlp.IntentPesquisaGeral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := nlp.Classify(nlp.Normalize(tt.message))
			require.NotNil(t, result, "esperava classificação para %q", tt.message)
			assert.Equal(t, tt.expected, result.Intent)
			assert.Equal(t, 0.8, result.Confidence)
			assert.False(t, result.RequiresClarification)
		})
	}
}

func TestClassifySemPadrao(t *testing.T) {
	assert.Nil(t, nlp.Classify(nlp.Normalize("ola bom dia")))
	assert.Nil(t, nlp.Classify(nlp.Normalize("na marginal")))
	assert.Nil(t, nlp.Classify(""))
}

// A ordem das famílias de padrões decide empates: "vender" vence "comprar"
// quando os dois casariam, e a classificação é determinística.
func TestClassifyPrioridadeDeterministica(t *testing.T) {
	message := nlp.Normalize("quero vender para comprar outro")

	first := nlp.Classify(message)
	require.NotNil(t, first)
	assert.Equal(t, nlp.IntentVendaProduto, first.Intent)

	for i := 0; i < 10; i++ {
		again := nlp.Classify(message)
		require.NotNil(t, again)
		assert.Equal(t, first.Intent, again.Intent)
		assert.Equal(t, first.MatchedPattern, again.MatchedPattern)
	}
}

func TestClassifyGruposCapturados(t *testing.T) {
	result := nlp.Classify(nlp.Normalize("Sou eletricista em Luanda"))
	require.NotNil(t, result)
	require.Len(t, result.MatchedGroups, 2)
	assert.Equal(t, "eletricista", result.MatchedGroups[0])
	assert.Equal(t, "luanda", result.MatchedGroups[1])
}

func TestSuggestedActions(t *testing.T) {
	result := nlp.Classify(nlp.Normalize("Sou eletricista"))
	require.NotNil(t, result)

	actions := nlp.SuggestedActions(result, nlp.Entities{})
	assert.Contains(t, actions, "solicitar_localizacao")
	assert.Contains(t, actions, "solicitar_contato")

	withEntities := nlp.Entities{
		nlp.EntityLocalizacao: {"luanda"},
		nlp.EntityTelefone:    {"923456789"},
	}
	assert.Empty(t, nlp.SuggestedActions(result, withEntities))
}

func TestSuggestedActionsEsclarecimento(t *testing.T) {
	actions := nlp.SuggestedActions(nlp.Unknown(), nlp.Entities{})
	assert.Equal(t, []string{"solicitar_esclarecimento"}, actions)
}
