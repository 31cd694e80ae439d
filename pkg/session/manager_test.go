package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

func testRegistry() session.Registry {
	registry := session.Registry{}
	registry.Register(&session.Schema{
		Intent: nlp.IntentAchadoPerdido,
		Fields: []session.FieldSpec{
			{
				Name:     "objeto",
				Required: true,
				Extract: func(normalized string, _ nlp.Entities) string {
					if strings.Contains(normalized, "carteira") {
						return "carteira"
					}
					return ""
				},
				Prompt: "O que foi perdido ou encontrado?",
			},
			{
				Name:     "local",
				Required: true,
				Entity:   nlp.EntityLocalizacao,
				Extract:  nlp.FindLocation,
				Prompt:   "Em que local?",
			},
		},
	})
	registry.Register(&session.Schema{
		Intent: nlp.IntentConexaoPessoal,
		Fields: []session.FieldSpec{
			{
				Name:     "genero",
				Required: true,
				FreeText: true,
				Prompt:   "Procura homem ou mulher?",
			},
		},
	})
	return registry
}

func newTestManager(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(0)
	return session.NewManager(store, testRegistry(), logger.NewLogger()), store
}

func result(intent nlp.Intent, confidence float64) *nlp.IntentResult {
	return &nlp.IntentResult{Intent: intent, Confidence: confidence}
}

func TestAdvanceColetaEmDoisTurnos(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	normalized := nlp.Normalize("Perdi a minha carteira")
	out, err := manager.Advance(ctx, "244900000001", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	assert.Equal(t, session.StateCollecting, out.Session.State)
	assert.Equal(t, "carteira", out.Session.Get("objeto"))
	assert.Equal(t, "local", out.Session.Step)
	assert.Equal(t, "Em que local?", out.Prompt)

	// A resposta "na Marginal" sozinha não classifica, mas continua o fluxo
	normalized = nlp.Normalize("na Marginal")
	out, err = manager.Advance(ctx, "244900000001", nlp.Unknown(), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	assert.Equal(t, session.StateReady, out.Session.State)
	assert.Equal(t, nlp.IntentAchadoPerdido, out.Session.Intent)
	assert.Equal(t, "Marginal", out.Session.Get("local"))
	assert.Empty(t, out.Prompt)
}

func TestAdvanceCamposVoluntarios(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	// Objeto e local no mesmo turno preenchem os dois campos de uma vez
	normalized := nlp.Normalize("Perdi a minha carteira") + " em talatona"
	out, err := manager.Advance(ctx, "244900000002", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	assert.Equal(t, "Talatona", out.Session.Get("local"))
}

func TestAdvanceSupersessao(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	normalized := nlp.Normalize("Perdi a minha carteira")
	_, err := manager.Advance(ctx, "244900000003", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	// Nova intenção confiante abandona a sessão aberta
	out, err := manager.Advance(ctx, "244900000003", result(nlp.IntentConexaoPessoal, 0.8), nlp.Entities{}, "quero conhecer pessoas")
	require.NoError(t, err)

	assert.True(t, out.Superseded)
	assert.Equal(t, nlp.IntentConexaoPessoal, out.Session.Intent)
	assert.Empty(t, out.Session.Get("objeto"))
}

func TestAdvanceBaixaConfiancaNaoSupersede(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	normalized := nlp.Normalize("Perdi a minha carteira")
	_, err := manager.Advance(ctx, "244900000004", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	out, err := manager.Advance(ctx, "244900000004", result(nlp.IntentConexaoPessoal, 0.4), nlp.Entities{}, "mulher")
	require.NoError(t, err)

	assert.False(t, out.Superseded)
	assert.Equal(t, nlp.IntentAchadoPerdido, out.Session.Intent)
}

func TestFreeTextSoNoPassoAtual(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	out, err := manager.Advance(ctx, "244900000005", result(nlp.IntentConexaoPessoal, 0.8), nlp.Entities{}, "procuro relacionamento serio")
	require.NoError(t, err)

	// No primeiro turno o passo ainda não era "genero", então o texto
	// livre não é capturado como resposta
	assert.Equal(t, session.StateCollecting, out.Session.State)
	assert.Empty(t, out.Session.Get("genero"))

	out, err = manager.Advance(ctx, "244900000005", nlp.Unknown(), nlp.Entities{}, "mulher")
	require.NoError(t, err)

	assert.Equal(t, session.StateReady, out.Session.State)
	assert.Equal(t, "mulher", out.Session.Get("genero"))
}

func vendaRegistry() session.Registry {
	registry := session.Registry{}
	registry.Register(&session.Schema{
		Intent: nlp.IntentVendaProduto,
		Fields: []session.FieldSpec{
			{
				Name:     "produto",
				Required: true,
				Extract: func(normalized string, _ nlp.Entities) string {
					if strings.Contains(normalized, "geleira") {
						return "geleira"
					}
					return ""
				},
				Prompt: "O que está a vender?",
			},
			{
				Name:     "descricao",
				FreeText: true,
				Prompt:   "Quer acrescentar uma descrição?",
			},
		},
	})
	return registry
}

func TestAdvanceCampoOpcionalPedidoUmaVez(t *testing.T) {
	ctx := context.Background()
	manager := session.NewManager(session.NewMemoryStore(0), vendaRegistry(), logger.NewLogger())

	normalized := nlp.Normalize("Vendo uma geleira")
	out, err := manager.Advance(ctx, "244900000009", result(nlp.IntentVendaProduto, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	// Com os obrigatórios completos, o opcional com prompt é pedido
	assert.Equal(t, session.StateCollecting, out.Session.State)
	assert.Equal(t, "descricao", out.Session.Step)
	assert.Equal(t, "Quer acrescentar uma descrição?", out.Prompt)

	normalized = nlp.Normalize("Pouco uso, ainda na garantia")
	out, err = manager.Advance(ctx, "244900000009", nlp.Unknown(), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	assert.Equal(t, session.StateReady, out.Session.State)
	assert.Equal(t, "pouco uso ainda na garantia", out.Session.Get("descricao"))
}

func TestAdvanceCampoOpcionalDispensadoComPular(t *testing.T) {
	ctx := context.Background()
	manager := session.NewManager(session.NewMemoryStore(0), vendaRegistry(), logger.NewLogger())

	normalized := nlp.Normalize("Vendo uma geleira")
	out, err := manager.Advance(ctx, "244900000010", result(nlp.IntentVendaProduto, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)
	require.Equal(t, "descricao", out.Session.Step)

	// "pular" dispensa o opcional e a sessão completa sem ele
	out, err = manager.Advance(ctx, "244900000010", nlp.Unknown(), nlp.Entities{}, "pular")
	require.NoError(t, err)

	assert.Equal(t, session.StateReady, out.Session.State)
	assert.Empty(t, out.Session.Get("descricao"))
	assert.Empty(t, out.Prompt)
}

func TestCommitLimpaSessao(t *testing.T) {
	ctx := context.Background()
	manager, store := newTestManager(t)

	normalized := nlp.Normalize("Perdi a minha carteira") + " em viana"
	_, err := manager.Advance(ctx, "244900000006", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	require.NoError(t, manager.Commit(ctx, "244900000006"))

	sess, err := store.Load(ctx, "244900000006")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestReopenPreservaOutrosCampos(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestManager(t)

	normalized := nlp.Normalize("Perdi a minha carteira") + " em viana"
	_, err := manager.Advance(ctx, "244900000007", result(nlp.IntentAchadoPerdido, 0.8), nlp.ExtractEntities(normalized), normalized)
	require.NoError(t, err)

	out, err := manager.Reopen(ctx, "244900000007", "local")
	require.NoError(t, err)

	assert.Equal(t, "Em que local?", out.Prompt)
	assert.Equal(t, "local", out.Session.Step)
	assert.Empty(t, out.Session.Get("local"))
	assert.Equal(t, "carteira", out.Session.Get("objeto"))
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(10 * time.Millisecond)

	sess := session.NewSession("244900000008", nlp.IntentAchadoPerdido)
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, "244900000008")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	time.Sleep(20 * time.Millisecond)

	loaded, err = store.Load(ctx, "244900000008")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
