package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/assistant"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/oracle"
	"github.com/soliciteia/assistente/pkg/session"
)

type fakeHandler struct {
	intents []nlp.Intent
	schemas []*session.Schema
	process func(ctx context.Context, turn *assistant.Turn) (*assistant.Outcome, error)
}

func (h *fakeHandler) Intents() []nlp.Intent      { return h.intents }
func (h *fakeHandler) Schemas() []*session.Schema { return h.schemas }
func (h *fakeHandler) Process(ctx context.Context, turn *assistant.Turn) (*assistant.Outcome, error) {
	return h.process(ctx, turn)
}

type fakeSemantic struct {
	judgment *oracle.Judgment
	err      error
	calls    int
}

func (s *fakeSemantic) Resolve(context.Context, string, nlp.Entities) (*oracle.Judgment, error) {
	s.calls++
	return s.judgment, s.err
}

func (s *fakeSemantic) Answer(context.Context, string) (string, error) {
	return "", errors.New("não implementado")
}

type fakeTelemetry struct {
	entries []*assistant.TelemetryEntry
}

func (t *fakeTelemetry) Record(_ context.Context, entry *assistant.TelemetryEntry) error {
	t.entries = append(t.entries, entry)
	return nil
}

// lostFoundSchema reproduz um fluxo de coleta de dois campos obrigatórios
func lostFoundSchema() *session.Schema {
	return &session.Schema{
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
	}
}

type testEnv struct {
	engine     *assistant.Engine
	telemetry  *fakeTelemetry
	committed  []map[string]string
	rejectNext bool
}

func newTestEnv(t *testing.T, semantic assistant.SemanticOracle) *testEnv {
	t.Helper()

	log := logger.NewLogger()
	env := &testEnv{telemetry: &fakeTelemetry{}}

	registry := session.Registry{}
	router := assistant.NewRouter(registry, log)

	lostFound := &fakeHandler{
		intents: []nlp.Intent{nlp.IntentAchadoPerdido},
		schemas: []*session.Schema{lostFoundSchema()},
		process: func(_ context.Context, turn *assistant.Turn) (*assistant.Outcome, error) {
			if env.rejectNext {
				env.rejectNext = false
				return &assistant.Outcome{
					RejectedField:  "local",
					RejectedPrompt: "Não reconheci esse local. Em que zona foi?",
				}, nil
			}
			env.committed = append(env.committed, turn.Record)
			return &assistant.Outcome{Success: true, Text: "Relato registado ✅"}, nil
		},
	}

	search := &fakeHandler{
		intents: []nlp.Intent{nlp.IntentBuscaPrestador},
		process: func(_ context.Context, turn *assistant.Turn) (*assistant.Outcome, error) {
			return &assistant.Outcome{Success: true, Text: "Encontrei 2 prestadores"}, nil
		},
	}

	require.NoError(t, router.Register(lostFound))
	require.NoError(t, router.Register(search))
	require.NoError(t, router.Validate())

	sessions := session.NewManager(session.NewMemoryStore(0), registry, log)
	env.engine = assistant.NewEngine(router, sessions, semantic, nil, env.telemetry, log)
	return env
}

func TestHandleCortesia(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := env.engine.Handle(context.Background(), "244900000001", "Olá!", "")
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Contains(t, out.Text, "Sou o assistente")
	assert.Len(t, out.Buttons, 3)
	require.Len(t, env.telemetry.entries, 1)
	assert.Equal(t, nlp.IntentSaudacao, env.telemetry.entries[0].Intent)
}

func TestHandleDominioVenceCortesia(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := env.engine.Handle(context.Background(), "244900000002", "Olá, preciso de um eletricista", "")
	require.NoError(t, err)

	assert.Equal(t, "Encontrei 2 prestadores", out.Text)
}

func TestHandleEsclarecimento(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := env.engine.Handle(context.Background(), "244900000003", "xyzzy frobnica", "")
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Contains(t, out.Text, "Não tenho a certeza")
	assert.NotEmpty(t, out.Buttons)
}

func TestHandleOraculoArbitra(t *testing.T) {
	semantic := &fakeSemantic{judgment: &oracle.Judgment{
		Intent:     nlp.IntentBuscaPrestador,
		Category:   "prestador",
		Confidence: 0.9,
	}}
	env := newTestEnv(t, semantic)

	out, err := env.engine.Handle(context.Background(), "244900000004", "alguém que arranje geleiras?", "")
	require.NoError(t, err)

	assert.Equal(t, 1, semantic.calls)
	assert.Equal(t, "Encontrei 2 prestadores", out.Text)
	require.Len(t, env.telemetry.entries, 1)
	assert.Equal(t, nlp.IntentBuscaPrestador, env.telemetry.entries[0].Intent)
	assert.Equal(t, 0.9, env.telemetry.entries[0].Confidence)
}

func TestHandleOraculoIndisponivelMantemPadroes(t *testing.T) {
	semantic := &fakeSemantic{err: oracle.ErrOracleIndisponivel}
	env := newTestEnv(t, semantic)

	out, err := env.engine.Handle(context.Background(), "244900000005", "alguém que arranje geleiras?", "")
	require.NoError(t, err)

	assert.Equal(t, 1, semantic.calls)
	assert.False(t, out.Success)
	assert.Contains(t, out.Text, "Não tenho a certeza")
}

func TestHandleFluxoDeColeta(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	out, err := env.engine.Handle(ctx, "244900000006", "Perdi a minha carteira", "")
	require.NoError(t, err)
	assert.Equal(t, "Em que local?", out.Text)

	// "na Marginal" sozinho não classifica, mas continua a sessão aberta
	out, err = env.engine.Handle(ctx, "244900000006", "na Marginal", "")
	require.NoError(t, err)
	assert.Equal(t, "Relato registado ✅", out.Text)

	require.Len(t, env.committed, 1)
	assert.Equal(t, "carteira", env.committed[0]["objeto"])
	assert.Equal(t, "Marginal", env.committed[0]["local"])

	// A sessão foi concluída; a mesma resposta curta agora é esclarecimento
	out, err = env.engine.Handle(ctx, "244900000006", "na Marginal", "")
	require.NoError(t, err)
	assert.False(t, out.Success)
}

func TestHandleCampoRejeitadoReabreColeta(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.rejectNext = true

	out, err := env.engine.Handle(ctx, "244900000007", "Perdi a minha carteira na Marginal", "")
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Não reconheci esse local. Em que zona foi?", out.Text)
	assert.Empty(t, env.committed)

	// A resposta seguinte preenche o campo reaberto e conclui o registro
	out, err = env.engine.Handle(ctx, "244900000007", "em viana", "")
	require.NoError(t, err)
	assert.Equal(t, "Relato registado ✅", out.Text)

	require.Len(t, env.committed, 1)
	assert.Equal(t, "carteira", env.committed[0]["objeto"])
	assert.Equal(t, "Viana", env.committed[0]["local"])
}

func TestHandleIntencaoConfianteAbandonaSessao(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.engine.Handle(ctx, "244900000008", "Perdi a minha carteira", "")
	require.NoError(t, err)

	// busca_prestador não tem coleta; a sessão aberta é abandonada e o
	// handler responde direto
	out, err := env.engine.Handle(ctx, "244900000008", "Preciso de um canalizador", "")
	require.NoError(t, err)
	assert.Equal(t, "Encontrei 2 prestadores", out.Text)
	assert.Empty(t, env.committed)
}

func TestHandleCortesiaDoOraculoPreservaSessao(t *testing.T) {
	semantic := &fakeSemantic{judgment: &oracle.Judgment{
		Intent:     nlp.IntentAgradecimento,
		Confidence: 0.9,
	}}
	env := newTestEnv(t, semantic)
	ctx := context.Background()

	out, err := env.engine.Handle(ctx, "244900000010", "Perdi a minha carteira", "")
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Em que local?")

	// Um agradecimento arbitrado pelo oráculo no meio da coleta recebe
	// resposta de cortesia e a sessão fica intacta
	out, err = env.engine.Handle(ctx, "244900000010", "Fico mesmo grato", "")
	require.NoError(t, err)
	assert.Equal(t, 1, semantic.calls)
	assert.Contains(t, out.Text, "De nada")
	assert.Empty(t, env.committed)

	semantic.judgment = &oracle.Judgment{Intent: nlp.IntentUnknown, Confidence: 0.2}
	_, err = env.engine.Handle(ctx, "244900000010", "Na Marginal", "")
	require.NoError(t, err)
	require.Len(t, env.committed, 1)
	assert.Equal(t, "carteira", env.committed[0]["objeto"])
	assert.Equal(t, "Marginal", env.committed[0]["local"])
}

func TestHandleCortesiaRegistraIntencaoCorreta(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.engine.Handle(ctx, "244900000011", "Obrigado!", "")
	require.NoError(t, err)
	_, err = env.engine.Handle(ctx, "244900000011", "Tchau", "")
	require.NoError(t, err)

	require.Len(t, env.telemetry.entries, 2)
	assert.Equal(t, nlp.IntentAgradecimento, env.telemetry.entries[0].Intent)
	assert.Equal(t, nlp.IntentDespedida, env.telemetry.entries[1].Intent)
}

func TestHandleButton(t *testing.T) {
	env := newTestEnv(t, nil)

	out, err := env.engine.HandleButton(context.Background(), "244900000009", "ajuda")
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.NotEmpty(t, out.Text)
	require.Len(t, env.telemetry.entries, 1)
	assert.Equal(t, "botao:ajuda", env.telemetry.entries[0].Message)
}
