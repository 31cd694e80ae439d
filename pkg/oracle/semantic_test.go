package oracle_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/oracle"
)

func newSemantic(t *testing.T, baseURL string) *oracle.Semantic {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", baseURL)

	s, err := oracle.NewSemantic(logger.NewLogger())
	require.NoError(t, err)
	return s
}

func completionsResponse(content string) string {
	return `{"choices": [{"message": {"content": ` + content + `}}], "usage": {"prompt_tokens": 10, "completion_tokens": 20}}`
}

func TestNewSemanticSemChave(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := oracle.NewSemantic(logger.NewLogger())
	assert.ErrorIs(t, err, oracle.ErrMissingAPIKey)
}

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionsResponse(`"{\"intent\": \"busca_prestador\", \"category\": \"prestador\", \"confidence\": 0.9, \"requires_clarification\": false, \"context\": {}}"`)))
	}))
	defer server.Close()

	s := newSemantic(t, server.URL)

	judgment, err := s.Resolve(context.Background(), "alguém sabe de eletricista?", nlp.Entities{})
	require.NoError(t, err)

	assert.Equal(t, nlp.IntentBuscaPrestador, judgment.Intent)
	assert.Equal(t, "prestador", judgment.Category)
	assert.Equal(t, 0.9, judgment.Confidence)
	assert.False(t, judgment.RequiresClarification)
}

func TestResolveRespostaInvalida(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionsResponse(`"não sei responder isso"`)))
	}))
	defer server.Close()

	s := newSemantic(t, server.URL)

	_, err := s.Resolve(context.Background(), "mensagem qualquer", nlp.Entities{})
	assert.ErrorIs(t, err, oracle.ErrRespostaInvalida)
}

func TestResolveIntentAusente(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionsResponse(`"{\"confidence\": 0.5}"`)))
	}))
	defer server.Close()

	s := newSemantic(t, server.URL)

	_, err := s.Resolve(context.Background(), "mensagem qualquer", nlp.Entities{})
	assert.ErrorIs(t, err, oracle.ErrRespostaInvalida)
}

func TestResolveServicoIndisponivel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := newSemantic(t, server.URL)

	_, err := s.Resolve(context.Background(), "mensagem qualquer", nlp.Entities{})
	assert.ErrorIs(t, err, oracle.ErrOracleIndisponivel)
}

func TestAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(completionsResponse(`"A capital de Angola é Luanda."`)))
	}))
	defer server.Close()

	s := newSemantic(t, server.URL)

	answer, err := s.Answer(context.Background(), "qual a capital de angola")
	require.NoError(t, err)
	assert.Equal(t, "A capital de Angola é Luanda.", answer)
}
