package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
)

const (
	defaultAPIEndpoint = "https://api.openai.com/v1"
	defaultModel       = "gpt-3.5-turbo"
	defaultTimeout     = 10 * time.Second
)

// Erros do oráculo semântico. O classificador nunca propaga falhas do
// oráculo ao usuário: elas disparam o fallback documentado.
var (
	ErrOracleIndisponivel = errors.New("oraculo semantico indisponivel")
	ErrRespostaInvalida   = errors.New("resposta do oraculo invalida")
	ErrMissingAPIKey      = errors.New("OPENAI_API_KEY não encontrada nas variáveis de ambiente")
)

// Judgment é o veredito do oráculo semântico sobre uma mensagem
type Judgment struct {
	Intent                nlp.Intent             `json:"intent"`
	Category              string                 `json:"category"`
	Confidence            float64                `json:"confidence"`
	RequiresClarification bool                   `json:"requires_clarification"`
	Context               map[string]interface{} `json:"context"`
}

// Semantic é o cliente HTTP do oráculo semântico (API de chat completions)
type Semantic struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
	logger   logger.Logger
}

// NewSemantic cria um cliente do oráculo semântico a partir do ambiente:
// OPENAI_API_KEY (obrigatória), OPENAI_BASE_URL, OPENAI_MODEL e
// ORACLE_TIMEOUT_SECONDS são opcionais.
func NewSemantic(log logger.Logger) (*Semantic, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := os.Getenv("OPENAI_BASE_URL")
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	timeout := defaultTimeout
	if raw := os.Getenv("ORACLE_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}

	return &Semantic{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

const systemPrompt = "Você é um assistente especializado em análise de intenções para o " +
	"sistema Solicite IA em Angola. Responda sempre em JSON válido."

// Resolve consulta o oráculo semântico com o texto original e as entidades
// já extraídas e retorna o veredito. Falhas de transporte resultam em
// ErrOracleIndisponivel; respostas que não sejam JSON válido resultam em
// ErrRespostaInvalida. Nunca entra em pânico.
func (s *Semantic) Resolve(ctx context.Context, text string, entities nlp.Entities) (*Judgment, error) {
	entidadesJSON, err := json.Marshal(entities)
	if err != nil {
		entidadesJSON = []byte("{}")
	}

	prompt := fmt.Sprintf(`Analise a seguinte mensagem de um usuário do sistema Solicite IA (Angola) e determine:

Mensagem: %q
Entidades detectadas: %s

Determine:
1. Intenção principal (cadastro_prestador, busca_prestador, venda_produto, busca_produto, conexao_pessoal, achado_perdido, reclamacao, bolsa_estudo, mercado_financeiro, pesquisa_geral, saudacao, despedida, agradecimento, unknown)
2. Categoria específica (se aplicável)
3. Confiança (0.0 a 1.0)
4. Se requer esclarecimento
5. Contexto adicional

Responda APENAS em JSON válido:
{
    "intent": "tipo_da_intencao",
    "category": "categoria_especifica",
    "confidence": 0.0,
    "requires_clarification": false,
    "context": {
        "missing_info": [],
        "suggestions": []
    }
}`, text, entidadesJSON)

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.1,
	}

	content, err := s.complete(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(content), &judgment); err != nil {
		s.logger.Error("Resposta do oráculo não é JSON válido", "error", err, "content", content)
		return nil, fmt.Errorf("%w: %v", ErrRespostaInvalida, err)
	}

	if judgment.Intent == "" {
		return nil, fmt.Errorf("%w: intent ausente", ErrRespostaInvalida)
	}

	return &judgment, nil
}

// Answer pede ao oráculo uma resposta livre em texto, usada pela pesquisa
// geral quando nenhum atalho local resolve a pergunta
func (s *Semantic) Answer(ctx context.Context, question string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: "Você é o assistente Solicite IA, respondendo perguntas gerais de usuários em Angola. Responda em português, de forma curta e direta."},
			{Role: "user", Content: question},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	}

	return s.complete(ctx, reqBody)
}

// complete envia uma requisição de chat e devolve o texto da primeira escolha
func (s *Semantic) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Erro na chamada do oráculo semântico", "error", err)
		return "", fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Oráculo semântico retornou erro", "status", resp.Status, "body", string(respBody))
		return "", fmt.Errorf("%w: status %d", ErrOracleIndisponivel, resp.StatusCode)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRespostaInvalida, err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: resposta sem escolhas", ErrRespostaInvalida)
	}

	s.logger.Debug("Resposta do oráculo recebida",
		"prompt_tokens", apiResp.Usage.PromptTokens,
		"completion_tokens", apiResp.Usage.CompletionTokens)

	return apiResp.Choices[0].Message.Content, nil
}
