package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
)

const defaultVisionModel = "gpt-4o-mini"

// Vision é o cliente do oráculo de visão, que classifica imagens recebidas
// em produto, pessoa, documento ou desconhecido
type Vision struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
	logger   logger.Logger
}

// NewVision cria um cliente do oráculo de visão a partir do ambiente
func NewVision(log logger.Logger) (*Vision, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := os.Getenv("OPENAI_BASE_URL")
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}

	model := os.Getenv("VISION_MODEL")
	if model == "" {
		model = defaultVisionModel
	}

	return &Vision{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   log,
	}, nil
}

type visionContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type visionMessage struct {
	Role    string              `json:"role"`
	Content []visionContentPart `json:"content"`
}

type visionRequest struct {
	Model     string          `json:"model"`
	Messages  []visionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

const visionPrompt = `Classifique a imagem em uma das categorias: product, person, document, unknown.
Responda APENAS em JSON válido: {"type": "categoria", "confidence": 0.0}`

// ClassifyImage classifica a imagem apontada pela URL. Qualquer falha
// resulta em um sinal "unknown" junto com o erro; o ajustador de intenção
// simplesmente ignora sinais desconhecidos.
func (v *Vision) ClassifyImage(ctx context.Context, imageURL string) (*nlp.ImageSignal, error) {
	unknown := &nlp.ImageSignal{Type: nlp.ImageUnknown, Confidence: 0.0}

	imagePart := visionContentPart{Type: "image_url"}
	imagePart.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: imageURL}

	reqBody := visionRequest{
		Model: v.model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionContentPart{
					{Type: "text", Text: visionPrompt},
					imagePart,
				},
			},
		},
		MaxTokens: 100,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return unknown, fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		return unknown, fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("Erro na chamada do oráculo de visão", "error", err)
		return unknown, fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return unknown, fmt.Errorf("%w: %v", ErrOracleIndisponivel, err)
	}

	if resp.StatusCode != http.StatusOK {
		v.logger.Error("Oráculo de visão retornou erro", "status", resp.Status)
		return unknown, fmt.Errorf("%w: status %d", ErrOracleIndisponivel, resp.StatusCode)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return unknown, fmt.Errorf("%w: %v", ErrRespostaInvalida, err)
	}

	if len(apiResp.Choices) == 0 {
		return unknown, fmt.Errorf("%w: resposta sem escolhas", ErrRespostaInvalida)
	}

	var signal nlp.ImageSignal
	if err := json.Unmarshal([]byte(apiResp.Choices[0].Message.Content), &signal); err != nil {
		return unknown, fmt.Errorf("%w: %v", ErrRespostaInvalida, err)
	}

	switch signal.Type {
	case nlp.ImageProduct, nlp.ImagePerson, nlp.ImageDocument:
		return &signal, nil
	default:
		return unknown, nil
	}
}
