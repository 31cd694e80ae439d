package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/soliciteia/assistente/pkg/logger"
)

var (
	ErrMissingToken   = errors.New("WHATSAPP_ACCESS_TOKEN não definido")
	ErrMissingPhoneID = errors.New("WHATSAPP_PHONE_NUMBER_ID não definido")
	ErrEnvioFalhou    = errors.New("falha ao enviar mensagem ao WhatsApp")
)

// Limites da Cloud API para mensagens interativas
const (
	MaxButtons            = 3
	MaxButtonTitleLen     = 20
	MaxListRows           = 10
	MaxListTitleLen       = 24
	MaxListDescriptionLen = 72
)

// Client envia mensagens pela WhatsApp Cloud API
type Client struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
	logger        logger.Logger
}

// NewClient cria o cliente a partir das variáveis de ambiente
func NewClient(log logger.Logger) (*Client, error) {
	token := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	if token == "" {
		return nil, ErrMissingToken
	}
	phoneID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	if phoneID == "" {
		return nil, ErrMissingPhoneID
	}

	baseURL := os.Getenv("WHATSAPP_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v18.0"
	}

	return &Client{
		baseURL:       baseURL,
		accessToken:   token,
		phoneNumberID: phoneID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        log,
	}, nil
}

// Button é um botão de resposta rápida
type Button struct {
	ID    string
	Title string
}

// ListRow é uma linha de lista interativa
type ListRow struct {
	ID          string
	Title       string
	Description string
}

// SendText envia uma mensagem de texto simples
func (c *Client) SendText(ctx context.Context, to, text string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	}
	return c.post(ctx, payload)
}

// SendButtons envia texto com até três botões de resposta rápida. Botões
// excedentes são descartados e títulos longos truncados, cumprindo os
// limites da API.
func (c *Client) SendButtons(ctx context.Context, to, text string, buttons []Button) error {
	if len(buttons) == 0 {
		return c.SendText(ctx, to, text)
	}
	if len(buttons) > MaxButtons {
		buttons = buttons[:MaxButtons]
	}

	actionButtons := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		actionButtons = append(actionButtons, map[string]any{
			"type": "reply",
			"reply": map[string]any{
				"id":    b.ID,
				"title": truncate(b.Title, MaxButtonTitleLen),
			},
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": text},
			"action": map[string]any{"buttons": actionButtons},
		},
	}
	return c.post(ctx, payload)
}

// SendList envia texto com uma lista interativa de até dez linhas
func (c *Client) SendList(ctx context.Context, to, text, buttonLabel string, rows []ListRow) error {
	if len(rows) == 0 {
		return c.SendText(ctx, to, text)
	}
	if len(rows) > MaxListRows {
		rows = rows[:MaxListRows]
	}
	if buttonLabel == "" {
		buttonLabel = "Ver opções"
	}

	listRows := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		listRows = append(listRows, map[string]any{
			"id":          r.ID,
			"title":       truncate(r.Title, MaxListTitleLen),
			"description": truncate(r.Description, MaxListDescriptionLen),
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "list",
			"body": map[string]any{"text": text},
			"action": map[string]any{
				"button": truncate(buttonLabel, MaxButtonTitleLen),
				"sections": []map[string]any{
					{"title": "Resultados", "rows": listRows},
				},
			},
		},
	}
	return c.post(ctx, payload)
}

// SendImage envia uma imagem por URL, com legenda opcional
func (c *Client) SendImage(ctx context.Context, to, imageURL, caption string) error {
	image := map[string]any{"link": imageURL}
	if caption != "" {
		image["caption"] = caption
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "image",
		"image":             image,
	}
	return c.post(ctx, payload)
}

// MarkAsRead marca uma mensagem recebida como lida
func (c *Client) MarkAsRead(ctx context.Context, messageID string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}
	return c.post(ctx, payload)
}

// MediaURL resolve a URL de download de uma mídia recebida
func (c *Client) MediaURL(ctx context.Context, mediaID string) (string, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, mediaID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar mídia: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrEnvioFalhou, resp.StatusCode, string(body))
	}

	var media struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta de mídia: %w", err)
	}
	return media.URL, nil
}

func (c *Client) post(ctx context.Context, payload map[string]any) error {
	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro na chamada à Cloud API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Cloud API recusou a mensagem", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("%w: status %d", ErrEnvioFalhou, resp.StatusCode)
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
