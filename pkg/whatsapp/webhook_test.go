package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliciteia/assistente/pkg/logger"
)

const webhookJSON = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "102290129340398",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"metadata": {
					"display_phone_number": "244900000000",
					"phone_number_id": "106540352242922"
				},
				"contacts": [{
					"wa_id": "244923456789",
					"profile": {"name": "João Manuel"}
				}],
				"messages": [{
					"id": "wamid.HBgLMjQ0OTIzNDU2Nzg5",
					"from": "244923456789",
					"timestamp": "1724832000",
					"type": "text",
					"text": {"body": "Perdi a minha carteira"}
				}]
			}
		}]
	}]
}`

func TestWebhookPayloadUnmarshal(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(webhookJSON), &payload))

	assert.Equal(t, "whatsapp_business_account", payload.Object)
	require.Len(t, payload.Entry, 1)
	require.Len(t, payload.Entry[0].Changes, 1)

	change := payload.Entry[0].Changes[0]
	assert.Equal(t, "messages", change.Field)
	assert.Equal(t, "106540352242922", change.Value.Metadata.PhoneNumberID)

	require.Len(t, change.Value.Messages, 1)
	msg := change.Value.Messages[0]
	assert.Equal(t, "244923456789", msg.From)
	assert.Equal(t, "text", msg.Type)
	require.NotNil(t, msg.Text)
	assert.Equal(t, "Perdi a minha carteira", msg.Text.Body)
	assert.Nil(t, msg.Image)
	assert.Nil(t, msg.Interactive)
}

func TestWebhookPayloadInteractiveUnmarshal(t *testing.T) {
	raw := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"field": "messages",
				"value": {
					"messages": [{
						"from": "244923456789",
						"type": "interactive",
						"interactive": {
							"type": "button_reply",
							"button_reply": {"id": "botao:ajuda", "title": "Ajuda"}
						}
					}]
				}
			}]
		}]
	}`

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	msg := payload.Entry[0].Changes[0].Value.Messages[0]
	require.NotNil(t, msg.Interactive)
	require.NotNil(t, msg.Interactive.ButtonReply)
	assert.Equal(t, "botao:ajuda", msg.Interactive.ButtonReply.ID)
	assert.Nil(t, msg.Interactive.ListReply)
}

func TestEachMessage(t *testing.T) {
	payload := WebhookPayload{
		Entry: []Entry{{
			Changes: []Change{
				{
					Field: "statuses",
					Value: Value{Messages: []Message{{ID: "ignorada"}}},
				},
				{
					Field: "messages",
					Value: Value{Messages: []Message{{ID: "m1"}, {ID: "m2"}}},
				},
			},
		}},
	}

	var ids []string
	payload.EachMessage(func(msg Message) {
		ids = append(ids, msg.ID)
	})

	assert.Equal(t, []string{"m1", "m2"}, ids)
}

func TestSenderName(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(webhookJSON), &payload))

	assert.Equal(t, "João Manuel", payload.SenderName("244923456789"))
	assert.Equal(t, "", payload.SenderName("244999999999"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 20))
	assert.Equal(t, "ab", truncate("abcd", 2))

	// O corte é por runas; acentos não são partidos ao meio
	assert.Equal(t, "até", truncate("até", 3))
	assert.Equal(t, "aç", truncate("açaí", 2))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("WHATSAPP_ACCESS_TOKEN", "token-teste")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "106540352242922")
	t.Setenv("WHATSAPP_API_BASE_URL", server.URL)

	client, err := NewClient(logger.NewLogger())
	require.NoError(t, err)
	return client
}

func TestSendText(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/106540352242922/messages", r.URL.Path)
		assert.Equal(t, "Bearer token-teste", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.SendText(context.Background(), "244923456789", "Olá 👋"))
	assert.Equal(t, "text", body["type"])
	assert.Equal(t, "244923456789", body["to"])
}

func TestSendButtonsRespeitaLimites(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusOK)
	})

	buttons := []Button{
		{ID: "b1", Title: strings.Repeat("x", 30)},
		{ID: "b2", Title: "Dois"},
		{ID: "b3", Title: "Três"},
		{ID: "b4", Title: "Excedente"},
	}
	require.NoError(t, client.SendButtons(context.Background(), "244923456789", "Escolha", buttons))

	interactive := body["interactive"].(map[string]any)
	action := interactive["action"].(map[string]any)
	sent := action["buttons"].([]any)
	require.Len(t, sent, MaxButtons)

	first := sent[0].(map[string]any)["reply"].(map[string]any)
	assert.Len(t, first["title"].(string), MaxButtonTitleLen)
}

func TestSendListSemLinhasViraTexto(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.SendList(context.Background(), "244923456789", "Sem resultados", "", nil))
	assert.Equal(t, "text", body["type"])
}

func TestSendTextErroDaAPI(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.SendText(context.Background(), "244923456789", "Olá")
	assert.ErrorIs(t, err, ErrEnvioFalhou)
}

func TestMediaURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url": "https://lookaside.fbsbx.com/whatsapp_business/attachments/media-123"}`))
	})

	url, err := client.MediaURL(context.Background(), "media-123")
	require.NoError(t, err)
	assert.Equal(t, "https://lookaside.fbsbx.com/whatsapp_business/attachments/media-123", url)
}
