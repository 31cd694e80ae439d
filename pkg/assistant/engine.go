package assistant

import (
	"context"
	"time"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

// limiarOraculo é a confiança mínima abaixo da qual o oráculo semântico
// é consultado para arbitrar a intenção
const limiarOraculo = 0.7

// limiarTriagem é a confiança mínima para despachar diretamente a um
// handler; abaixo dela a resposta é de esclarecimento
const limiarTriagem = 0.5

// TelemetryEntry resume um turno processado, para estatísticas de uso
type TelemetryEntry struct {
	Sender     string
	Message    string
	Intent     nlp.Intent
	Confidence float64
	Response   string
	Success    bool
	HasImage   bool
	DurationMS int64
}

// Telemetry grava o resumo de cada turno. A gravação é melhor esforço e
// nunca bloqueia a resposta ao usuário.
type Telemetry interface {
	Record(ctx context.Context, entry *TelemetryEntry) error
}

// Engine é o pipeline completo de um turno: normalização, classificação,
// extração de entidades, oráculos, sessões de coleta e despacho ao handler
type Engine struct {
	router    *Router
	sessions  *session.Manager
	semantic  SemanticOracle
	vision    VisionOracle
	telemetry Telemetry
	logger    logger.Logger
}

// NewEngine monta o pipeline. Os oráculos e a telemetria são opcionais;
// quando nil a etapa correspondente é simplesmente saltada.
func NewEngine(router *Router, sessions *session.Manager, semantic SemanticOracle, vision VisionOracle, telemetry Telemetry, log logger.Logger) *Engine {
	return &Engine{
		router:    router,
		sessions:  sessions,
		semantic:  semantic,
		vision:    vision,
		telemetry: telemetry,
		logger:    log,
	}
}

// Handle processa uma mensagem de texto, com imagem opcional, e devolve a
// resposta a enviar. Nunca retorna erro por falha de oráculo; apenas erros
// de armazenamento ou de handler sobem ao chamador.
func (e *Engine) Handle(ctx context.Context, sender, text, imageURL string) (*Outcome, error) {
	start := time.Now()

	normalized := nlp.Normalize(text)
	result := nlp.Classify(normalized)
	entities := nlp.ExtractEntities(normalized)

	// Cortesia só quando nenhum padrão de domínio reconheceu a mensagem,
	// para que "ola preciso de eletricista" siga para o domínio
	if result == nil {
		if out, intent := e.router.Triage(normalized); out != nil {
			e.record(ctx, sender, text, intent, 1.0, out, imageURL, start)
			return out, nil
		}
		result = nlp.Unknown()
	}

	result = e.consultOracle(ctx, text, result, entities)

	if imageURL != "" && e.vision != nil {
		signal, err := e.vision.ClassifyImage(ctx, imageURL)
		if err != nil {
			e.logger.Warn("Oráculo de visão indisponível", "error", err)
		} else {
			nlp.AdjustWithImage(result, signal, normalized)
		}
	}

	result.SuggestedActions = nlp.SuggestedActions(result, entities)

	out, err := e.route(ctx, sender, text, normalized, imageURL, result, entities)
	if err != nil {
		return nil, err
	}

	e.record(ctx, sender, text, result.Intent, result.Confidence, out, imageURL, start)
	return out, nil
}

// HandleButton processa o toque num botão de resposta rápida
func (e *Engine) HandleButton(ctx context.Context, sender, buttonID string) (*Outcome, error) {
	out := e.router.HandleButton(buttonID)
	e.record(ctx, sender, "botao:"+buttonID, nlp.IntentAjuda, 1.0, out, "", time.Now())
	return out, nil
}

// consultOracle arbitra intenções de baixa confiança no oráculo semântico.
// O veredito do oráculo substitui o resultado dos padrões por inteiro; em
// caso de falha o resultado dos padrões segue intocado.
func (e *Engine) consultOracle(ctx context.Context, text string, result *nlp.IntentResult, entities nlp.Entities) *nlp.IntentResult {
	if e.semantic == nil || result.Confidence >= limiarOraculo {
		return result
	}

	judgment, err := e.semantic.Resolve(ctx, text, entities)
	if err != nil {
		e.logger.Warn("Oráculo semântico indisponível, mantendo classificação por padrões",
			"error", err, "intent", result.Intent)
		return result
	}

	e.logger.Debug("Intenção arbitrada pelo oráculo",
		"anterior", result.Intent, "nova", judgment.Intent, "confidence", judgment.Confidence)

	return &nlp.IntentResult{
		Intent:                judgment.Intent,
		Category:              judgment.Category,
		Confidence:            judgment.Confidence,
		RequiresClarification: judgment.RequiresClarification,
		Context:               judgment.Context,
	}
}

// route decide o destino do turno: continuação de sessão aberta, início de
// coleta, despacho direto ou pedido de esclarecimento
func (e *Engine) route(ctx context.Context, sender, text, normalized, imageURL string, result *nlp.IntentResult, entities nlp.Entities) (*Outcome, error) {
	// O oráculo pode classificar o turno como cortesia; a resposta sai
	// pronta e a sessão aberta, se houver, fica intacta
	if out := e.router.Courtesy(result.Intent); out != nil {
		return out, nil
	}

	active, err := e.sessions.Active(ctx, sender)
	if err != nil {
		return nil, err
	}

	// Uma intenção confiante sem coleta de dados abandona a sessão aberta
	// e segue direto para o handler
	if active != nil && active.Intent != result.Intent &&
		result.Confidence >= session.LimiarSupersessao && !e.sessions.HasSchema(result.Intent) {
		if err := e.sessions.Abandon(ctx, sender); err != nil {
			return nil, err
		}
		active = nil
	}

	if active != nil || (e.sessions.HasSchema(result.Intent) && result.Confidence >= limiarTriagem) {
		return e.advanceSession(ctx, sender, text, normalized, imageURL, result, entities)
	}

	if result.Intent == nlp.IntentUnknown || result.RequiresClarification || result.Confidence < limiarTriagem {
		return e.router.Unhandled(result, entities), nil
	}

	handler, ok := e.router.HandlerFor(result.Intent)
	if !ok {
		e.logger.Warn("Intenção sem handler registrado", "intent", result.Intent)
		return e.router.Unhandled(result, entities), nil
	}

	turn := &Turn{
		Sender:     sender,
		Text:       text,
		Normalized: normalized,
		ImageURL:   imageURL,
		Result:     result,
		Entities:   entities,
	}
	return handler.Process(ctx, turn)
}

// advanceSession empurra o turno pela máquina de coleta e, quando o
// registro fica completo, entrega ao handler do domínio
func (e *Engine) advanceSession(ctx context.Context, sender, text, normalized, imageURL string, result *nlp.IntentResult, entities nlp.Entities) (*Outcome, error) {
	out, err := e.sessions.Advance(ctx, sender, result, entities, normalized)
	if err != nil {
		return nil, err
	}

	if out.Session.State == session.StateCollecting {
		reply := out.Prompt
		if out.Superseded {
			reply = "Certo, mudamos de assunto. 👍\n\n" + reply
		}
		return &Outcome{Success: true, Text: reply}, nil
	}

	handler, ok := e.router.HandlerFor(out.Session.Intent)
	if !ok {
		return nil, errNoHandler(out.Session.Intent)
	}

	turn := &Turn{
		Sender:     sender,
		Text:       text,
		Normalized: normalized,
		ImageURL:   imageURL,
		Result:     result,
		Entities:   entities,
		Session:    out.Session,
		Record:     out.Session.Record,
	}

	outcome, err := handler.Process(ctx, turn)
	if err != nil {
		return nil, err
	}

	// Validação do domínio rejeitou um campo: reabre a coleta nesse campo
	// preservando o restante do registro
	if outcome.RejectedField != "" {
		reopened, err := e.sessions.Reopen(ctx, sender, outcome.RejectedField)
		if err != nil {
			return nil, err
		}
		reply := outcome.RejectedPrompt
		if reply == "" {
			reply = reopened.Prompt
		}
		return &Outcome{Success: false, Text: reply}, nil
	}

	if err := e.sessions.Commit(ctx, sender); err != nil {
		return nil, err
	}
	return outcome, nil
}

// record grava a telemetria do turno sem bloquear a resposta
func (e *Engine) record(ctx context.Context, sender, message string, intent nlp.Intent, confidence float64, out *Outcome, imageURL string, start time.Time) {
	if e.telemetry == nil {
		return
	}

	entry := &TelemetryEntry{
		Sender:     sender,
		Message:    message,
		Intent:     intent,
		Confidence: confidence,
		Response:   out.Text,
		Success:    out.Success,
		HasImage:   imageURL != "",
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := e.telemetry.Record(ctx, entry); err != nil {
		e.logger.Error("Erro ao gravar telemetria da conversa", "error", err, "sender", sender)
	}
}

type errNoHandler nlp.Intent

func (e errNoHandler) Error() string {
	return "intenção sem handler registrado: " + string(e)
}
