package assistant

import (
	"fmt"
	"strings"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

// Router mantém o registro de handlers de domínio e resolve as respostas
// de cortesia e de esclarecimento que não pertencem a nenhum domínio
type Router struct {
	handlers map[nlp.Intent]Handler
	registry session.Registry
	logger   logger.Logger
}

// NewRouter cria um roteador vazio sobre o registro de schemas dado
func NewRouter(registry session.Registry, log logger.Logger) *Router {
	return &Router{
		handlers: make(map[nlp.Intent]Handler),
		registry: registry,
		logger:   log,
	}
}

// Register registra um handler para todas as suas intenções e seus schemas
// de coleta. Conflito de intenção é erro de configuração.
func (r *Router) Register(h Handler) error {
	for _, intent := range h.Intents() {
		if existing, ok := r.handlers[intent]; ok {
			return fmt.Errorf("intenção %q já registrada por %T", intent, existing)
		}
		r.handlers[intent] = h
	}
	for _, schema := range h.Schemas() {
		r.registry.Register(schema)
	}
	r.logger.Info("Handler de domínio registrado", "handler", fmt.Sprintf("%T", h), "intencoes", len(h.Intents()))
	return nil
}

// Validate verifica a configuração na inicialização: todo schema precisa
// de um handler para a sua intenção e de prompts nos campos obrigatórios
func (r *Router) Validate() error {
	intents := make([]nlp.Intent, 0, len(r.registry))
	for intent := range r.registry {
		if _, ok := r.handlers[intent]; !ok {
			return fmt.Errorf("schema %q registrado sem handler correspondente", intent)
		}
		intents = append(intents, intent)
	}
	return r.registry.Validate(intents)
}

// HandlerFor retorna o handler da intenção, se houver
func (r *Router) HandlerFor(intent nlp.Intent) (Handler, bool) {
	h, ok := r.handlers[intent]
	return h, ok
}

var (
	saudacoes      = []string{"ola", "oi", "bom dia", "boa tarde", "boa noite", "hello", "hey", "eai", "e ai", "tudo bem"}
	agradecimentos = []string{"obrigado", "obrigada", "valeu", "agradecido", "agradecida", "muito obrigado", "thanks"}
	despedidas     = []string{"tchau", "adeus", "ate logo", "ate mais", "xau", "bye", "falou"}
	pedidosAjuda   = []string{"ajuda", "help", "como funciona", "o que voce faz", "menu", "opcoes", "comandos"}
)

// Triage resolve saudações, agradecimentos, despedidas e pedidos de ajuda
// antes de qualquer classificação de domínio. Retorna nil e intenção vazia
// quando a mensagem não é cortesia.
func (r *Router) Triage(normalized string) (*Outcome, nlp.Intent) {
	switch {
	case matchesAny(normalized, saudacoes):
		return r.Courtesy(nlp.IntentSaudacao), nlp.IntentSaudacao
	case matchesAny(normalized, agradecimentos):
		return r.Courtesy(nlp.IntentAgradecimento), nlp.IntentAgradecimento
	case matchesAny(normalized, despedidas):
		return r.Courtesy(nlp.IntentDespedida), nlp.IntentDespedida
	case matchesAny(normalized, pedidosAjuda):
		return r.Courtesy(nlp.IntentAjuda), nlp.IntentAjuda
	}
	return nil, ""
}

// Courtesy devolve a resposta pronta de uma intenção de cortesia. Cortesia
// nunca mexe em sessões de coleta abertas: um "obrigado" no meio de um
// fluxo recebe resposta e o fluxo continua de onde estava. Retorna nil
// para intenções de domínio.
func (r *Router) Courtesy(intent nlp.Intent) *Outcome {
	switch intent {
	case nlp.IntentSaudacao:
		return &Outcome{
			Success: true,
			Text: "Olá! 👋 Sou o assistente da Solicite IA.\n\n" +
				"Posso ajudar a encontrar prestadores de serviços, comprar e vender " +
				"produtos, registar achados e perdidos, reclamações e muito mais.\n\n" +
				"Escreva o que precisa ou toque num botão abaixo.",
			Buttons: defaultButtons(),
		}
	case nlp.IntentAgradecimento:
		return &Outcome{
			Success: true,
			Text:    "De nada! 😊 Estou aqui sempre que precisar.",
		}
	case nlp.IntentDespedida:
		return &Outcome{
			Success: true,
			Text:    "Até logo! 👋 Volte quando precisar de alguma coisa.",
		}
	case nlp.IntentAjuda:
		return &Outcome{
			Success: true,
			Text:    helpText(),
			Buttons: defaultButtons(),
		}
	}
	return nil
}

// Unhandled monta a resposta de esclarecimento quando nenhuma intenção foi
// resolvida com confiança suficiente
func (r *Router) Unhandled(result *nlp.IntentResult, entities nlp.Entities) *Outcome {
	var b strings.Builder
	b.WriteString("Não tenho a certeza do que precisa. 🤔\n\n")

	if suggestions := nlp.SuggestedActions(result, entities); len(suggestions) > 0 {
		b.WriteString("Talvez queira:\n")
		for _, s := range suggestions {
			b.WriteString("• " + s + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Exemplos do que pode escrever:\n")
	b.WriteString("• \"Sou eletricista em Luanda\"\n")
	b.WriteString("• \"Procuro canalizador na Maianga\"\n")
	b.WriteString("• \"Vendo iphone 12 por 150.000kz\"\n")
	b.WriteString("• \"Perdi a minha carteira na Marginal\"\n")

	return &Outcome{
		Success: false,
		Text:    b.String(),
		Buttons: defaultButtons(),
	}
}

// HandleButton resolve os toques nos botões de resposta rápida
func (r *Router) HandleButton(buttonID string) *Outcome {
	switch buttonID {
	case "ajuda":
		return &Outcome{Success: true, Text: helpText(), Buttons: defaultButtons()}
	case "servicos":
		return &Outcome{
			Success: true,
			Text: "🔧 *Serviços*\n\n" +
				"Para encontrar um prestador, diga o que procura e onde. " +
				"Exemplo: \"Procuro eletricista em Viana\".\n\n" +
				"Para se cadastrar como prestador, diga a sua especialidade e zona. " +
				"Exemplo: \"Sou canalizador no Cazenga\".",
		}
	case "marketplace":
		return &Outcome{
			Success: true,
			Text: "🛒 *Marketplace*\n\n" +
				"Para vender, descreva o produto, o preço e a zona. " +
				"Exemplo: \"Vendo iphone 12 por 150.000kz em Talatona\".\n\n" +
				"Para comprar, diga o que procura. Exemplo: \"Procuro geleira usada\".",
		}
	default:
		return &Outcome{
			Success: false,
			Text:    "Opção não reconhecida. Escreva o que precisa ou toque em Ajuda.",
			Buttons: defaultButtons(),
		}
	}
}

func defaultButtons() []Button {
	return []Button{
		{ID: "ajuda", Title: "❓ Ajuda"},
		{ID: "servicos", Title: "🔧 Serviços"},
		{ID: "marketplace", Title: "🛒 Marketplace"},
	}
}

func helpText() string {
	return "ℹ️ *Como posso ajudar*\n\n" +
		"🔧 Encontrar ou cadastrar prestadores de serviços\n" +
		"🛒 Comprar e vender produtos\n" +
		"📱 Achados e perdidos\n" +
		"📢 Registar reclamações de empresas\n" +
		"💞 Conexões pessoais\n" +
		"🎓 Bolsas de estudo\n" +
		"💱 Câmbio e mercado financeiro\n" +
		"🔎 Pesquisas gerais\n\n" +
		"Escreva em linguagem natural, como falaria com uma pessoa."
}

// matchesAny verifica se o texto normalizado é ou começa por uma das frases
func matchesAny(normalized string, phrases []string) bool {
	for _, phrase := range phrases {
		if normalized == phrase || strings.HasPrefix(normalized, phrase+" ") {
			return true
		}
	}
	return false
}
