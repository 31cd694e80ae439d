package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var currencyTable = []categoryEntry{
	{"usd", []string{"dolar", "dollar", "usd"}},
	{"eur", []string{"euro", "eur"}},
	{"gbp", []string{"libra", "gbp"}},
	{"brl", []string{"real brasileiro", "brl", "reais"}},
	{"zar", []string{"rand", "zar"}},
}

var cryptoTable = []categoryEntry{
	{"bitcoin", []string{"bitcoin", "btc"}},
	{"ethereum", []string{"ethereum", "eth"}},
	{"cardano", []string{"cardano", "ada"}},
	{"solana", []string{"solana", "sol"}},
}

// cotacao é uma taxa de referência do catálogo estático, em kwanzas
type cotacao struct {
	nome     string
	codigo   string
	taxa     float64
	variacao float64
}

// Taxas de referência; uma integração com a API do BNA pode substituí-las
var currencyRates = map[string]cotacao{
	"usd": {"Dólar Americano", "USD", 830.00, 0.15},
	"eur": {"Euro", "EUR", 905.50, -0.10},
	"gbp": {"Libra Esterlina", "GBP", 1052.30, 0.08},
	"brl": {"Real Brasileiro", "BRL", 152.40, 0.22},
	"zar": {"Rand Sul-Africano", "ZAR", 45.80, -0.05},
}

var cryptoRates = map[string]cotacao{
	"bitcoin":  {"Bitcoin", "BTC", 58000000, 1.4},
	"ethereum": {"Ethereum", "ETH", 2900000, 0.9},
	"cardano":  {"Cardano", "ADA", 380, -0.6},
	"solana":   {"Solana", "SOL", 120000, 2.1},
}

// FinancialHandler responde consultas de câmbio e criptomoedas
type FinancialHandler struct {
	logger logger.Logger
}

// NewFinancialHandler cria o handler do mercado financeiro
func NewFinancialHandler(log logger.Logger) *FinancialHandler {
	return &FinancialHandler{logger: log}
}

func (h *FinancialHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentMercadoFinanceiro}
}

func (h *FinancialHandler) Schemas() []*session.Schema {
	return nil
}

func (h *FinancialHandler) Process(_ context.Context, turn *Turn) (*Outcome, error) {
	if crypto := matchTable(turn.Normalized, cryptoTable); crypto != "" {
		return h.cryptoQuote(crypto), nil
	}
	if currency := matchTable(turn.Normalized, currencyTable); currency != "" {
		return h.currencyQuote(currency), nil
	}
	return h.overview(), nil
}

func (h *FinancialHandler) currencyQuote(code string) *Outcome {
	c := currencyRates[code]

	text := fmt.Sprintf("💱 *%s (AOA/%s)*\n\n"+
		"💰 *Taxa de referência:* %.2f AOA\n"+
		"📈 *Variação:* %+.2f%%\n\n"+
		"🕐 Atualizado: %s\n\n"+
		"💡 *Fonte:* taxas de referência; confirme no seu banco antes de negociar.",
		c.nome, c.codigo, c.taxa, c.variacao, time.Now().Format("02/01 15:04"))

	return &Outcome{
		Success: true,
		Text:    text,
		Buttons: []Button{
			{ID: "other_currency", Title: "💱 Outra Moeda"},
			{ID: "market_overview", Title: "📊 Visão Geral"},
		},
	}
}

func (h *FinancialHandler) cryptoQuote(name string) *Outcome {
	c := cryptoRates[name]

	text := fmt.Sprintf("₿ *%s (%s)*\n\n"+
		"💰 *Preço de referência:* %.0f AOA\n"+
		"📈 *24h:* %+.2f%%\n\n"+
		"🕐 Atualizado: %s\n\n"+
		"💡 *Lembre-se:* criptomoedas são investimentos de alto risco!",
		c.nome, c.codigo, c.taxa, c.variacao, time.Now().Format("02/01 15:04"))

	return &Outcome{
		Success: true,
		Text:    text,
		Buttons: []Button{
			{ID: "other_crypto", Title: "₿ Outra Crypto"},
			{ID: "market_overview", Title: "📊 Visão Geral"},
		},
	}
}

func (h *FinancialHandler) overview() *Outcome {
	var b strings.Builder
	b.WriteString("📊 *Mercado Financeiro*\n\n💱 *Câmbio (AOA):*\n")
	for _, code := range []string{"usd", "eur", "gbp"} {
		c := currencyRates[code]
		fmt.Fprintf(&b, "• %s: %.2f (%+.2f%%)\n", c.codigo, c.taxa, c.variacao)
	}
	b.WriteString("\n₿ *Criptomoedas (AOA):*\n")
	for _, name := range []string{"bitcoin", "ethereum"} {
		c := cryptoRates[name]
		fmt.Fprintf(&b, "• %s: %.0f (%+.2f%%)\n", c.codigo, c.taxa, c.variacao)
	}
	fmt.Fprintf(&b, "\n🕐 Atualizado: %s\n\nPergunte por uma moeda específica para detalhes.",
		time.Now().Format("02/01 15:04"))

	return &Outcome{Success: true, Text: b.String()}
}
