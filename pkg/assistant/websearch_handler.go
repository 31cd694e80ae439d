package assistant

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var timezoneTable = map[string]string{
	"china":       "Asia/Shanghai",
	"japao":       "Asia/Tokyo",
	"brasil":      "America/Sao_Paulo",
	"portugal":    "Europe/Lisbon",
	"eua":         "America/New_York",
	"reino unido": "Europe/London",
	"franca":      "Europe/Paris",
	"alemanha":    "Europe/Berlin",
}

// Expressões no texto ORIGINAL; a normalização remove os operadores
var mathExprPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([+\-*/x])\s*(\d+(?:[.,]\d+)?)`)
var percentPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%\s*de\s*(\d+(?:[.,]\d+)?)`)
var sqrtPattern = regexp.MustCompile(`raiz\s+(?:quadrada\s+)?de\s+(\d+(?:[.,]\d+)?)`)

// WebSearchHandler responde perguntas gerais: horário, tempo, cálculos e,
// para o restante, o oráculo semântico em modo de resposta livre
type WebSearchHandler struct {
	logger logger.Logger
	oracle SemanticOracle
}

// NewWebSearchHandler cria o handler de pesquisa geral. O oráculo é
// opcional; sem ele as perguntas abertas recebem uma resposta de sugestão.
func NewWebSearchHandler(log logger.Logger, oracle SemanticOracle) *WebSearchHandler {
	return &WebSearchHandler{logger: log, oracle: oracle}
}

func (h *WebSearchHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentPesquisaGeral}
}

func (h *WebSearchHandler) Schemas() []*session.Schema {
	return nil
}

func (h *WebSearchHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	normalized := turn.Normalized

	switch {
	case containsAny(normalized, "horas", "horario", "fuso"):
		return h.timeQuery(normalized), nil
	case containsAny(normalized, "tempo em", "clima", "temperatura", "chuva"):
		return h.weatherQuery(normalized, turn.Entities), nil
	case hasMathExpression(turn.Text):
		return h.calculate(turn.Text), nil
	default:
		return h.generalSearch(ctx, turn.Text)
	}
}

func (h *WebSearchHandler) timeQuery(normalized string) *Outcome {
	for pais, tzName := range timezoneTable {
		if !strings.Contains(normalized, pais) {
			continue
		}
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			h.logger.Error("Fuso horário inválido", "error", err, "tz", tzName)
			break
		}
		now := time.Now().In(loc)
		_, offset := now.Zone()
		diff := float64(offset-3600) / 3600 // Angola é UTC+1 o ano inteiro

		text := fmt.Sprintf("🕐 *Horário em %s*\n\n"+
			"⏰ Hora atual: %s\n📅 Data: %s\n🌍 Fuso: %s\n\n",
			strings.ToUpper(pais), now.Format("15:04"), now.Format("02/01/2006"), tzName)
		switch {
		case diff > 0:
			text += fmt.Sprintf("🔄 Diferença: +%.0fh em relação a Angola", diff)
		case diff < 0:
			text += fmt.Sprintf("🔄 Diferença: %.0fh em relação a Angola", diff)
		default:
			text += "🔄 Mesmo fuso horário que Angola"
		}
		return &Outcome{Success: true, Text: text}
	}

	now := time.Now()
	return &Outcome{
		Success: true,
		Text: fmt.Sprintf("🕐 *Horário Atual*\n\n"+
			"⏰ Luanda: %s\n📅 Data: %s\n📍 Fuso: WAT (UTC+1)\n\n"+
			"💡 Para outros países, especifique o local.\n"+
			"Exemplo: \"Que horas são na China?\"",
			now.Format("15:04"), now.Format("02/01/2006")),
	}
}

func (h *WebSearchHandler) weatherQuery(normalized string, entities nlp.Entities) *Outcome {
	local := nlp.FindLocation(normalized, entities)
	if local == "" {
		local = "Luanda"
	}
	return &Outcome{
		Success: true,
		Text: fmt.Sprintf("🌤️ *Tempo em %s*\n\n"+
			"Ainda não tenho acesso a dados meteorológicos em tempo real.\n\n"+
			"💡 Consulte o INAMET (www.inamet.gov.ao) para a previsão oficial.", local),
	}
}

func hasMathExpression(text string) bool {
	lower := strings.ToLower(text)
	return mathExprPattern.MatchString(lower) || percentPattern.MatchString(lower) || sqrtPattern.MatchString(lower)
}

func (h *WebSearchHandler) calculate(text string) *Outcome {
	lower := strings.ToLower(text)

	if match := percentPattern.FindStringSubmatch(lower); match != nil {
		percent := parseNumber(match[1])
		value := parseNumber(match[2])
		return calcResult(fmt.Sprintf("%s%% de %s", match[1], match[2]), percent/100*value)
	}

	if match := sqrtPattern.FindStringSubmatch(lower); match != nil {
		n := parseNumber(match[1])
		return calcResult("raiz de "+match[1], math.Sqrt(n))
	}

	if match := mathExprPattern.FindStringSubmatch(lower); match != nil {
		a := parseNumber(match[1])
		b := parseNumber(match[3])
		var result float64
		switch match[2] {
		case "+":
			result = a + b
		case "-":
			result = a - b
		case "*", "x":
			result = a * b
		case "/":
			if b == 0 {
				return &Outcome{Success: false, Text: "➗ Divisão por zero não é permitida."}
			}
			result = a / b
		}
		return calcResult(fmt.Sprintf("%s %s %s", match[1], match[2], match[3]), result)
	}

	return &Outcome{Success: false, Text: "Não consegui interpretar o cálculo. Exemplo: \"quanto é 15% de 200000\""}
}

func calcResult(expr string, result float64) *Outcome {
	return &Outcome{
		Success: true,
		Text:    fmt.Sprintf("🧮 *Cálculo*\n\n%s = *%s*", expr, strconv.FormatFloat(result, 'f', -1, 64)),
	}
}

func parseNumber(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return n
}

func (h *WebSearchHandler) generalSearch(ctx context.Context, question string) (*Outcome, error) {
	if h.oracle != nil {
		answer, err := h.oracle.Answer(ctx, question)
		if err == nil && answer != "" {
			return &Outcome{Success: true, Text: answer}, nil
		}
		if err != nil {
			h.logger.Warn("Oráculo indisponível para pesquisa geral", "error", err)
		}
	}

	return &Outcome{
		Success: true,
		Text: "🔎 Não consegui pesquisar isso agora.\n\n" +
			"Posso ajudar com serviços, compras e vendas, achados e perdidos, " +
			"reclamações, bolsas de estudo e câmbio. Toque em Ajuda para ver exemplos.",
		Buttons: defaultButtons(),
	}, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
