package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/soliciteia/assistente/internal/domain/lostfound"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var lostIndicators = []string{"perdi", "perdeu", "perdido", "sumiu", "desapareceu", "nao encontro"}
var foundIndicators = []string{"encontrei", "encontrado", "achei", "achado", "encontrou"}

var itemCategoryTable = []categoryEntry{
	{"documento", []string{"carteira", "bi", "passaporte", "carta de conducao", "identidade", "documento"}},
	{"animal", []string{"cao", "cachorro", "gato", "passaro", "animal"}},
	{"objeto_pessoal", []string{"chave", "bolsa", "mala", "mochila", "oculos", "relogio"}},
	{"eletronico", []string{"telefone", "celular", "smartphone", "tablet", "laptop", "computador", "camera"}},
	{"veiculo", []string{"carro", "moto", "bicicleta", "automovel"}},
	{"joia", []string{"anel", "colar", "pulseira", "brinco", "joia", "ouro", "prata"}},
	{"roupa", []string{"camisa", "calca", "vestido", "sapato", "casaco"}},
}

var lostObjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bperd(?:i|eu)\s+(?:o\s+|a\s+|um\s+|uma\s+)?(.+?)(?:\s+na\b|\s+no\b|\s+em\b|$)`),
	regexp.MustCompile(`\bperdido\s+(.+?)(?:\s+na\b|\s+no\b|\s+em\b|$)`),
}

var foundObjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:encontrei|achei)\s+(?:o\s+|a\s+|um\s+|uma\s+)?(.+?)(?:\s+na\b|\s+no\b|\s+em\b|$)`),
	regexp.MustCompile(`\bencontrado\s+(.+?)(?:\s+na\b|\s+no\b|\s+em\b|$)`),
}

var itemColors = []string{"preto", "branco", "azul", "vermelho", "verde", "amarelo", "rosa", "castanho", "cinza"}
var dateWords = []string{"hoje", "ontem", "anteontem"}

// lostFoundTipo decide se o relato é de perda ou de achado
func lostFoundTipo(normalized string) lostfound.Tipo {
	for _, indicator := range foundIndicators {
		if strings.Contains(normalized, indicator) {
			return lostfound.TipoAchado
		}
	}
	return lostfound.TipoPerdido
}

// extractLostFoundTipo só devolve um tipo quando a mensagem traz um
// indicador explícito; mensagens de continuação ficam sem tipo
func extractLostFoundTipo(normalized string, _ nlp.Entities) string {
	for _, indicator := range foundIndicators {
		if strings.Contains(normalized, indicator) {
			return string(lostfound.TipoAchado)
		}
	}
	for _, indicator := range lostIndicators {
		if strings.Contains(normalized, indicator) {
			return string(lostfound.TipoPerdido)
		}
	}
	return ""
}

// extractLostObject localiza o objeto relatado na mensagem
func extractLostObject(normalized string, _ nlp.Entities) string {
	patterns := lostObjectPatterns
	if lostFoundTipo(normalized) == lostfound.TipoAchado {
		patterns = foundObjectPatterns
	}

	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(normalized); match != nil {
			obj := strings.TrimSpace(fillerWords.ReplaceAllString(match[1], ""))
			obj = strings.Join(strings.Fields(obj), " ")
			if len(obj) > 2 {
				return obj
			}
		}
	}
	return ""
}

func extractItemCategory(normalized string) string {
	for _, entry := range itemCategoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}
	return "outros"
}

// extractCharacteristics junta cor, marca e tamanho num texto curto
func extractCharacteristics(normalized string) string {
	var parts []string
	for _, color := range itemColors {
		if strings.Contains(normalized, color) {
			parts = append(parts, "cor "+color)
			break
		}
	}
	if brand := extractBrand(normalized); brand != "" {
		parts = append(parts, "marca "+brand)
	}
	for _, size := range []string{"pequeno", "medio", "grande"} {
		if strings.Contains(normalized, size) {
			parts = append(parts, "tamanho "+size)
			break
		}
	}
	return strings.Join(parts, ", ")
}

func extractDateWord(normalized string) string {
	for _, word := range dateWords {
		if strings.Contains(normalized, word) {
			return word
		}
	}
	if match := regexp.MustCompile(`\bdia\s+(\d{1,2})`).FindStringSubmatch(normalized); match != nil {
		return "dia " + match[1]
	}
	return "hoje"
}

// LostFoundHandler atende relatos de objetos perdidos e achados
type LostFoundHandler struct {
	logger    logger.Logger
	registros lostfound.Repository
}

// NewLostFoundHandler cria o handler de achados e perdidos
func NewLostFoundHandler(log logger.Logger, registros lostfound.Repository) *LostFoundHandler {
	return &LostFoundHandler{logger: log, registros: registros}
}

func (h *LostFoundHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentAchadoPerdido}
}

func (h *LostFoundHandler) Schemas() []*session.Schema {
	return []*session.Schema{
		{
			Intent: nlp.IntentAchadoPerdido,
			Fields: []session.FieldSpec{
				{
					// Capturado no primeiro turno, quando os indicadores
					// de perda ou achado ainda estão presentes no texto
					Name:    "tipo",
					Extract: extractLostFoundTipo,
				},
				{
					Name:     "objeto",
					Required: true,
					Extract:  extractLostObject,
					Prompt: "O que foi perdido ou achado?\n\n" +
						"Exemplo: carteira, telemóvel, documentos",
				},
				{
					Name:     "local",
					Required: true,
					Entity:   nlp.EntityLocalizacao,
					Extract:  nlp.FindLocation,
					Prompt: "Em que local aconteceu?\n\n" +
						"Exemplo: na Marginal, no Kinaxixi, em Talatona",
				},
			},
		},
	}
}

func (h *LostFoundHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	tipo := lostFoundTipo(turn.Normalized)
	if sessionTipo := turn.Record["tipo"]; sessionTipo != "" {
		tipo = lostfound.Tipo(sessionTipo)
	}

	r, err := lostfound.NewRegistro(turn.Sender, tipo, turn.Record["objeto"], turn.Record["local"])
	if err != nil {
		return nil, fmt.Errorf("erro ao montar relato: %w", err)
	}
	r.Categoria = extractItemCategory(turn.Record["objeto"] + " " + turn.Normalized)
	r.Caracteristicas = extractCharacteristics(turn.Normalized)
	r.DataOcorrencia = extractDateWord(turn.Normalized)

	if err := h.registros.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("erro ao gravar relato: %w", err)
	}

	h.logger.Info("Relato registrado", "id", r.ID, "tipo", r.Tipo, "objeto", r.Objeto, "local", r.Local)

	matches, err := h.registros.FindMatches(ctx, r.Tipo.Oposto(), r.Objeto, r.Local, 5)
	if err != nil {
		h.logger.Error("Erro ao cruzar relatos", "error", err, "id", r.ID)
		matches = nil
	}

	var b strings.Builder
	if r.Tipo == lostfound.TipoPerdido {
		fmt.Fprintf(&b, "📋 Registrei a perda de *%s* em *%s*.\n\n", r.Objeto, nlp.Title(r.Local))
	} else {
		fmt.Fprintf(&b, "📋 Registrei o achado de *%s* em *%s*.\n\n", r.Objeto, nlp.Title(r.Local))
	}

	if len(matches) > 0 {
		fmt.Fprintf(&b, "🔔 Boa notícia! Há %d relato(s) que podem corresponder:\n\n", len(matches))
		for i, m := range matches {
			fmt.Fprintf(&b, "%d. %s em %s (%s)\n", i+1, m.Objeto, nlp.Title(m.Local), m.DataOcorrencia)
		}
		b.WriteString("\nPosso colocar vocês em contato. Quer que eu avance?")
	} else {
		b.WriteString("Vou avisar se aparecer um relato correspondente. 🔔")
	}

	return &Outcome{
		Success:         true,
		Text:            b.String(),
		CompletedEntity: r.ID,
	}, nil
}
