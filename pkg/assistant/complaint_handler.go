package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/soliciteia/assistente/internal/domain/complaint"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var knownCompanies = []string{
	"unitel", "movicel", "africell",
	"bai", "bic", "bfa", "atlantico",
	"ende", "epal",
	"tcul", "macon",
	"kero", "shoprite", "candando",
	"taag",
}

var companyCategoryTable = []categoryEntry{
	{"telecomunicacoes", []string{"unitel", "movicel", "africell", "operadora", "internet"}},
	{"banco", []string{"bai", "bic", "bfa", "atlantico", "banco", "cartao", "conta"}},
	{"energia", []string{"ende", "energia", "eletricidade", "luz", "corrente"}},
	{"agua", []string{"epal", "agua", "saneamento"}},
	{"transporte", []string{"tcul", "macon", "taag", "transporte", "taxi", "autocarro"}},
	{"saude", []string{"hospital", "clinica", "medico"}},
	{"comercio", []string{"kero", "shoprite", "candando", "loja", "supermercado"}},
	{"governo", []string{"governo", "ministerio", "municipal"}},
}

var complaintTypeTable = []categoryEntry{
	{"atendimento", []string{"atendimento", "grosseria", "descortesia"}},
	{"produto", []string{"defeito", "qualidade", "mercadoria"}},
	{"cobranca", []string{"cobranca", "fatura", "cobraram"}},
	{"entrega", []string{"entrega", "atraso", "prazo", "demora"}},
	{"fraude", []string{"fraude", "golpe", "enganacao", "burla"}},
}

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:reclamar|reclamacao|queixa)\s+(?:d[aeo]|contra)\s+([a-z0-9]+)`),
	regexp.MustCompile(`\bcontra\s+(?:a\s+|o\s+)?([a-z0-9]+)`),
	regexp.MustCompile(`\bempresa\s+([a-z0-9]+)`),
}

// extractCompany localiza a empresa reclamada: primeiro a lista de empresas
// conhecidas, depois os padrões "contra X" e "empresa X"
func extractCompany(normalized string, _ nlp.Entities) string {
	for _, company := range knownCompanies {
		if strings.Contains(" "+normalized+" ", " "+company+" ") {
			return company
		}
	}
	for _, pattern := range companyPatterns {
		if match := pattern.FindStringSubmatch(normalized); match != nil && len(match[1]) > 2 {
			return match[1]
		}
	}
	return ""
}

func extractCompanyCategory(empresa, normalized string) string {
	texto := empresa + " " + normalized
	for _, entry := range companyCategoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(texto, keyword) {
				return entry.nome
			}
		}
	}
	return "servicos"
}

func extractComplaintType(normalized string) string {
	for _, entry := range complaintTypeTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}
	return "servico"
}

// ComplaintHandler atende o registro de reclamações contra empresas
type ComplaintHandler struct {
	logger      logger.Logger
	reclamacoes complaint.Repository
}

// NewComplaintHandler cria o handler de reclamações
func NewComplaintHandler(log logger.Logger, reclamacoes complaint.Repository) *ComplaintHandler {
	return &ComplaintHandler{logger: log, reclamacoes: reclamacoes}
}

func (h *ComplaintHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentReclamacao}
}

func (h *ComplaintHandler) Schemas() []*session.Schema {
	return []*session.Schema{
		{
			Intent: nlp.IntentReclamacao,
			Fields: []session.FieldSpec{
				{
					Name:     "empresa",
					Required: true,
					Extract:  extractCompany,
					Prompt: "Contra que empresa ou serviço é a reclamação?\n\n" +
						"Exemplo: Unitel, ENDE, EPAL, um banco, uma loja",
				},
				{
					Name:     "motivo",
					Required: true,
					FreeText: true,
					Prompt: "Qual é o motivo da reclamação?\n\n" +
						"Conte em poucas palavras o que aconteceu.",
				},
				{
					Name:     "detalhes",
					Required: true,
					FreeText: true,
					Prompt: "Pode dar mais detalhes?\n\n" +
						"Datas, valores, nomes de atendentes e locais ajudam no encaminhamento.",
				},
			},
		},
	}
}

func (h *ComplaintHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	empresa := turn.Record["empresa"]

	r, err := complaint.NewReclamacao(turn.Sender, empresa, turn.Record["motivo"])
	if err != nil {
		return nil, fmt.Errorf("erro ao montar reclamação: %w", err)
	}
	r.Detalhes = turn.Record["detalhes"]
	r.Categoria = extractCompanyCategory(empresa, turn.Normalized)
	r.Tipo = extractComplaintType(turn.Record["motivo"] + " " + turn.Record["detalhes"])

	if err := h.reclamacoes.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("erro ao registrar reclamação: %w", err)
	}

	total, err := h.reclamacoes.CountByEmpresa(ctx, empresa)
	if err != nil {
		h.logger.Error("Erro ao contar reclamações da empresa", "error", err, "empresa", empresa)
		total = 0
	}

	h.logger.Info("Reclamação registrada", "id", r.ID, "empresa", r.Empresa, "tipo", r.Tipo)

	var b strings.Builder
	fmt.Fprintf(&b, "📢 Reclamação registrada!\n\n"+
		"🏢 Empresa: *%s*\n"+
		"🏷️ Tipo: %s\n"+
		"🔖 Protocolo: %s\n\n", nlp.Title(r.Empresa), r.Tipo, r.ID[:8])

	if total > 1 {
		fmt.Fprintf(&b, "⚠️ Já existem %d reclamações contra esta empresa.\n\n", total)
	}
	b.WriteString("Vou acompanhar e aviso quando houver novidades.")

	return &Outcome{
		Success:         true,
		Text:            b.String(),
		CompletedEntity: r.ID,
	}, nil
}
