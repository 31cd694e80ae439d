package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var areaTable = []categoryEntry{
	{"engenharia", []string{"engenharia", "engenheiro", "tecnico"}},
	{"medicina", []string{"medicina", "medico", "enfermagem"}},
	{"direito", []string{"direito", "advogado", "juridico"}},
	{"economia", []string{"economia", "economista", "financas"}},
	{"educacao", []string{"pedagogia", "professor"}},
	{"informatica", []string{"informatica", "computacao", "programacao"}},
	{"administracao", []string{"administracao", "gestao", "negocios"}},
}

var levelTable = []categoryEntry{
	{"licenciatura", []string{"graduacao", "licenciatura", "bacharelado"}},
	{"mestrado", []string{"mestrado", "master"}},
	{"doutorado", []string{"doutorado", "phd"}},
}

var countryTable = []categoryEntry{
	{"portugal", []string{"portugal", "lisboa", "porto"}},
	{"brasil", []string{"brasil", "sao paulo"}},
	{"reino unido", []string{"reino unido", "inglaterra", "londres"}},
	{"alemanha", []string{"alemanha", "berlim"}},
	{"china", []string{"china"}},
}

// Bolsa descreve uma oportunidade do catálogo estático
type Bolsa struct {
	Titulo      string
	Instituicao string
	Pais        string
	Nivel       string
	Area        string
	Valor       string
	Prazo       string
	Link        string
}

// Catálogo curado manualmente; uma integração com fontes externas pode
// substituí-lo mantendo o mesmo formato
var bolsaCatalog = []Bolsa{
	{
		Titulo:      "Bolsa de Mestrado em Engenharia",
		Instituicao: "Universidade do Porto",
		Pais:        "portugal",
		Nivel:       "mestrado",
		Area:        "engenharia",
		Valor:       "Propinas + 700€/mês",
		Prazo:       "15 de março",
		Link:        "https://sigarra.up.pt",
	},
	{
		Titulo:      "Programa Chevening",
		Instituicao: "Governo Britânico",
		Pais:        "reino unido",
		Nivel:       "mestrado",
		Area:        "todas",
		Valor:       "Curso completo + subsistência",
		Prazo:       "2 de novembro",
		Link:        "https://www.chevening.org",
	},
	{
		Titulo:      "Bolsa Erasmus+ Angola",
		Instituicao: "União Europeia",
		Pais:        "europa",
		Nivel:       "todas",
		Area:        "todas",
		Valor:       "Variável por país",
		Prazo:       "1 de fevereiro",
		Link:        "https://erasmus-plus.ec.europa.eu",
	},
	{
		Titulo:      "Bolsas INAGBE",
		Instituicao: "Governo de Angola",
		Pais:        "angola",
		Nivel:       "todas",
		Area:        "todas",
		Valor:       "Propinas + subsídio mensal",
		Prazo:       "Consultar edital anual",
		Link:        "https://www.inagbe.gov.ao",
	},
}

// ScholarshipHandler responde consultas sobre bolsas de estudo a partir do
// catálogo estático
type ScholarshipHandler struct {
	logger logger.Logger
}

// NewScholarshipHandler cria o handler de bolsas de estudo
func NewScholarshipHandler(log logger.Logger) *ScholarshipHandler {
	return &ScholarshipHandler{logger: log}
}

func (h *ScholarshipHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentBolsaEstudo}
}

func (h *ScholarshipHandler) Schemas() []*session.Schema {
	return nil
}

func (h *ScholarshipHandler) Process(_ context.Context, turn *Turn) (*Outcome, error) {
	area := matchTable(turn.Normalized, areaTable)
	nivel := matchTable(turn.Normalized, levelTable)
	pais := matchTable(turn.Normalized, countryTable)

	var results []Bolsa
	for _, bolsa := range bolsaCatalog {
		if area != "" && bolsa.Area != area && bolsa.Area != "todas" {
			continue
		}
		if nivel != "" && bolsa.Nivel != nivel && bolsa.Nivel != "todas" {
			continue
		}
		if pais != "" && bolsa.Pais != pais && bolsa.Pais != "europa" {
			continue
		}
		results = append(results, bolsa)
	}

	if len(results) == 0 {
		return &Outcome{
			Success: true,
			Text: "😔 Não encontrei bolsas com esses critérios.\n\n" +
				"Tente uma área ou nível diferente, por exemplo:\n" +
				"• \"Bolsas de mestrado em Portugal\"\n" +
				"• \"Bolsa de engenharia\"",
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎓 Encontrei %d bolsa(s) de estudo:\n\n", len(results))
	for i, bolsa := range results {
		fmt.Fprintf(&b, "%d. *%s*\n🏛️ %s\n💰 %s\n📅 Prazo: %s\n🔗 %s\n\n",
			i+1, bolsa.Titulo, bolsa.Instituicao, bolsa.Valor, bolsa.Prazo, bolsa.Link)
	}
	b.WriteString("💡 *Dica:* Comece a preparar os documentos com antecedência!")

	return &Outcome{
		Success: true,
		Text:    b.String(),
		Buttons: []Button{
			{ID: "other_scholarships", Title: "🎓 Outras Bolsas"},
			{ID: "ajuda", Title: "❓ Ajuda"},
		},
	}, nil
}

// matchTable devolve a primeira categoria cuja palavra aparece no texto
func matchTable(normalized string, table []categoryEntry) string {
	for _, entry := range table {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}
	return ""
}
