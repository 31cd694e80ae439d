package nlp

import "regexp"

// intentPatternSet agrupa os padrões ordenados de uma intenção
type intentPatternSet struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// intentOrder define a ordem de prioridade fixa da classificação por padrões.
// O primeiro padrão que casar em qualquer posição do texto vence, mesmo que
// padrões de intenções posteriores também casassem. Reordenar esta lista
// altera resultados de classificação.
var intentOrder = []intentPatternSet{
	{
		intent: IntentCadastroPrestador,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`cadastrar?\s+servico`),
			regexp.MustCompile(`sou\s+(.*?)\s+em\s+(.*)`),
			regexp.MustCompile(`trabalho\s+como\s+(.*)`),
			regexp.MustCompile(`ofereco\s+servicos?\s+de\s+(.*)`),
			regexp.MustCompile(`prestador\s+de\s+(.*)`),
		},
	},
	{
		intent: IntentBuscaPrestador,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`procur[ao]\s+(.*?)\s+em\s+(.*)`),
			regexp.MustCompile(`preciso\s+de\s+um[a]?\s+(.*)`),
			regexp.MustCompile(`quero\s+contratar\s+(.*)`),
			regexp.MustCompile(`buscar?\s+(.*?)\s+(canalizador|eletricista|pintor|cabeleireira|mecanico)`),
			regexp.MustCompile(`ver\s+(.*?)\s+disponivel`),
		},
	},
	{
		intent: IntentVendaProduto,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`vender?\s+(.*)`),
			regexp.MustCompile(`tenho\s+para\s+venda\s+(.*)`),
			regexp.MustCompile(`estou\s+vendendo\s+(.*)`),
			regexp.MustCompile(`produto\s+para\s+venda`),
			regexp.MustCompile(`anunciar\s+(.*)`),
		},
	},
	{
		intent: IntentBuscaProduto,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`comprar?\s+(.*)`),
			regexp.MustCompile(`procur[ao]\s+para\s+comprar\s+(.*)`),
			regexp.MustCompile(`quero\s+comprar\s+(.*)`),
			regexp.MustCompile(`buscar?\s+produto\s+(.*)`),
			regexp.MustCompile(`tem\s+para\s+venda\s+(.*)`),
		},
	},
	{
		intent: IntentConexaoPessoal,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`relacionamento`),
			regexp.MustCompile(`procur[ao]\s+(homem|mulher|pessoa)`),
			regexp.MustCompile(`namoro`),
			regexp.MustCompile(`amizade`),
			regexp.MustCompile(`conhecer\s+pessoas`),
			regexp.MustCompile(`solteiro[a]?`),
			regexp.MustCompile(`casamento`),
		},
	},
	{
		intent: IntentAchadoPerdido,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`perdi\s+(.*)`),
			regexp.MustCompile(`encontrei\s+(.*)`),
			regexp.MustCompile(`achei\s+(.*)`),
			regexp.MustCompile(`perdido\s+(.*)`),
			regexp.MustCompile(`encontrado\s+(.*)`),
			regexp.MustCompile(`sumiu\s+(.*)`),
		},
	},
	{
		intent: IntentReclamacao,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`reclamar?\s+(.*)`),
			regexp.MustCompile(`denunciar?\s+(.*)`),
			regexp.MustCompile(`problema\s+com\s+(.*)`),
			regexp.MustCompile(`insatisfeito\s+com\s+(.*)`),
			regexp.MustCompile(`empresa\s+(.*)\s+problema`),
		},
	},
	{
		intent: IntentBolsaEstudo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`bolsa\s+de\s+estudo`),
			regexp.MustCompile(`bolsa\s+para\s+(.*)`),
			regexp.MustCompile(`estudar\s+em\s+(.*)`),
			regexp.MustCompile(`curso\s+gratuito`),
			regexp.MustCompile(`faculdade\s+gratuita`),
			regexp.MustCompile(`mestrado\s+em\s+(.*)`),
		},
	},
	{
		intent: IntentMercadoFinanceiro,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`acao\s+(.*)`),
			regexp.MustCompile(`criptomoeda\s+(.*)`),
			regexp.MustCompile(`bitcoin`),
			regexp.MustCompile(`dolar`),
			regexp.MustCompile(`euro`),
			regexp.MustCompile(`cambio`),
			regexp.MustCompile(`bolsa\s+de\s+valores`),
		},
	},
	{
		intent: IntentPesquisaGeral,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`pesquisar?\s+(.*)`),
			regexp.MustCompile(`qual\s+(.*)`),
			regexp.MustCompile(`como\s+(.*)`),
			regexp.MustCompile(`onde\s+(.*)`),
			regexp.MustCompile(`quando\s+(.*)`),
			regexp.MustCompile(`por\s+que\s+(.*)`),
		},
	},
}

// patternConfidence é a confiança atribuída a qualquer casamento de padrão
const patternConfidence = 0.8

// categoryByIntent mapeia intenção para a categoria associada
var categoryByIntent = map[Intent]string{
	IntentCadastroPrestador: "prestador",
	IntentBuscaPrestador:    "prestador",
	IntentVendaProduto:      "produto",
	IntentBuscaProduto:      "produto",
	IntentConexaoPessoal:    "pessoa",
	IntentAchadoPerdido:     "item",
	IntentReclamacao:        "empresa",
	IntentBolsaEstudo:       "educacao",
	IntentMercadoFinanceiro: "financeiro",
	IntentPesquisaGeral:     "informacao",
}

// CategoryFor retorna a categoria padrão de uma intenção
func CategoryFor(intent Intent) string {
	if category, ok := categoryByIntent[intent]; ok {
		return category
	}
	return "geral"
}

// Classify executa a fase de padrões da classificação sobre o texto já
// normalizado. Retorna nil quando nenhum padrão casa; o chamador decide se
// recorre ao oráculo semântico.
func Classify(normalized string) *IntentResult {
	if normalized == "" {
		return nil
	}

	for _, set := range intentOrder {
		for _, pattern := range set.patterns {
			match := pattern.FindStringSubmatch(normalized)
			if match == nil {
				continue
			}

			return &IntentResult{
				Intent:         set.intent,
				Category:       CategoryFor(set.intent),
				Confidence:     patternConfidence,
				MatchedPattern: pattern.String(),
				MatchedGroups:  match[1:],
			}
		}
	}

	return nil
}

// SuggestedActions determina as ações sugeridas para um resultado conforme
// as entidades já extraídas
func SuggestedActions(result *IntentResult, entities Entities) []string {
	var actions []string

	switch result.Intent {
	case IntentCadastroPrestador:
		if !entities.Has(EntityLocalizacao) {
			actions = append(actions, "solicitar_localizacao")
		}
		if !entities.Has(EntityTelefone) {
			actions = append(actions, "solicitar_contato")
		}
	case IntentBuscaPrestador:
		if !entities.Has(EntityLocalizacao) {
			actions = append(actions, "sugerir_localizacao")
		}
		actions = append(actions, "mostrar_resultados")
	case IntentVendaProduto:
		if !entities.Has(EntityPreco) {
			actions = append(actions, "solicitar_preco")
		}
		if !entities.Has(EntityLocalizacao) {
			actions = append(actions, "solicitar_localizacao")
		}
	case IntentConexaoPessoal:
		actions = append(actions, "solicitar_dados_perfil")
	case IntentReclamacao:
		actions = append(actions, "solicitar_detalhes_empresa", "solicitar_detalhes_problema")
	default:
		if result.RequiresClarification {
			actions = append(actions, "solicitar_esclarecimento")
		}
	}

	return actions
}
