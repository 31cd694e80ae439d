package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/soliciteia/assistente/internal/domain/provider"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

// specialtyEntry associa uma especialidade canônica às palavras que a denunciam
type specialtyEntry struct {
	nome     string
	keywords []string
}

// Tabela ordenada; a ordem resolve empates de forma determinística
var specialtyTable = []specialtyEntry{
	{"eletricista", []string{"eletricista", "eletrico", "instalacao eletrica", "fiacao"}},
	{"canalizador", []string{"canalizador", "encanador", "canos", "torneira"}},
	{"pintor", []string{"pintor", "pintura", "tinta", "parede"}},
	{"mecanico", []string{"mecanico", "automovel", "motor"}},
	{"cabeleireira", []string{"cabeleireira", "cabelo", "penteado", "corte"}},
	{"costureira", []string{"costureira", "costura", "alfaiate"}},
	{"soldador", []string{"soldador", "solda", "serralheiro"}},
	{"carpinteiro", []string{"carpinteiro", "madeira", "movel", "porta"}},
	{"pedreiro", []string{"pedreiro", "construcao", "obra", "tijolo"}},
	{"jardineiro", []string{"jardineiro", "jardim", "plantas", "grama"}},
	{"domestica", []string{"domestica", "limpeza", "empregada"}},
	{"seguranca", []string{"seguranca", "guarda", "vigilante", "porteiro"}},
	{"professor", []string{"professor", "ensino", "aulas", "explicacoes"}},
	{"motorista", []string{"motorista", "condutor", "transporte", "taxi"}},
}

var (
	souPattern      = regexp.MustCompile(`\bsou\s+([a-z]+)`)
	trabalhoPattern = regexp.MustCompile(`\btrabalho\s+como\s+([a-z]+)`)
	procuroPattern  = regexp.MustCompile(`\b(?:procuro|preciso\s+de)\s+(?:um\s+|uma\s+)?([a-z]+)`)
)

// extractSpecialty localiza uma especialidade na mensagem: primeiro a tabela
// de palavras conhecidas, depois os padrões "sou X" e "trabalho como X"
func extractSpecialty(normalized string, _ nlp.Entities) string {
	for _, entry := range specialtyTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}

	for _, pattern := range []*regexp.Regexp{souPattern, trabalhoPattern, procuroPattern} {
		if match := pattern.FindStringSubmatch(normalized); match != nil {
			return match[1]
		}
	}

	return ""
}

// ProviderHandler atende cadastro e busca de prestadores de serviços
type ProviderHandler struct {
	logger      logger.Logger
	prestadores provider.Repository
}

// NewProviderHandler cria o handler de prestadores
func NewProviderHandler(log logger.Logger, prestadores provider.Repository) *ProviderHandler {
	return &ProviderHandler{logger: log, prestadores: prestadores}
}

func (h *ProviderHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentCadastroPrestador, nlp.IntentBuscaPrestador}
}

func (h *ProviderHandler) Schemas() []*session.Schema {
	return []*session.Schema{
		{
			Intent: nlp.IntentCadastroPrestador,
			Fields: []session.FieldSpec{
				{
					Name:     "especialidade",
					Required: true,
					Extract:  extractSpecialty,
					Prompt: "Qual é a sua especialidade/profissão?\n\n" +
						"Exemplos: eletricista, canalizador, pintor, mecânico, cabeleireira, etc.",
				},
				{
					Name:     "localizacao",
					Required: true,
					Entity:   nlp.EntityLocalizacao,
					Extract:  nlp.FindLocation,
					Prompt: "Em que região você atende?\n\n" +
						"Exemplo: Luanda, Cacuaco, Viana, etc.",
				},
				{
					Name:     "contato",
					Required: true,
					Entity:   nlp.EntityTelefone,
					Prompt: "Qual é o seu contato para os clientes?\n\n" +
						"Exemplo: 923456789",
				},
				{Name: "preco", Entity: nlp.EntityPreco},
				{
					Name:     "descricao",
					FreeText: true,
					Prompt: "Quer descrever os seus serviços?\n\n" +
						"Experiência, tipos de trabalho, garantias. " +
						"Escreva \"pular\" para concluir sem descrição.",
				},
			},
		},
	}
}

// Process trata um turno já resolvido: cadastro com registro completo ou
// busca direta de prestadores
func (h *ProviderHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	intent := turn.Result.Intent
	if turn.Session != nil {
		intent = turn.Session.Intent
	}

	switch intent {
	case nlp.IntentCadastroPrestador:
		return h.register(ctx, turn)
	case nlp.IntentBuscaPrestador:
		return h.search(ctx, turn)
	default:
		return &Outcome{Success: false, Text: "Comando não reconhecido para prestadores de serviços."}, nil
	}
}

func (h *ProviderHandler) register(ctx context.Context, turn *Turn) (*Outcome, error) {
	especialidade := turn.Record["especialidade"]
	localizacao := turn.Record["localizacao"]

	existing, err := h.prestadores.FindByTelefoneEspecialidade(ctx, turn.Sender, especialidade)
	if err != nil && !errors.Is(err, provider.ErrPrestadorNotFound) {
		return nil, fmt.Errorf("erro ao verificar cadastro existente: %w", err)
	}
	if existing != nil {
		return &Outcome{
			Success: true,
			Text: fmt.Sprintf("Você já está cadastrado como %s em %s.\n\nDeseja atualizar suas informações?",
				especialidade, existing.Localizacao),
			Buttons: []Button{
				{ID: "update_provider", Title: "✏️ Atualizar"},
				{ID: "view_provider", Title: "👁️ Ver Perfil"},
			},
		}, nil
	}

	p, err := provider.NewPrestador(turn.Sender, especialidade, localizacao, turn.Record["contato"])
	if err != nil {
		if field, prompt := rejectedProviderField(err); field != "" {
			return &Outcome{RejectedField: field, RejectedPrompt: prompt}, nil
		}
		return nil, err
	}
	p.Preco = turn.Record["preco"]
	p.Descricao = turn.Record["descricao"]

	if err := h.prestadores.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("erro ao cadastrar prestador: %w", err)
	}

	h.logger.Info("Prestador cadastrado", "id", p.ID, "especialidade", p.Especialidade, "localizacao", p.Localizacao)

	return &Outcome{
		Success: true,
		Text: fmt.Sprintf("✅ Cadastro concluído!\n\n"+
			"Você está registado como *%s* em *%s*.\n"+
			"📱 Contato: %s\n\n"+
			"Quando alguém procurar pelos seus serviços, vou indicar o seu perfil.",
			p.Especialidade, nlp.Title(p.Localizacao), p.Contato),
		CompletedEntity: p.ID,
	}, nil
}

// rejectedProviderField traduz erros de validação da entidade em reabertura
// de campo da coleta
func rejectedProviderField(err error) (field, prompt string) {
	switch {
	case errors.Is(err, provider.ErrEmptyEspecialidade):
		return "especialidade", "Não percebi a especialidade. Qual é a sua profissão?"
	case errors.Is(err, provider.ErrEmptyLocalizacao):
		return "localizacao", "Não percebi a região. Em que zona você atende?"
	case errors.Is(err, provider.ErrEmptyContato):
		return "contato", "Não percebi o contato. Qual é o seu número para os clientes?"
	default:
		return "", ""
	}
}

func (h *ProviderHandler) search(ctx context.Context, turn *Turn) (*Outcome, error) {
	especialidade := extractSpecialty(turn.Normalized, turn.Entities)
	if especialidade == "" {
		return &Outcome{
			Success: true,
			Text: "Que tipo de profissional você está procurando?\n\n" +
				"Exemplos: eletricista, canalizador, pintor, mecânico, cabeleireira, etc.",
		}, nil
	}

	localizacao := nlp.FindLocation(turn.Normalized, turn.Entities)

	providers, err := h.prestadores.Search(ctx, especialidade, strings.ToLower(localizacao), 10)
	if err != nil {
		return nil, fmt.Errorf("erro na busca de prestadores: %w", err)
	}

	if len(providers) == 0 {
		return h.noneFound(especialidade, localizacao), nil
	}

	return h.formatResults(providers, especialidade, localizacao), nil
}

func (h *ProviderHandler) formatResults(providers []*provider.Prestador, especialidade, localizacao string) *Outcome {
	locationText := ""
	if localizacao != "" {
		locationText = " em " + localizacao
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Encontrei %d %s(s)%s:\n\n", len(providers), especialidade, locationText)

	items := make([]ListItem, 0, len(providers))
	for i, p := range providers {
		fmt.Fprintf(&b, "%d. *%s*\n📍 %s\n", i+1, nlp.Title(p.Especialidade), nlp.Title(p.Localizacao))
		if p.Preco != "" {
			fmt.Fprintf(&b, "💰 %s\n", p.Preco)
		}
		if p.Disponibilidade != "" {
			fmt.Fprintf(&b, "🕐 %s\n", p.Disponibilidade)
		}
		fmt.Fprintf(&b, "📱 %s\n\n", p.Contato)

		items = append(items, ListItem{
			ID:          "provider_" + p.ID,
			Title:       nlp.Title(p.Especialidade) + " - " + nlp.Title(p.Localizacao),
			Description: "📱 " + p.Contato,
		})
	}

	b.WriteString("💡 *Dica:* Sempre confirme disponibilidade e preços antes de contratar!")

	return &Outcome{
		Success:   true,
		Text:      b.String(),
		ListItems: items,
		Buttons: []Button{
			{ID: "search_again", Title: "🔍 Nova Busca"},
			{ID: "register_provider", Title: "➕ Cadastrar-me"},
		},
	}
}

func (h *ProviderHandler) noneFound(especialidade, localizacao string) *Outcome {
	locationText := ""
	if localizacao != "" {
		locationText = " em " + localizacao
	}

	return &Outcome{
		Success: true,
		Text: fmt.Sprintf("😔 Não encontrei %s(s)%s no momento.\n\n"+
			"💡 *Sugestões:*\n"+
			"• Tente uma região próxima\n"+
			"• Verifique a grafia da profissão\n"+
			"• Cadastre-se se você é prestador\n\n"+
			"Posso ajudar com outra busca?", especialidade, locationText),
		Buttons: []Button{
			{ID: "search_nearby", Title: "📍 Região Próxima"},
			{ID: "register_provider", Title: "➕ Sou Prestador"},
		},
	}
}
