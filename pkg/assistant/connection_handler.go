package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soliciteia/assistente/internal/domain/connection"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

var interestTable = []categoryEntry{
	{"amizade", []string{"amizade", "amigo", "amiga", "conhecer pessoas", "fazer amigos"}},
	{"namoro", []string{"namoro", "namorar", "relacionamento", "parceiro", "parceira"}},
	{"casamento", []string{"casamento", "casar", "matrimonio", "esposo", "esposa"}},
	{"networking", []string{"networking", "profissional", "negocios", "carreira"}},
}

// extractGender identifica o gênero procurado na mensagem
func extractGender(normalized string, _ nlp.Entities) string {
	for _, word := range []string{"homem", "masculino", "rapaz", "senhor"} {
		if strings.Contains(normalized, word) {
			return "masculino"
		}
	}
	for _, word := range []string{"mulher", "feminino", "rapariga", "senhora", "dama"} {
		if strings.Contains(normalized, word) {
			return "feminino"
		}
	}
	return ""
}

func extractInterest(normalized string) string {
	for _, entry := range interestTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}
	return "amizade"
}

// ConnectionHandler atende perfis de conexões pessoais
type ConnectionHandler struct {
	logger logger.Logger
	perfis connection.Repository
}

// NewConnectionHandler cria o handler de conexões pessoais
func NewConnectionHandler(log logger.Logger, perfis connection.Repository) *ConnectionHandler {
	return &ConnectionHandler{logger: log, perfis: perfis}
}

func (h *ConnectionHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentConexaoPessoal}
}

func (h *ConnectionHandler) Schemas() []*session.Schema {
	return []*session.Schema{
		{
			Intent: nlp.IntentConexaoPessoal,
			Fields: []session.FieldSpec{
				{
					Name:     "genero",
					Required: true,
					Extract:  extractGender,
					Prompt:   "Procura conhecer homens ou mulheres?",
				},
				{
					Name:     "idade",
					Required: true,
					Entity:   nlp.EntityIdade,
					Prompt: "Que faixa de idade procura?\n\n" +
						"Exemplo: 25 anos, 30 anos",
				},
				{
					Name:     "localizacao",
					Required: true,
					Entity:   nlp.EntityLocalizacao,
					Extract:  nlp.FindLocation,
					Prompt: "Em que zona?\n\n" +
						"Exemplo: Luanda, Talatona, Viana",
				},
				{
					Name:     "interesses",
					FreeText: true,
					Prompt: "O que procura? Amizade, namoro, casamento, networking...\n\n" +
						"Escreva \"pular\" para continuar sem preferência.",
				},
			},
		},
	}
}

func (h *ConnectionHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	p, err := connection.NewPerfil(turn.Sender, turn.Record["genero"], turn.Record["idade"], turn.Record["localizacao"])
	if err != nil {
		if errors.Is(err, connection.ErrIdadeInvalida) {
			return &Outcome{
				RejectedField:  "idade",
				RejectedPrompt: "A idade deve estar entre 18 e 99 anos. Que faixa de idade procura?",
			}, nil
		}
		return nil, fmt.Errorf("erro ao montar perfil: %w", err)
	}
	p.Interesses = extractInterest(turn.Record["interesses"] + " " + turn.Normalized)
	p.Descricao = turn.Record["interesses"]

	if err := h.perfis.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("erro ao gravar perfil: %w", err)
	}

	h.logger.Info("Perfil de conexão criado", "id", p.ID, "genero", p.Genero, "localizacao", p.Localizacao)

	matches, err := h.perfis.Search(ctx, p.Genero, strings.ToLower(p.Localizacao), 5)
	if err != nil {
		h.logger.Error("Erro na busca de perfis compatíveis", "error", err)
		matches = nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💞 Perfil criado!\n\n"+
		"Procura: %s, %d anos, em %s\n"+
		"Interesse: %s\n\n", p.Genero, p.Idade, nlp.Title(p.Localizacao), p.Interesses)

	compatible := 0
	for _, m := range matches {
		if m.Telefone != turn.Sender {
			compatible++
		}
	}
	if compatible > 0 {
		fmt.Fprintf(&b, "🔔 Há %d perfil(is) compatível(is) na sua zona. Vou apresentar as opções em privado.", compatible)
	} else {
		b.WriteString("Ainda não há perfis compatíveis na sua zona. Aviso assim que aparecer alguém. 🔔")
	}

	return &Outcome{
		Success:         true,
		Text:            b.String(),
		CompletedEntity: p.ID,
	}, nil
}
