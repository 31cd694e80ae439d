package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/soliciteia/assistente/internal/domain/product"
	"github.com/soliciteia/assistente/pkg/logger"
	"github.com/soliciteia/assistente/pkg/nlp"
	"github.com/soliciteia/assistente/pkg/session"
)

type categoryEntry struct {
	nome     string
	keywords []string
}

var categoryTable = []categoryEntry{
	{"eletronicos", []string{"telefone", "celular", "smartphone", "iphone", "samsung", "computador", "laptop", "tablet", "televisao", "radio", "som"}},
	{"veiculos", []string{"carro", "automovel", "moto", "motocicleta", "bicicleta", "toyota", "honda", "nissan", "hyundai"}},
	{"casa_jardim", []string{"movel", "sofa", "cama", "mesa", "cadeira", "geladeira", "geleira", "fogao", "microondas", "eletrodomestico"}},
	{"roupas_acessorios", []string{"roupa", "camisa", "calca", "vestido", "sapato", "tenis", "bolsa", "relogio", "oculos"}},
	{"bebes_criancas", []string{"bebe", "crianca", "brinquedo", "carrinho", "berco"}},
	{"animais", []string{"cachorro", "gato", "passaro", "animal", "racao"}},
}

var knownBrands = []string{
	"iphone", "samsung", "huawei", "xiaomi", "sony",
	"toyota", "honda", "nissan", "hyundai", "volkswagen",
	"nike", "adidas", "puma", "apple",
}

var productNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bvend[eo]\s+(.+?)(?:\s+por\b|\s+\d|$)`),
	regexp.MustCompile(`\btenho\s+para\s+venda\s+(.+?)$`),
	regexp.MustCompile(`\bestou\s+vendendo\s+(.+?)$`),
}

var searchTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bprocur[ao]\s+(.+?)(?:\s+em\b|\s+na\b|\s+por\b|$)`),
	regexp.MustCompile(`\bquero\s+comprar\s+(.+?)$`),
	regexp.MustCompile(`\bcomprar\s+(.+?)$`),
	regexp.MustCompile(`\bbuscar?\s+(.+?)$`),
}

var fillerWords = regexp.MustCompile(`\b(um|uma|o|a|meu|minha|para)\b`)

// extractProductName localiza o nome do produto anunciado na mensagem
func extractProductName(normalized string, _ nlp.Entities) string {
	for _, pattern := range productNamePatterns {
		if match := pattern.FindStringSubmatch(normalized); match != nil {
			name := strings.TrimSpace(fillerWords.ReplaceAllString(match[1], ""))
			name = strings.Join(strings.Fields(name), " ")
			if len(name) > 2 {
				return name
			}
		}
	}
	return ""
}

// extractCondition identifica o estado de conservação declarado
func extractCondition(normalized string) product.Condicao {
	switch {
	case strings.Contains(normalized, "seminovo"):
		return product.CondicaoSeminovo
	case strings.Contains(normalized, "novo") || strings.Contains(normalized, "lacrado") || strings.Contains(normalized, "na caixa"):
		return product.CondicaoNovo
	case strings.Contains(normalized, "usado") || strings.Contains(normalized, "segunda mao"):
		return product.CondicaoUsado
	}
	return product.CondicaoUsado
}

// extractCategory classifica o produto pela tabela de palavras de categoria
func extractCategory(normalized string) string {
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				return entry.nome
			}
		}
	}
	return "outros"
}

func extractBrand(normalized string) string {
	for _, brand := range knownBrands {
		if strings.Contains(normalized, brand) {
			return nlp.Title(brand)
		}
	}
	return ""
}

// MarketplaceHandler atende anúncios de venda e buscas de produtos
type MarketplaceHandler struct {
	logger   logger.Logger
	produtos product.Repository
}

// NewMarketplaceHandler cria o handler do marketplace
func NewMarketplaceHandler(log logger.Logger, produtos product.Repository) *MarketplaceHandler {
	return &MarketplaceHandler{logger: log, produtos: produtos}
}

func (h *MarketplaceHandler) Intents() []nlp.Intent {
	return []nlp.Intent{nlp.IntentVendaProduto, nlp.IntentBuscaProduto}
}

func (h *MarketplaceHandler) Schemas() []*session.Schema {
	return []*session.Schema{
		{
			Intent: nlp.IntentVendaProduto,
			Fields: []session.FieldSpec{
				{
					Name:     "produto",
					Required: true,
					Extract:  extractProductName,
					Prompt: "O que você está vendendo?\n\n" +
						"Exemplo: iphone 12, geleira, sofá de 3 lugares",
				},
				{
					Name:     "preco",
					Required: true,
					Entity:   nlp.EntityPreco,
					Prompt: "Qual é o preço?\n\n" +
						"Exemplo: 150.000kz",
				},
				{
					Name:     "localizacao",
					Required: true,
					Entity:   nlp.EntityLocalizacao,
					Extract:  nlp.FindLocation,
					Prompt: "Em que zona está o produto?\n\n" +
						"Exemplo: Talatona, Viana, Maianga",
				},
				{
					Name:     "descricao",
					FreeText: true,
					Prompt: "Quer acrescentar uma descrição ao anúncio?\n\n" +
						"Estado, acessórios incluídos, motivo da venda. " +
						"Escreva \"pular\" para publicar sem descrição.",
				},
			},
		},
	}
}

func (h *MarketplaceHandler) Process(ctx context.Context, turn *Turn) (*Outcome, error) {
	intent := turn.Result.Intent
	if turn.Session != nil {
		intent = turn.Session.Intent
	}

	switch intent {
	case nlp.IntentVendaProduto:
		return h.publish(ctx, turn)
	case nlp.IntentBuscaProduto:
		return h.search(ctx, turn)
	default:
		return &Outcome{Success: false, Text: "Comando não reconhecido para marketplace."}, nil
	}
}

func (h *MarketplaceHandler) publish(ctx context.Context, turn *Turn) (*Outcome, error) {
	nome := turn.Record["produto"]
	preco := nlp.ParsePrice(turn.Record["preco"])

	if preco <= 0 {
		return &Outcome{
			RejectedField:  "preco",
			RejectedPrompt: "Não percebi o preço. Quanto custa? Exemplo: 150.000kz",
		}, nil
	}

	p, err := product.NewProduto(turn.Sender, nome, preco, turn.Record["localizacao"])
	if err != nil {
		return nil, fmt.Errorf("erro ao montar anúncio: %w", err)
	}
	p.Categoria = extractCategory(turn.Normalized + " " + nome)
	p.Condicao = extractCondition(turn.Normalized)
	p.Marca = extractBrand(nome)
	p.Descricao = turn.Record["descricao"]

	if err := h.produtos.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("erro ao publicar anúncio: %w", err)
	}

	h.logger.Info("Anúncio publicado", "id", p.ID, "produto", p.Nome, "preco", p.Preco)

	return &Outcome{
		Success: true,
		Text: fmt.Sprintf("✅ Anúncio publicado!\n\n"+
			"📦 *%s*\n💰 %.0f kz\n📍 %s\n\n"+
			"Vou avisar quando alguém se interessar.",
			nlp.Title(p.Nome), p.Preco, nlp.Title(p.Localizacao)),
		CompletedEntity: p.ID,
	}, nil
}

func (h *MarketplaceHandler) search(ctx context.Context, turn *Turn) (*Outcome, error) {
	termo := ""
	for _, pattern := range searchTermPatterns {
		if match := pattern.FindStringSubmatch(turn.Normalized); match != nil {
			t := strings.TrimSpace(fillerWords.ReplaceAllString(match[1], ""))
			t = strings.Join(strings.Fields(t), " ")
			if len(t) > 2 {
				termo = t
				break
			}
		}
	}
	if termo == "" {
		return &Outcome{
			Success: true,
			Text: "O que você está procurando?\n\n" +
				"Exemplo: iphone, geleira, sofá",
		}, nil
	}

	filter := product.Filter{
		Termo:       termo,
		Localizacao: strings.ToLower(nlp.FindLocation(turn.Normalized, turn.Entities)),
	}
	if categoria := extractCategory(turn.Normalized); categoria != "outros" {
		filter.Categoria = categoria
	}
	if preco := turn.Entities.First(nlp.EntityPreco); preco != "" {
		filter.PrecoMax = nlp.ParsePrice(preco)
	}

	produtos, err := h.produtos.Search(ctx, filter, 10)
	if err != nil {
		return nil, fmt.Errorf("erro na busca de produtos: %w", err)
	}

	if len(produtos) == 0 {
		return &Outcome{
			Success: true,
			Text: fmt.Sprintf("😔 Não encontrei \"%s\" no momento.\n\n"+
				"💡 Tente outro termo ou uma zona diferente.\n"+
				"Se quiser, publique um pedido: \"Procuro %s\"", termo, termo),
			Buttons: []Button{
				{ID: "search_again", Title: "🔍 Nova Busca"},
				{ID: "marketplace", Title: "🛒 Marketplace"},
			},
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Encontrei %d resultado(s) para \"%s\":\n\n", len(produtos), termo)

	items := make([]ListItem, 0, len(produtos))
	for i, p := range produtos {
		fmt.Fprintf(&b, "%d. *%s*\n💰 %.0f kz\n📍 %s\n", i+1, nlp.Title(p.Nome), p.Preco, nlp.Title(p.Localizacao))
		if p.Condicao != product.CondicaoIndefinida {
			fmt.Fprintf(&b, "🏷️ %s\n", p.Condicao)
		}
		b.WriteString("\n")

		items = append(items, ListItem{
			ID:          "product_" + p.ID,
			Title:       nlp.Title(p.Nome),
			Description: fmt.Sprintf("%.0f kz | %s", p.Preco, nlp.Title(p.Localizacao)),
		})
	}

	b.WriteString("💡 *Dica:* Combine a entrega num local público e confira o produto antes de pagar!")

	return &Outcome{
		Success:   true,
		Text:      b.String(),
		ListItems: items,
		Buttons: []Button{
			{ID: "search_again", Title: "🔍 Nova Busca"},
			{ID: "sell_product", Title: "💰 Vender"},
		},
	}, nil
}
