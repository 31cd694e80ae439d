package nlp

import "regexp"

// entityPatternSet agrupa os padrões ordenados de um tipo de entidade.
// A ordem declarada é relevante: dentro de um tipo o primeiro padrão que
// casar em uma posição vence.
type entityPatternSet struct {
	tipo     EntityType
	patterns []*regexp.Regexp
}

var entityPatterns = []entityPatternSet{
	{
		tipo: EntityLocalizacao,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`em\s+(luanda|benguela|huambo|lobito|cabinda|namibe|malanje|uige|zaire|cuando\s+cubango|cunene|huila|lunda\s+norte|lunda\s+sul|moxico|bengo|bie)`),
			regexp.MustCompile(`em\s+(cacuaco|viana|cazenga|sambizanga|maianga|ingombota|rangel|kilamba|talatona|zango)`),
			regexp.MustCompile(`na\s+(marginal|baixa|cidade\s+alta|miramar|alvalade|maianga)`),
		},
	},
	{
		tipo: EntityPreco,
		patterns: []*regexp.Regexp{
			// A normalização troca o ponto de milhares por espaço, então
			// os padrões aceitam os dois separadores
			regexp.MustCompile(`(\d+(?:[.\s]\d{3})*(?:,\d{2})?)\s*(?:kz|kwanza|akz)`),
			regexp.MustCompile(`(\d+(?:[.\s]\d{3})*(?:,\d{2})?)\s*(?:usd|dolar|dollar)`),
			regexp.MustCompile(`(\d+(?:[.\s]\d{3})*(?:,\d{2})?)\s*(?:eur|euro)`),
		},
	},
	{
		tipo: EntityTelefone,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\+244\s*)?(9[0-9]{8})`),
			regexp.MustCompile(`(\+244\s*)?(2[0-9]{8})`),
		},
	},
	{
		tipo: EntityEmail,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
		},
	},
	{
		tipo: EntityIdade,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d{1,2})\s*anos?`),
			regexp.MustCompile(`idade\s*:?\s*(\d{1,2})`),
		},
	},
}

// ExtractEntities extrai entidades tipadas do texto normalizado. Para cada
// tipo aplica os padrões em ordem, achata os grupos de captura não vazios e
// remove duplicatas preservando a primeira ocorrência. Tipos sem nenhum
// valor extraído ficam de fora do resultado.
func ExtractEntities(normalized string) Entities {
	entities := make(Entities)

	for _, set := range entityPatterns {
		var values []string
		seen := make(map[string]bool)

		for _, pattern := range set.patterns {
			for _, match := range pattern.FindAllStringSubmatch(normalized, -1) {
				captures := match[1:]
				if len(captures) == 0 {
					captures = match[:1]
				}
				for _, capture := range captures {
					if capture == "" || seen[capture] {
						continue
					}
					seen[capture] = true
					values = append(values, capture)
				}
			}
		}

		if len(values) > 0 {
			entities[set.tipo] = values
		}
	}

	return entities
}
