package rules

import (
	"context"
	"fmt"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// structuralRules are the cheap preconditions that run before everything
// else (priority band < 20).
func structuralRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "documento-vazio",
			name:        "Documento vazio",
			description: "O documento deve conter ao menos um elemento com conteúdo",
			priority:    5,
			applies:     anyDocument,
			validate:    validateEmptyDocument,
		},
		&rule{
			id:          "registro-ans",
			name:        "Registro ANS",
			description: "O registro da operadora na ANS deve estar presente com 6 dígitos",
			priority:    8,
			applies:     knownType,
			validate:    validateRegistroANS,
		},
		&rule{
			id:          "numero-guia-presente",
			name:        "Número da guia",
			description: "Toda guia deve informar seu número",
			priority:    9,
			applies:     knownType,
			validate:    validateNumeroGuiaPresente,
		},
		&rule{
			id:          "tipo-guia-desconhecido",
			name:        "Tipo de guia desconhecido",
			description: "Documentos de tipo não reconhecido não podem ser validados em profundidade",
			priority:    10,
			applies: func(g *guide.Context) bool {
				return !g.GuiaType.Known()
			},
			validate: validateTipoDesconhecido,
		},
	}
}

func validateEmptyDocument(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	m, ok := g.Root.(guide.Mapping)
	if !ok || len(m) == 0 {
		return []validation.Finding{
			validation.NewError("W001", "", "documento sem conteúdo estruturado"),
		}, nil
	}
	return nil, nil
}

func validateRegistroANS(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	values := guide.ExtractFieldValues(g.Root, "registroANS")
	if len(values) == 0 {
		return []validation.Finding{
			validation.NewWarning("W002", "registroANS", "registro ANS da operadora ausente").
				WithSuggestion("informe o registro da operadora na ANS (6 dígitos)"),
		}, nil
	}

	var findings []validation.Finding
	for _, v := range values {
		if len(digits(v)) != 6 {
			findings = append(findings, validation.NewWarning("W002", "registroANS",
				fmt.Sprintf("registro ANS %q não tem 6 dígitos", v)))
		}
	}
	return findings, nil
}

func validateNumeroGuiaPresente(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	if len(guide.ExtractFieldValues(g.Root, "numeroGuia")) == 0 {
		return []validation.Finding{
			validation.NewWarning("W003", "numeroGuia", "nenhum número de guia encontrado no documento"),
		}, nil
	}
	return nil, nil
}

func validateTipoDesconhecido(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return []validation.Finding{
		validation.NewWarning("W004", "",
			"tipo de guia não reconhecido; somente verificações genéricas foram aplicadas").
			WithSuggestion("verifique se o documento segue o padrão TISS vigente"),
	}, nil
}
