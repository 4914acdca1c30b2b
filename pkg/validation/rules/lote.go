package rules

import (
	"context"
	"fmt"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

const (
	// maxGuiasPorLote is the TISS ceiling of guides per batch.
	maxGuiasPorLote = 300

	// warnGuiasPorLote is where the batch starts getting flagged as close
	// to the ceiling.
	warnGuiasPorLote = 280
)

// loteRules cover batch documents and cross-guide duplication (priority band
// 200s, codes LOTE###/DUPL###).
func loteRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "duplicidade-numero-guia",
			name:        "Duplicidade de número de guia",
			description: "Números de guia repetidos no mesmo documento causam glosa de duplicidade",
			priority:    200,
			applies:     anyDocument,
			validate:    validateDuplicidadeGuia,
		},
		&rule{
			id:          "lote-limite-guias",
			name:        "Limite de guias por lote",
			description: "Um lote comporta no máximo 300 guias",
			priority:    205,
			applies:     typeIs(guide.TypeLote),
			validate:    validateLimiteGuias,
		},
		&rule{
			id:          "numero-lote-presente",
			name:        "Número do lote",
			description: "Todo lote deve informar seu número",
			priority:    210,
			applies:     typeIs(guide.TypeLote),
			validate:    validateNumeroLote,
		},
	}
}

// validateDuplicidadeGuia emits one error per distinct duplicated value, not
// one per occurrence.
func validateDuplicidadeGuia(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	counts := map[string]int{}
	var order []string
	for _, v := range guide.ExtractFieldOccurrences(g.Root, "numeroGuia") {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	var findings []validation.Finding
	for _, v := range order {
		if counts[v] > 1 {
			findings = append(findings, validation.NewError("DUPL001", "numeroGuia",
				fmt.Sprintf("número de guia %q aparece %d vezes no documento", v, counts[v])).
				WithSuggestion("cada guia do lote deve ter número único"))
		}
	}
	return findings, nil
}

func validateLimiteGuias(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	n := len(guide.ExtractFieldValues(g.Root, "numeroGuia"))

	switch {
	case n > maxGuiasPorLote:
		return []validation.Finding{
			validation.NewError("LOTE001", "numeroGuia",
				fmt.Sprintf("lote com %d guias excede o limite de %d", n, maxGuiasPorLote)).
				WithSuggestion("divida o envio em lotes de até 300 guias"),
		}, nil
	case n >= warnGuiasPorLote && n < maxGuiasPorLote:
		return []validation.Finding{
			validation.NewWarning("LOTE002", "numeroGuia",
				fmt.Sprintf("lote com %d guias se aproxima do limite de %d", n, maxGuiasPorLote)),
		}, nil
	}
	return nil, nil
}

func validateNumeroLote(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	if len(guide.ExtractFieldValues(g.Root, "numeroLote")) == 0 {
		return []validation.Finding{
			validation.NewError("LOTE003", "numeroLote", "lote sem número de lote"),
		}, nil
	}
	return nil, nil
}
