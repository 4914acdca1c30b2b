package rules

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// valueTolerance absorbs rounding drift when reconciling monetary totals.
const valueTolerance = 0.01

// codigosDespesa is the TISS expense-type domain (02=medicamentos,
// 03=materiais, 05=diárias, 07=gases, 08=OPME, 01=taxas).
var codigosDespesa = map[string]struct{}{
	"01": {}, "02": {}, "03": {}, "05": {}, "07": {}, "08": {},
}

// financialRules validate monetary values and their reconciliation
// (priority band 240s, codes FIN###).
func financialRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "valor-unitario",
			name:        "Valor unitário",
			description: "Valores unitários devem ser positivos",
			priority:    240,
			applies:     knownType,
			validate:    validateValorUnitario,
		},
		&rule{
			id:          "valor-total",
			name:        "Valor total",
			description: "O valor total geral deve bater com a soma dos valores totais",
			priority:    245,
			applies:     knownType,
			validate:    validateValorTotal,
		},
		&rule{
			id:          "codigo-despesa",
			name:        "Código de despesa",
			description: "O código de despesa deve pertencer ao domínio TISS",
			priority:    250,
			applies:     typeIs(guide.TypeSADT, guide.TypeInternacao),
			validate:    validateCodigoDespesa,
		},
	}
}

func validateValorUnitario(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractExactFieldOccurrences(g.Root, "valorUnitario") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			findings = append(findings, validation.NewError("FIN001", "valorUnitario",
				fmt.Sprintf("valor unitário %q deve ser maior que zero", v)))
		}
	}
	return findings, nil
}

// validateValorTotal reconciles valorTotalGeral against the sum of every
// valorTotal occurrence. Both extractions are exact so that valorTotalGeral
// is not counted into its own sum.
func validateValorTotal(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	declared := guide.ExtractExactFieldValues(g.Root, "valorTotalGeral")
	if len(declared) == 0 {
		return nil, nil
	}
	total, err := strconv.ParseFloat(declared[0], 64)
	if err != nil {
		return []validation.Finding{
			validation.NewError("FIN002", "valorTotalGeral",
				fmt.Sprintf("valor total geral %q não é numérico", declared[0])),
		}, nil
	}

	parcels := guide.ExtractExactFieldOccurrences(g.Root, "valorTotal")
	if len(parcels) == 0 {
		return nil, nil
	}
	var sum float64
	for _, v := range parcels {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil // non-numeric parcels are valor-unitario territory
		}
		sum += f
	}

	if math.Abs(sum-total) > valueTolerance {
		return []validation.Finding{
			validation.NewError("FIN002", "valorTotalGeral",
				fmt.Sprintf("valor total geral %.2f difere da soma dos totais %.2f", total, sum)).
				WithSuggestion("recalcule o valor total geral a partir dos itens"),
		}, nil
	}
	return nil, nil
}

func validateCodigoDespesa(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return validateDomain(g, "codigoDespesa", codigosDespesa, "FIN003",
		"código de despesa"), nil
}
