package rules

import (
	"context"
	"fmt"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/tables"
	"vitalis-hq/glosaguard/pkg/validation"
)

// tabelasReferencia is the domain of TISS reference-table codes accepted in
// codigoTabela fields.
var tabelasReferencia = map[string]struct{}{
	"00": {}, "18": {}, "19": {}, "20": {}, "22": {}, "90": {}, "98": {},
}

// lookupRules validate codes against the external lookup-table services
// (priority band 170s, codes TAB###). They are the asynchronous rules: the
// first use of a table blocks on its lazy load.
func lookupRules(procedures, occupations tables.Service) []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "tuss-procedimento-existe",
			name:        "Procedimento TUSS existente",
			description: "Todo código de procedimento deve existir na tabela TUSS",
			priority:    170,
			applies:     knownType,
			validate: func(ctx context.Context, g *guide.Context) ([]validation.Finding, error) {
				return validateProcedimentoExiste(ctx, g, procedures)
			},
		},
		&rule{
			id:          "tuss-procedimento-vigente",
			name:        "Procedimento TUSS vigente",
			description: "Procedimentos TUSS fora de vigência tendem a ser glosados",
			priority:    175,
			applies:     knownType,
			validate: func(ctx context.Context, g *guide.Context) ([]validation.Finding, error) {
				return validateProcedimentoVigente(ctx, g, procedures)
			},
		},
		&rule{
			id:          "cbo-existe",
			name:        "CBO existente",
			description: "O código CBO do profissional executante deve existir na tabela CBO",
			priority:    180,
			applies:     knownType,
			validate: func(ctx context.Context, g *guide.Context) ([]validation.Finding, error) {
				return validateCBOExiste(ctx, g, occupations)
			},
		},
		&rule{
			id:          "tabela-referencia",
			name:        "Tabela de referência",
			description: "O código de tabela deve pertencer ao domínio de tabelas TISS",
			priority:    185,
			applies:     knownType,
			validate:    validateTabelaReferencia,
		},
	}
}

func validateProcedimentoExiste(ctx context.Context, g *guide.Context, svc tables.Service) ([]validation.Finding, error) {
	if svc == nil {
		return nil, nil
	}

	var findings []validation.Finding
	for _, code := range guide.ExtractFieldValues(g.Root, "codigoProcedimento") {
		ok, err := svc.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !ok {
			findings = append(findings, validation.NewError("TAB001", "codigoProcedimento",
				fmt.Sprintf("procedimento %q não consta na tabela TUSS", code)).
				WithSuggestion("confira o código na tabela 22 (TUSS) vigente"))
		}
	}
	return findings, nil
}

func validateProcedimentoVigente(ctx context.Context, g *guide.Context, svc tables.Service) ([]validation.Finding, error) {
	if svc == nil {
		return nil, nil
	}

	var findings []validation.Finding
	for _, code := range guide.ExtractFieldValues(g.Root, "codigoProcedimento") {
		exists, err := svc.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue // absence is tuss-procedimento-existe's finding
		}
		current, err := svc.IsCurrent(ctx, code)
		if err != nil {
			return nil, err
		}
		if !current {
			findings = append(findings, validation.NewWarning("TAB002", "codigoProcedimento",
				fmt.Sprintf("procedimento %q fora de vigência", code)))
		}
	}
	return findings, nil
}

func validateCBOExiste(ctx context.Context, g *guide.Context, svc tables.Service) ([]validation.Finding, error) {
	if svc == nil {
		return nil, nil
	}

	var findings []validation.Finding
	for _, code := range guide.ExtractFieldValues(g.Root, "CBOS") {
		ok, err := svc.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !ok {
			findings = append(findings, validation.NewWarning("TAB003", "CBOS",
				fmt.Sprintf("CBO %q não consta na tabela de ocupações", code)))
		}
	}
	return findings, nil
}

func validateTabelaReferencia(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractExactFieldValues(g.Root, "codigoTabela") {
		code := v
		if len(code) == 1 {
			code = "0" + code
		}
		if _, ok := tabelasReferencia[code]; !ok {
			findings = append(findings, validation.NewError("TAB004", "codigoTabela",
				fmt.Sprintf("código de tabela %q fora do domínio TISS", v)))
		}
	}
	return findings, nil
}
