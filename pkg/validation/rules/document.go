package rules

import (
	"context"
	"fmt"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// conselhos is the professional-council domain (TISS tabela de conselhos).
var conselhos = map[string]string{
	"01": "CRAS",
	"02": "COREN",
	"03": "CRF",
	"04": "CRFA",
	"05": "CREFITO",
	"06": "CRM",
	"07": "CRN",
	"08": "CRO",
	"09": "CRP",
	"10": "CRV",
}

// ufs is the set of Brazilian federative units.
var ufs = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {},
	"ES": {}, "GO": {}, "MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {},
	"PB": {}, "PR": {}, "PE": {}, "PI": {}, "RJ": {}, "RN": {}, "RS": {},
	"RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// documentRules validate the identity documents carried by a guide
// (priority band 100s, codes DOC###).
func documentRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "cpf-valido",
			name:        "CPF válido",
			description: "Todo CPF informado deve ter dígitos verificadores corretos",
			priority:    100,
			applies:     anyDocument,
			validate:    validateCPF,
		},
		&rule{
			id:          "cnpj-valido",
			name:        "CNPJ válido",
			description: "Todo CNPJ informado deve ter dígitos verificadores corretos",
			priority:    105,
			applies:     anyDocument,
			validate:    validateCNPJ,
		},
		&rule{
			id:          "cns-valido",
			name:        "CNS válido",
			description: "Todo Cartão Nacional de Saúde informado deve ser consistente",
			priority:    110,
			applies:     anyDocument,
			validate:    validateCNS,
		},
		&rule{
			id:          "conselho-profissional",
			name:        "Conselho profissional",
			description: "O código do conselho profissional deve pertencer à tabela de conselhos",
			priority:    115,
			applies:     knownType,
			validate:    validateConselho,
		},
		&rule{
			id:          "uf-conselho",
			name:        "UF do conselho",
			description: "A UF do conselho profissional deve ser uma unidade federativa válida",
			priority:    120,
			applies:     knownType,
			validate:    validateUFConselho,
		},
		&rule{
			id:          "codigo-prestador",
			name:        "Código do prestador",
			description: "O código do prestador na operadora deve estar presente",
			priority:    125,
			applies:     knownType,
			validate:    validateCodigoPrestador,
		},
		&rule{
			id:          "numero-carteira",
			name:        "Número da carteira",
			description: "O número da carteira do beneficiário deve estar presente",
			priority:    130,
			applies:     knownType,
			validate:    validateNumeroCarteira,
		},
	}
}

func validateCPF(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "cpf") {
		cpf := digits(v)
		if !validCPF(cpf) {
			findings = append(findings, validation.NewError("DOC001", "cpf",
				fmt.Sprintf("CPF %q inválido", v)).
				WithSuggestion("confira os dígitos verificadores do CPF"))
		}
	}
	return findings, nil
}

func validateCNPJ(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "cnpj") {
		if !validCNPJ(digits(v)) {
			findings = append(findings, validation.NewError("DOC002", "cnpj",
				fmt.Sprintf("CNPJ %q inválido", v)))
		}
	}
	return findings, nil
}

func validateCNS(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "cns") {
		if !validCNS(digits(v)) {
			findings = append(findings, validation.NewError("DOC003", "cns",
				fmt.Sprintf("CNS %q inválido", v)))
		}
	}
	return findings, nil
}

// validateConselho uses exact-match extraction: the substring policy would
// also match "numeroConselhoProfissional", whose value is the professional's
// registration number, not a council code.
func validateConselho(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractExactFieldValues(g.Root, "conselhoProfissional") {
		code := v
		if len(code) == 1 {
			code = "0" + code
		}
		if _, ok := conselhos[code]; !ok {
			findings = append(findings, validation.NewError("DOC004", "conselhoProfissional",
				fmt.Sprintf("código de conselho profissional %q fora da tabela", v)))
		}
	}
	return findings, nil
}

func validateUFConselho(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractExactFieldValues(g.Root, "UFConselho") {
		if _, ok := ufs[v]; !ok {
			findings = append(findings, validation.NewError("DOC005", "UFConselho",
				fmt.Sprintf("UF do conselho %q inválida", v)))
		}
	}
	return findings, nil
}

func validateCodigoPrestador(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	if len(guide.ExtractFieldValues(g.Root, "codigoPrestadorNaOperadora")) == 0 {
		return []validation.Finding{
			validation.NewWarning("DOC006", "codigoPrestadorNaOperadora",
				"código do prestador na operadora ausente"),
		}, nil
	}
	return nil, nil
}

func validateNumeroCarteira(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	if len(guide.ExtractFieldValues(g.Root, "numeroCarteira")) == 0 {
		return []validation.Finding{
			validation.NewWarning("DOC007", "numeroCarteira",
				"número da carteira do beneficiário ausente"),
		}, nil
	}
	return nil, nil
}
