package rules

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// TISS domains consulted by the critical business rules.
var (
	caraterAtendimento = map[string]struct{}{"1": {}, "2": {}} // 1=eletiva 2=urgência/emergência
	indicacaoAcidente  = map[string]struct{}{"0": {}, "1": {}, "2": {}, "9": {}}
	grausParticipacao  = buildPaddedDomain(0, 13)
	viasAcesso         = map[string]struct{}{"1": {}, "2": {}, "3": {}}
	regimesInternacao  = map[string]struct{}{"1": {}, "2": {}, "3": {}, "4": {}, "5": {}}

	// cid10Pattern matches CID-10 category codes, with optional subcategory
	// (e.g. "J45", "J45.0" normalized to "J450").
	cid10Pattern = regexp.MustCompile(`^[A-TV-Z][0-9]{2}[0-9A-Z]?$`)
)

// businessRules are the critical anti-rejection checks (priority band
// 210s-230s, codes NEG###).
func businessRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "carater-atendimento",
			name:        "Caráter do atendimento",
			description: "O caráter do atendimento deve ser eletivo (1) ou urgência (2)",
			priority:    215,
			applies:     knownType,
			validate:    validateCaraterAtendimento,
		},
		&rule{
			id:          "indicacao-acidente",
			name:        "Indicação de acidente",
			description: "A indicação de acidente deve pertencer ao domínio TISS",
			priority:    220,
			applies:     typeIs(guide.TypeConsulta, guide.TypeSADT),
			validate:    validateIndicacaoAcidente,
		},
		&rule{
			id:          "quantidade-executada",
			name:        "Quantidade executada",
			description: "A quantidade executada deve ser positiva e não exceder a solicitada",
			priority:    225,
			applies:     typeIs(guide.TypeSADT, guide.TypeInternacao, guide.TypeHonorarios),
			validate:    validateQuantidadeExecutada,
		},
		&rule{
			id:          "senha-autorizacao",
			name:        "Senha de autorização",
			description: "Atendimentos eletivos autorizados devem carregar a senha",
			priority:    228,
			applies:     typeIs(guide.TypeSADT, guide.TypeInternacao),
			validate:    validateSenhaAutorizacao,
		},
		&rule{
			id:          "grau-participacao",
			name:        "Grau de participação",
			description: "O grau de participação do profissional deve pertencer ao domínio TISS",
			priority:    230,
			applies:     typeIs(guide.TypeSADT, guide.TypeHonorarios),
			validate:    validateGrauParticipacao,
		},
		&rule{
			id:          "via-acesso",
			name:        "Via de acesso",
			description: "A via de acesso cirúrgica deve pertencer ao domínio TISS",
			priority:    232,
			applies:     typeIs(guide.TypeSADT, guide.TypeInternacao, guide.TypeHonorarios),
			validate:    validateViaAcesso,
		},
		&rule{
			id:          "regime-internacao",
			name:        "Regime de internação",
			description: "O regime de internação deve pertencer ao domínio TISS",
			priority:    234,
			applies:     typeIs(guide.TypeInternacao),
			validate:    validateRegimeInternacao,
		},
		&rule{
			id:          "cid10-formato",
			name:        "Formato CID-10",
			description: "Diagnósticos devem ser códigos CID-10 bem formados",
			priority:    236,
			applies:     knownType,
			validate:    validateCID10,
		},
	}
}

func validateCaraterAtendimento(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return validateDomain(g, "caraterAtendimento", caraterAtendimento, "NEG001",
		"caráter de atendimento"), nil
}

func validateIndicacaoAcidente(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	values := guide.ExtractExactFieldValues(g.Root, "indicacaoAcidente")
	if len(values) == 0 {
		return []validation.Finding{
			validation.NewWarning("NEG002", "indicacaoAcidente",
				"indicação de acidente ausente").
				WithSuggestion("informe 9 quando não se tratar de acidente"),
		}, nil
	}

	var findings []validation.Finding
	for _, v := range values {
		if _, ok := indicacaoAcidente[v]; !ok {
			findings = append(findings, validation.NewError("NEG002", "indicacaoAcidente",
				fmt.Sprintf("indicação de acidente %q fora do domínio", v)))
		}
	}
	return findings, nil
}

func validateQuantidadeExecutada(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding

	executadas := guide.ExtractExactFieldOccurrences(g.Root, "quantidadeExecutada")
	for _, v := range executadas {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil || q <= 0 {
			findings = append(findings, validation.NewError("NEG003", "quantidadeExecutada",
				fmt.Sprintf("quantidade executada %q deve ser maior que zero", v)))
		}
	}

	solicitadas := guide.ExtractExactFieldOccurrences(g.Root, "quantidadeSolicitada")
	if len(executadas) == len(solicitadas) {
		for i := range executadas {
			qe, err1 := strconv.ParseFloat(executadas[i], 64)
			qs, err2 := strconv.ParseFloat(solicitadas[i], 64)
			if err1 == nil && err2 == nil && qe > qs {
				findings = append(findings, validation.NewError("NEG003", "quantidadeExecutada",
					fmt.Sprintf("quantidade executada %s excede a solicitada %s",
						executadas[i], solicitadas[i])))
			}
		}
	}
	return findings, nil
}

func validateSenhaAutorizacao(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	carater := guide.ExtractExactFieldValues(g.Root, "caraterAtendimento")
	if len(carater) == 0 || carater[0] != "1" {
		return nil, nil
	}
	if len(guide.ExtractExactFieldValues(g.Root, "senha")) == 0 {
		return []validation.Finding{
			validation.NewWarning("NEG004", "senha",
				"atendimento eletivo sem senha de autorização").
				WithSuggestion("operadoras costumam glosar eletivos não autorizados"),
		}, nil
	}
	return nil, nil
}

func validateGrauParticipacao(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return validateDomain(g, "grauPart", grausParticipacao, "NEG005",
		"grau de participação"), nil
}

func validateViaAcesso(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return validateDomain(g, "viaAcesso", viasAcesso, "NEG006", "via de acesso"), nil
}

func validateRegimeInternacao(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	return validateDomain(g, "regimeInternacao", regimesInternacao, "NEG007",
		"regime de internação"), nil
}

// validateCID10 extracts by the "diagnostico" stem so diagnostico,
// codigoDiagnostico and diagnosticoCID are all covered by one call.
func validateCID10(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "diagnostico") {
		normalized := normalizeCID(v)
		if !cid10Pattern.MatchString(normalized) {
			findings = append(findings, validation.NewError("NEG008", "diagnostico",
				fmt.Sprintf("diagnóstico %q não é um CID-10 bem formado", v)))
		}
	}
	return findings, nil
}

// validateDomain checks every exact occurrence of field against a closed
// domain, left-padding bare single digits ("6" → "06") when the domain uses
// two-digit codes.
func validateDomain(g *guide.Context, field string, domain map[string]struct{}, code, label string) []validation.Finding {
	var findings []validation.Finding
	for _, v := range guide.ExtractExactFieldValues(g.Root, field) {
		candidate := v
		if _, ok := domain[candidate]; !ok && len(candidate) == 1 {
			candidate = "0" + candidate
		}
		if _, ok := domain[candidate]; !ok {
			findings = append(findings, validation.NewError(code, field,
				fmt.Sprintf("%s %q fora do domínio TISS", label, v)))
		}
	}
	return findings
}

func normalizeCID(v string) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '.' || v[i] == ' ' {
			continue
		}
		c := v[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

func buildPaddedDomain(from, to int) map[string]struct{} {
	d := make(map[string]struct{}, to-from+1)
	for i := from; i <= to; i++ {
		d[fmt.Sprintf("%02d", i)] = struct{}{}
	}
	return d
}
