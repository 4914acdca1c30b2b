package rules

import (
	"context"
	"fmt"
	"time"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

const dateLayout = "2006-01-02"

// maxPatientAge bounds plausible birth dates.
const maxPatientAge = 130

// dateRules validate date formats and cross-field date consistency
// (priority band 140s, codes DATA###).
func dateRules() []validation.Rule {
	return []validation.Rule{
		&rule{
			id:          "data-formato",
			name:        "Formato de datas",
			description: "Todas as datas devem estar no formato AAAA-MM-DD",
			priority:    140,
			applies:     anyDocument,
			validate:    validateDataFormato,
		},
		&rule{
			id:          "data-atendimento-futura",
			name:        "Data de atendimento futura",
			description: "A data de atendimento não pode estar no futuro",
			priority:    145,
			applies:     knownType,
			validate:    validateDataAtendimentoFutura,
		},
		&rule{
			id:          "data-solicitacao-autorizacao",
			name:        "Solicitação × autorização",
			description: "A solicitação não pode ser posterior à autorização",
			priority:    150,
			applies:     typeIs(guide.TypeSADT, guide.TypeInternacao),
			validate:    validateSolicitacaoAutorizacao,
		},
		&rule{
			id:          "data-emissao-atendimento",
			name:        "Emissão × atendimento",
			description: "A emissão da guia não deve ser posterior ao atendimento",
			priority:    152,
			applies:     knownType,
			validate:    validateEmissaoAtendimento,
		},
		&rule{
			id:          "validade-senha",
			name:        "Validade da senha",
			description: "A senha de autorização não pode estar vencida na data do atendimento",
			priority:    155,
			applies:     knownType,
			validate:    validateValidadeSenha,
		},
		&rule{
			id:          "data-nascimento",
			name:        "Data de nascimento",
			description: "A data de nascimento do beneficiário deve ser plausível",
			priority:    158,
			applies:     knownType,
			validate:    validateDataNascimento,
		},
	}
}

// validateDataFormato relies on the substring extraction policy: one call
// over "data" covers dataAtendimento, dataSolicitacao, dataEmissao and every
// other date-bearing field in a single pass.
func validateDataFormato(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "data") {
		if _, err := time.Parse(dateLayout, v); err != nil {
			findings = append(findings, validation.NewError("DATA001", "data",
				fmt.Sprintf("data %q fora do formato AAAA-MM-DD", v)).
				WithSuggestion("use o formato ISO AAAA-MM-DD"))
		}
	}
	return findings, nil
}

func validateDataAtendimentoFutura(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	for _, v := range guide.ExtractFieldValues(g.Root, "dataAtendimento") {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			continue // format is data-formato's finding
		}
		// Dates parse to midnight UTC; a date later than now is at least
		// tomorrow's date.
		if d.After(time.Now()) {
			findings = append(findings, validation.NewError("DATA002", "dataAtendimento",
				fmt.Sprintf("data de atendimento %q está no futuro", v)))
		}
	}
	return findings, nil
}

func validateSolicitacaoAutorizacao(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	sol := firstDate(g.Root, "dataSolicitacao")
	aut := firstDate(g.Root, "dataAutorizacao")
	if sol == nil || aut == nil {
		return nil, nil
	}
	if sol.After(*aut) {
		return []validation.Finding{
			validation.NewError("DATA003", "dataSolicitacao",
				"data de solicitação posterior à data de autorização"),
		}, nil
	}
	return nil, nil
}

func validateEmissaoAtendimento(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	emissao := firstDate(g.Root, "dataEmissao")
	atendimento := firstDate(g.Root, "dataAtendimento")
	if emissao == nil || atendimento == nil {
		return nil, nil
	}
	if emissao.After(*atendimento) {
		return []validation.Finding{
			validation.NewWarning("DATA004", "dataEmissao",
				"guia emitida após a data do atendimento"),
		}, nil
	}
	return nil, nil
}

func validateValidadeSenha(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	validade := firstDate(g.Root, "dataValidadeSenha")
	if validade == nil {
		return nil, nil
	}

	reference := firstDate(g.Root, "dataAtendimento")
	if reference == nil {
		now := time.Now().Truncate(24 * time.Hour)
		reference = &now
	}

	if validade.Before(*reference) {
		return []validation.Finding{
			validation.NewError("DATA005", "dataValidadeSenha",
				"senha de autorização vencida na data do atendimento").
				WithSuggestion("solicite nova autorização à operadora"),
		}, nil
	}
	return nil, nil
}

func validateDataNascimento(_ context.Context, g *guide.Context) ([]validation.Finding, error) {
	var findings []validation.Finding
	now := time.Now()
	for _, v := range guide.ExtractFieldValues(g.Root, "dataNascimento") {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			continue
		}
		switch {
		case d.After(now):
			findings = append(findings, validation.NewWarning("DATA006", "dataNascimento",
				fmt.Sprintf("data de nascimento %q está no futuro", v)))
		case now.Year()-d.Year() > maxPatientAge:
			findings = append(findings, validation.NewWarning("DATA006", "dataNascimento",
				fmt.Sprintf("data de nascimento %q implica idade acima de %d anos", v, maxPatientAge)))
		}
	}
	return findings, nil
}

// firstDate extracts and parses the first occurrence of a date field.
func firstDate(root guide.Node, field string) *time.Time {
	values := guide.ExtractFieldValues(root, field)
	if len(values) == 0 {
		return nil
	}
	d, err := time.Parse(dateLayout, values[0])
	if err != nil {
		return nil
	}
	return &d
}
