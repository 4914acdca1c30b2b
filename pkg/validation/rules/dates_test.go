package rules

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vitalis-hq/glosaguard/pkg/validation"
)

func TestValidateDataFormato(t *testing.T) {
	g := newGuide(t, `<guiaConsulta>
		<dataAtendimento>2026-01-15</dataAtendimento>
		<dataEmissao>2026-01-10</dataEmissao>
	</guiaConsulta>`)
	findings, err := validateDataFormato(context.Background(), g)
	assertNoFindings(t, findings, err)

	g = newGuide(t, `<guiaConsulta><dataAtendimento>15/01/2026</dataAtendimento></guiaConsulta>`)
	findings, err = validateDataFormato(context.Background(), g)
	assertSingleFinding(t, findings, err, "DATA001", validation.SeverityError)
}

func TestValidateDataAtendimentoFutura(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format(dateLayout)
	g := newGuide(t, fmt.Sprintf(
		`<guiaConsulta><dataAtendimento>%s</dataAtendimento></guiaConsulta>`, future))
	findings, err := validateDataAtendimentoFutura(context.Background(), g)
	assertSingleFinding(t, findings, err, "DATA002", validation.SeverityError)

	past := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	g = newGuide(t, fmt.Sprintf(
		`<guiaConsulta><dataAtendimento>%s</dataAtendimento></guiaConsulta>`, past))
	findings, err = validateDataAtendimentoFutura(context.Background(), g)
	assertNoFindings(t, findings, err)
}

func TestValidateDataAtendimentoFuturaIgnoresBadFormat(t *testing.T) {
	// Format problems belong to data-formato, not to the future check.
	g := newGuide(t, `<guiaConsulta><dataAtendimento>31/12/2999</dataAtendimento></guiaConsulta>`)
	findings, err := validateDataAtendimentoFutura(context.Background(), g)
	assertNoFindings(t, findings, err)
}

func TestValidateSolicitacaoAutorizacao(t *testing.T) {
	g := newGuide(t, `<guiaSP-SADT>
		<dataSolicitacao>2026-01-10</dataSolicitacao>
		<dataAutorizacao>2026-01-05</dataAutorizacao>
	</guiaSP-SADT>`)
	findings, err := validateSolicitacaoAutorizacao(context.Background(), g)
	assertSingleFinding(t, findings, err, "DATA003", validation.SeverityError)

	g = newGuide(t, `<guiaSP-SADT>
		<dataSolicitacao>2026-01-05</dataSolicitacao>
		<dataAutorizacao>2026-01-10</dataAutorizacao>
	</guiaSP-SADT>`)
	findings, err = validateSolicitacaoAutorizacao(context.Background(), g)
	assertNoFindings(t, findings, err)

	// Either side missing means no comparison.
	g = newGuide(t, `<guiaSP-SADT><dataSolicitacao>2026-01-10</dataSolicitacao></guiaSP-SADT>`)
	findings, err = validateSolicitacaoAutorizacao(context.Background(), g)
	assertNoFindings(t, findings, err)
}

func TestValidateEmissaoAtendimento(t *testing.T) {
	g := newGuide(t, `<guiaConsulta>
		<dataEmissao>2026-02-01</dataEmissao>
		<dataAtendimento>2026-01-15</dataAtendimento>
	</guiaConsulta>`)
	findings, err := validateEmissaoAtendimento(context.Background(), g)
	assertSingleFinding(t, findings, err, "DATA004", validation.SeverityWarning)

	g = newGuide(t, `<guiaConsulta>
		<dataEmissao>2026-01-10</dataEmissao>
		<dataAtendimento>2026-01-15</dataAtendimento>
	</guiaConsulta>`)
	findings, err = validateEmissaoAtendimento(context.Background(), g)
	assertNoFindings(t, findings, err)
}

func TestValidateValidadeSenha(t *testing.T) {
	g := newGuide(t, `<guiaSP-SADT>
		<dataValidadeSenha>2026-01-01</dataValidadeSenha>
		<dataAtendimento>2026-02-01</dataAtendimento>
	</guiaSP-SADT>`)
	findings, err := validateValidadeSenha(context.Background(), g)
	assertSingleFinding(t, findings, err, "DATA005", validation.SeverityError)

	g = newGuide(t, `<guiaSP-SADT>
		<dataValidadeSenha>2026-03-01</dataValidadeSenha>
		<dataAtendimento>2026-02-01</dataAtendimento>
	</guiaSP-SADT>`)
	findings, err = validateValidadeSenha(context.Background(), g)
	assertNoFindings(t, findings, err)

	// No senha at all is fine: not every attendance is authorized.
	g = newGuide(t, `<guiaSP-SADT><dataAtendimento>2026-02-01</dataAtendimento></guiaSP-SADT>`)
	findings, err = validateValidadeSenha(context.Background(), g)
	assertNoFindings(t, findings, err)
}

func TestValidateDataNascimento(t *testing.T) {
	tests := []struct {
		name  string
		value string
		warn  bool
	}{
		{"plausible", "1980-05-20", false},
		{"future", time.Now().AddDate(1, 0, 0).Format(dateLayout), true},
		{"implausibly old", "1850-01-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuide(t, fmt.Sprintf(
				`<guiaConsulta><dataNascimento>%s</dataNascimento></guiaConsulta>`, tt.value))
			findings, err := validateDataNascimento(context.Background(), g)
			if tt.warn {
				assertSingleFinding(t, findings, err, "DATA006", validation.SeverityWarning)
				return
			}
			assertNoFindings(t, findings, err)
		})
	}
}
