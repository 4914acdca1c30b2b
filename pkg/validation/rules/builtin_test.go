package rules

import (
	"context"
	"testing"

	"vitalis-hq/glosaguard/pkg/validation"
)

func TestRegisterBuiltinCatalog(t *testing.T) {
	reg := validation.NewRegistry(nil)
	RegisterBuiltin(reg, Deps{})

	stats := reg.Stats()
	if stats.Total != 35 {
		t.Errorf("Stats().Total = %d, want the full 35-rule catalog", stats.Total)
	}
	if stats.Disabled != 0 {
		t.Errorf("Stats().Disabled = %d, want 0", stats.Disabled)
	}

	for _, id := range []string{
		"documento-vazio", "cpf-valido", "data-formato",
		"tuss-procedimento-existe", "duplicidade-numero-guia",
		"carater-atendimento", "valor-total",
	} {
		if _, ok := reg.Rule(id); !ok {
			t.Errorf("Rule(%q) missing from the catalog", id)
		}
	}
}

func TestNewEngineRegistriesAreIndependent(t *testing.T) {
	a := NewEngine(Deps{})
	b := NewEngine(Deps{})

	a.SetRuleEnabled("cpf-valido", false)

	if a.Registry().Enabled("cpf-valido") {
		t.Error("rule should be disabled on engine a")
	}
	if !b.Registry().Enabled("cpf-valido") {
		t.Error("disabling on one engine leaked into another")
	}
}

func TestEngineCleanGuidePasses(t *testing.T) {
	e := NewEngine(Deps{})
	g := newGuide(t, `<ans:guiaConsulta xmlns:ans="http://www.ans.gov.br/padroes/tiss/schemas">
		<ans:registroANS>123456</ans:registroANS>
		<ans:numeroGuia>20260001</ans:numeroGuia>
		<ans:codigoPrestadorNaOperadora>4455</ans:codigoPrestadorNaOperadora>
		<ans:numeroCarteira>889900112233</ans:numeroCarteira>
		<ans:indicacaoAcidente>9</ans:indicacaoAcidente>
		<ans:dataAtendimento>2026-01-15</ans:dataAtendimento>
		<ans:cpf>52998224725</ans:cpf>
	</ans:guiaConsulta>`)

	result := e.Execute(context.Background(), g, validation.Options{})
	if !result.Valid() {
		t.Errorf("clean guide rejected: %v", findingCodes(result.Errors))
	}
}

func TestEngineInvalidCPFRejectsGuide(t *testing.T) {
	e := NewEngine(Deps{})
	g := newGuide(t, `<ans:guiaConsulta>
		<ans:registroANS>123456</ans:registroANS>
		<ans:numeroGuia>20260001</ans:numeroGuia>
		<ans:cpf>12345678901</ans:cpf>
	</ans:guiaConsulta>`)

	result := e.Execute(context.Background(), g, validation.Options{})
	if result.Valid() {
		t.Fatal("guide with an invalid CPF should be rejected")
	}
	codes := findingCodes(result.Errors)
	if len(codes) != 1 || codes[0] != "DOC001" {
		t.Errorf("error codes = %v, want [DOC001]", codes)
	}
}

func TestEngineLoteDuplicatesRejectBatch(t *testing.T) {
	e := NewEngine(Deps{})
	g := newGuide(t, `<ans:loteGuias>
		<ans:numeroLote>7</ans:numeroLote>
		<ans:guiaConsulta><ans:numeroGuia>111</ans:numeroGuia></ans:guiaConsulta>
		<ans:guiaConsulta><ans:numeroGuia>111</ans:numeroGuia></ans:guiaConsulta>
	</ans:loteGuias>`)

	result := e.Execute(context.Background(), g, validation.Options{})
	if result.Valid() {
		t.Fatal("batch with duplicated guide numbers should be rejected")
	}
	found := false
	for _, f := range result.Errors {
		if f.Code == "DUPL001" {
			found = true
		}
	}
	if !found {
		t.Errorf("error codes = %v, want DUPL001 present", findingCodes(result.Errors))
	}
}
