package schema

import (
	"fmt"
	"regexp"
	"strings"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// versionPattern matches TISS standard versions such as "3.05.00" or "4.01.00".
var versionPattern = regexp.MustCompile(`^\d+\.\d{2}\.\d{2}$`)

// Check runs the structural pre-check over a parsed document. Findings here
// are advisory: documents failing the pre-check still go through the full
// rule engine.
func Check(g *guide.Context) []validation.Finding {
	var findings []validation.Finding

	root, ok := g.Root.(guide.Mapping)
	if !ok || len(root) == 0 {
		return []validation.Finding{
			validation.NewWarning("SCH001", "", "documento sem elemento raiz"),
		}
	}

	if rootName := rootElement(root); !strings.Contains(strings.ToLower(rootName), "mensagemtiss") {
		findings = append(findings, validation.NewWarning("SCH001", rootName,
			fmt.Sprintf("elemento raiz %q não é um envelope mensagemTISS", rootName)).
			WithSuggestion("guias avulsas devem ser embrulhadas no envelope TISS"))
	}

	if !hasKey(g.Root, "cabecalho") {
		findings = append(findings, validation.NewWarning("SCH002", "cabecalho",
			"cabeçalho da mensagem ausente"))
	}

	for _, v := range guide.ExtractExactFieldValues(g.Root, "versaoPadrao") {
		if !versionPattern.MatchString(v) {
			findings = append(findings, validation.NewWarning("SCH003", "versaoPadrao",
				fmt.Sprintf("versão do padrão TISS %q fora do formato N.NN.NN", v)))
		}
	}

	return findings
}

// rootElement returns the single root key of a parsed document.
func rootElement(root guide.Mapping) string {
	for k := range root {
		return k
	}
	return ""
}

// hasKey reports whether any mapping in the tree carries a key containing
// the target (prefix-stripped, case-insensitive). Unlike field extraction it
// also finds keys whose values are container nodes.
func hasKey(node guide.Node, target string) bool {
	target = strings.ToLower(target)

	switch n := node.(type) {
	case guide.Mapping:
		for k, v := range n {
			key := k
			if i := strings.IndexByte(key, ':'); i >= 0 {
				key = key[i+1:]
			}
			if strings.Contains(strings.ToLower(key), target) {
				return true
			}
			if hasKey(v, target) {
				return true
			}
		}
	case guide.Sequence:
		for _, item := range n {
			if hasKey(item, target) {
				return true
			}
		}
	}
	return false
}
