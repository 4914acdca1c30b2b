package guide

import "strings"

// GuiaType classifies a TISS document.
type GuiaType string

const (
	// TypeLote is a batch document bundling multiple individual guides.
	TypeLote GuiaType = "lote"

	// TypeConsulta is an outpatient consultation guide.
	TypeConsulta GuiaType = "consulta"

	// TypeSADT is a service/diagnostic (SP/SADT) guide.
	TypeSADT GuiaType = "sp-sadt"

	// TypeInternacao is a hospitalization summary guide.
	TypeInternacao GuiaType = "resumo-internacao"

	// TypeHonorarios is an individual professional fees guide.
	TypeHonorarios GuiaType = "honorarios"

	// TypeUnknown is the fallback when no marker is recognized.
	TypeUnknown GuiaType = "desconhecido"
)

// Known reports whether t is a recognized document type.
func (t GuiaType) Known() bool { return t != TypeUnknown && t != "" }

// typeMarkers are checked in order. Lote detection runs first: a batch
// document's raw text also contains the markers of the guides it bundles.
var typeMarkers = []struct {
	guiaType GuiaType
	markers  []string
}{
	{TypeLote, []string{"loteGuias", "envioLote", "guiasTISS"}},
	{TypeConsulta, []string{"guiaConsulta"}},
	{TypeSADT, []string{"guiaSP-SADT", "guiaSADT"}},
	{TypeInternacao, []string{"guiaResumoInternacao"}},
	{TypeHonorarios, []string{"guiaHonorarios"}},
}

// DetectGuiaType classifies a document by ordered substring sniffing on the
// raw XML text.
func DetectGuiaType(xmlContent string) GuiaType {
	for _, tm := range typeMarkers {
		for _, marker := range tm.markers {
			if strings.Contains(xmlContent, marker) {
				return tm.guiaType
			}
		}
	}
	return TypeUnknown
}
