// GlosaGuard validates TISS healthcare claim guides before submission,
// predicting the glosas (claim rejections) an operadora would raise.
//
// Usage:
//
//	# Validate one or more guide XML files
//	glosaguard check guia.xml lote.xml
//
//	# Machine-readable output for pipelines
//	glosaguard check --format json guia.xml
//
//	# Run only specific rules
//	glosaguard check --rules cpf-valido,duplicidade-numero-guia guia.xml
//
//	# List the registered rules
//	glosaguard rules
//
//	# Show version information
//	glosaguard version
package main

func main() {
	Execute()
}
