// Package config provides configuration loading and validation for
// GlosaGuard.
//
// Configuration is loaded from a YAML file, defaults are applied to any
// zero-valued fields, environment variables (GLOSAGUARD_SECTION_FIELD) are
// layered on top, and the final result is validated. All validation errors
// are collected and reported together rather than failing on the first one.
package config
