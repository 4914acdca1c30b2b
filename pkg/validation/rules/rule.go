package rules

import (
	"context"

	"vitalis-hq/glosaguard/pkg/guide"
	"vitalis-hq/glosaguard/pkg/validation"
)

// rule is the concrete shape of every built-in rule: plain data plus two
// functions. Keeping rules as values makes the catalog easy to scan and
// keeps each check a small, independent predicate.
type rule struct {
	id          string
	name        string
	description string
	priority    int
	applies     func(*guide.Context) bool
	validate    func(context.Context, *guide.Context) ([]validation.Finding, error)
}

func (r *rule) ID() string          { return r.id }
func (r *rule) Name() string        { return r.name }
func (r *rule) Description() string { return r.description }
func (r *rule) Priority() int       { return r.priority }

func (r *rule) AppliesTo(g *guide.Context) bool {
	if r.applies == nil {
		return true
	}
	return r.applies(g)
}

func (r *rule) Validate(ctx context.Context, g *guide.Context) ([]validation.Finding, error) {
	return r.validate(ctx, g)
}

// anyDocument applies regardless of classification.
func anyDocument(*guide.Context) bool { return true }

// knownType applies only to recognized document types.
func knownType(g *guide.Context) bool { return g.GuiaType.Known() }

// typeIs applies to the listed document types.
func typeIs(types ...guide.GuiaType) func(*guide.Context) bool {
	return func(g *guide.Context) bool {
		for _, t := range types {
			if g.GuiaType == t {
				return true
			}
		}
		return false
	}
}
