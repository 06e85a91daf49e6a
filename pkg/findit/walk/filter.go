package walk

import (
	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
)

// Filter forwards a file only when a compiled --where expression
// evaluates truthy (requireBoolean semantics: Empty is false), grounded
// on original_source/src/filter.rs. Multiple -w/--where flags chain as
// nested Filters, so a file must satisfy all of them.
type Filter struct {
	Next Stage
	Expr ast.Expression
}

func (f *Filter) Enough() bool { return f.Next.Enough() }

func (f *Filter) Step(file findit.FileContext) *errors.FindItError {
	env := findit.NewEnvironment(file)
	ok, err := findit.RequireBoolean(f.Expr, env)
	if err != nil {
		return err
	}
	if ok {
		return f.Next.Step(file)
	}
	return nil
}

// ChainFilters compiles each --where expression and nests a Filter stage
// per expression around next, the way make_filters folds args.filter.
func ChainFilters(wheres []string, next Stage) (Stage, *errors.FindItError) {
	stage := next
	for _, src := range wheres {
		expr, err := findit.Compile(src)
		if err != nil {
			return nil, err
		}
		stage = &Filter{Next: stage, Expr: expr}
	}
	return stage, nil
}
