package walk

import (
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
)

// Limit stops the walk once N files have been forwarded, grounded on
// original_source/src/limit.rs.
type Limit struct {
	Next    Stage
	N       uint64
	counter uint64
}

func (l *Limit) Enough() bool {
	if l.N == 0 {
		return l.Next.Enough()
	}
	return l.counter >= l.N || l.Next.Enough()
}

func (l *Limit) Step(file findit.FileContext) *errors.FindItError {
	if l.N != 0 && l.counter >= l.N {
		return nil
	}
	l.counter++
	return l.Next.Step(file)
}
