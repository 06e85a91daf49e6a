package walk

import (
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
)

// MinDepth drops files shallower than Min, grounded on
// original_source/src/min_depth.rs.
type MinDepth struct {
	Next Stage
	Min  uint64
}

func (m *MinDepth) Enough() bool { return m.Next.Enough() }

func (m *MinDepth) Step(file findit.FileContext) *errors.FindItError {
	if depthOf(file) >= m.Min {
		return m.Next.Step(file)
	}
	return nil
}
