package walk

import (
	"os"

	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// Stage is a pipeline step in the Walk chain, grounded on the Rust
// original's `Walk` trait (`step`/`enough`): Step is called once per
// visited file and may itself fail (a compiled --where/--order-by
// expression raising a RuntimeError); Enough reports whether the stage
// (or anything downstream of it) has seen enough files to stop early.
type Stage interface {
	Step(file findit.FileContext) *errors.FindItError
	Enough() bool
}

// Walker performs the recursive pre-order (or post-order, when NodeFirst
// is set) directory traversal, bounded by MaxDepth, forwarding every
// visited FileContext to a Stage chain (original_source/src/walker.rs).
type Walker struct {
	Root      string
	NodeFirst bool
	MaxDepth  int // <=0 means unbounded
	Sink      findit.Logger
}

// Walk runs the traversal, stopping early once the stage chain reports
// Enough. A missing root is reported once up front rather than silently
// producing zero results.
func (w *Walker) Walk(stage Stage) *errors.FindItError {
	if _, err := os.Stat(w.Root); err != nil {
		return errors.RuntimeError(0, 0, "no such file or directory: %s", w.Root)
	}
	root := NewRootContext(w.Root, w.Sink)
	return w.walkContext(root, stage)
}

func (w *Walker) walkContext(file findit.FileContext, stage Stage) *errors.FindItError {
	if stage.Enough() {
		return nil
	}
	if !w.NodeFirst {
		if err := stage.Step(file); err != nil {
			return err
		}
	}

	if w.MaxDepth <= 0 || depthOf(file) < uint64(w.MaxDepth) {
		if isDirectory(file) {
			for _, child := range immediateChildrenOf(file) {
				if stage.Enough() {
					break
				}
				if err := w.walkContext(child, stage); err != nil {
					return err
				}
			}
		}
	}

	if w.NodeFirst {
		if err := stage.Step(file); err != nil {
			return err
		}
	}
	return nil
}

// immediateChildrenOf lists file's direct children one level down, the
// way Walker's own recursion wants them; this is deliberately not
// FileContext.Walk(), which (per the `walk` expression-language method's
// contract) flattens the entire subtree instead.
func immediateChildrenOf(file findit.FileContext) []findit.FileContext {
	oc, ok := file.(*osFileContext)
	if !ok {
		return nil
	}
	return oc.immediateChildren()
}

func depthOf(file findit.FileContext) uint64 {
	v, ok := file.Depth()
	if !ok {
		return 0
	}
	n, ok := v.(value.Number)
	if !ok {
		return 0
	}
	return n.N
}

func isDirectory(file findit.FileContext) bool {
	v, ok := file.IsDir()
	if !ok {
		return false
	}
	b, ok := v.(value.Boolean)
	return ok && b.B
}
