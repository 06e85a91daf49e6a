package walk

import (
	"io"

	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
)

// Options configures the stage chain Build assembles, mirroring the CLI
// flag surface of SPEC_FULL.md §3.2.
type Options struct {
	Root               string
	Where              []string
	MinDepth           uint64
	MaxDepth           int
	NodeFirst          bool
	OrderBy            []OrderItem
	Limit              uint64
	Display            string
	Execute            string
	InterpolationStart string
	InterpolationEnd   string
	Writer             io.Writer
	ExecStdout         io.Writer
	ExecStderr         io.Writer
	Sink               findit.Logger
}

// Pipeline is the assembled chain plus whatever buffering stage (OrderBy)
// needs an explicit flush once the walk finishes.
type Pipeline struct {
	Walker *Walker
	Entry  Stage
	order  *OrderBy
}

// Run walks Root through the chain and, if an OrderBy stage buffered
// anything, flushes it at the end.
func (p *Pipeline) Run() *errors.FindItError {
	if err := p.Walker.Walk(p.Entry); err != nil {
		return err
	}
	if p.order != nil {
		return p.order.Flush()
	}
	return nil
}

// Build assembles Walker -> Filter(s) -> MinDepth -> OrderBy -> Limit ->
// Output, per SPEC_FULL.md §3.1's stage list.
func Build(opts Options) (*Pipeline, *errors.FindItError) {
	var entry Stage = &Output{
		Writer:             opts.Writer,
		Display:            opts.Display,
		Execute:            opts.Execute,
		ExecStdout:         opts.ExecStdout,
		ExecStderr:         opts.ExecStderr,
		InterpolationStart: opts.InterpolationStart,
		InterpolationEnd:   opts.InterpolationEnd,
	}
	entry = &Limit{Next: entry, N: opts.Limit}

	var order *OrderBy
	if len(opts.OrderBy) > 0 {
		order = &OrderBy{Next: entry, Order: opts.OrderBy}
		entry = order
	}

	if opts.MinDepth > 0 {
		entry = &MinDepth{Next: entry, Min: opts.MinDepth}
	}

	entry, err := ChainFilters(opts.Where, entry)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Walker: &Walker{Root: opts.Root, NodeFirst: opts.NodeFirst, MaxDepth: opts.MaxDepth, Sink: opts.Sink},
		Entry:  entry,
		order:  order,
	}, nil
}
