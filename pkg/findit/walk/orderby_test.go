package walk

import (
	"path/filepath"
	"testing"

	"github.com/findit-cli/findit/pkg/findit/findit"
)

func compileOrderExpr(t *testing.T, source string) OrderItem {
	t.Helper()
	expr, perr := findit.Compile(source)
	if perr != nil {
		t.Fatalf("Compile(%q) error: %v", source, perr)
	}
	return OrderItem{Expr: expr}
}

func TestOrderByFlushSortsAscendingByDefault(t *testing.T) {
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)

	sink := &recordingStage{}
	order := &OrderBy{Next: sink, Order: []OrderItem{compileOrderExpr(t, "name")}}

	for _, child := range childrenOf(rootCtx) {
		if err := order.Step(child); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if err := order.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if len(sink.paths) != 2 {
		t.Fatalf("forwarded %d paths, want 2", len(sink.paths))
	}
	if filepath.Base(sink.paths[0]) != "a.txt" || filepath.Base(sink.paths[1]) != "sub" {
		t.Fatalf("order = %v, want [a.txt, sub]", sink.paths)
	}
}

func TestOrderByFlushSortsDescending(t *testing.T) {
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)

	sink := &recordingStage{}
	item := compileOrderExpr(t, "name")
	item.Direction = Desc
	order := &OrderBy{Next: sink, Order: []OrderItem{item}}

	for _, child := range childrenOf(rootCtx) {
		if err := order.Step(child); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if err := order.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if filepath.Base(sink.paths[0]) != "sub" || filepath.Base(sink.paths[1]) != "a.txt" {
		t.Fatalf("order = %v, want [sub, a.txt]", sink.paths)
	}
}

func TestOrderByFlushRespectsDownstreamEnough(t *testing.T) {
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)

	sink := &Limit{Next: &recordingStage{}, N: 1}
	order := &OrderBy{Next: sink, Order: []OrderItem{compileOrderExpr(t, "name")}}

	for _, child := range childrenOf(rootCtx) {
		if err := order.Step(child); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if err := order.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	forwarded := sink.Next.(*recordingStage)
	if len(forwarded.paths) != 1 {
		t.Fatalf("forwarded %d paths, want 1 once the downstream Limit is satisfied", len(forwarded.paths))
	}
}

func TestOrderByEnoughIsAlwaysFalseUntilFlush(t *testing.T) {
	order := &OrderBy{Next: &recordingStage{cap: 0}}
	if order.Enough() {
		t.Fatal("OrderBy.Enough() must stay false so the walk buffers every candidate before sorting")
	}
}

func TestParseOrderByDefaultsToAscending(t *testing.T) {
	items, err := ParseOrderBy("name")
	if err != nil {
		t.Fatalf("ParseOrderBy() error: %v", err)
	}
	if len(items) != 1 || items[0].Direction != Asc {
		t.Fatalf("items = %+v, want one ascending key", items)
	}
}

func TestParseOrderByMultipleKeysWithDirections(t *testing.T) {
	items, err := ParseOrderBy(`size DESC, name.hassuffix("txt") ASC`)
	if err != nil {
		t.Fatalf("ParseOrderBy() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Direction != Desc {
		t.Errorf("items[0].Direction = %v, want Desc", items[0].Direction)
	}
	if items[1].Direction != Asc {
		t.Errorf("items[1].Direction = %v, want Asc", items[1].Direction)
	}
}

func TestParseOrderByPropagatesCompileError(t *testing.T) {
	if _, err := ParseOrderBy("name.hassuffix("); err == nil {
		t.Fatal("expected a compile error for an unclosed call")
	}
}
