package walk

import "testing"

func TestLimitStopsForwardingAfterN(t *testing.T) {
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)

	sink := &recordingStage{}
	stage := &Limit{Next: sink, N: 1}

	for _, child := range childrenOf(rootCtx) {
		if err := stage.Step(child); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if len(sink.paths) != 1 {
		t.Fatalf("forwarded %d files, want 1 with Limit=1", len(sink.paths))
	}
}

func TestLimitEnoughTripsAfterN(t *testing.T) {
	stage := &Limit{Next: &recordingStage{}, N: 2}
	if stage.Enough() {
		t.Fatal("Enough() should be false before any Step")
	}
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)
	children := childrenOf(rootCtx)
	for _, child := range children {
		_ = stage.Step(child)
	}
	if !stage.Enough() {
		t.Fatal("Enough() should be true once counter reaches N")
	}
}

func TestLimitZeroIsUnbounded(t *testing.T) {
	root := writeTree(t)
	rootCtx := NewRootContext(root, nil)

	sink := &recordingStage{}
	stage := &Limit{Next: sink, N: 0}

	for _, child := range childrenOf(rootCtx) {
		if err := stage.Step(child); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if len(sink.paths) != 2 {
		t.Fatalf("forwarded %d files, want 2 with Limit=0 (unbounded)", len(sink.paths))
	}
}
