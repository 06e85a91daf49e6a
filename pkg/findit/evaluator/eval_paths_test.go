package evaluator

import (
	"testing"

	"github.com/findit-cli/findit/pkg/findit/value"
)

func TestPathProperties(t *testing.T) {
	env := newTestEnv("line one\nline two\nline three")
	cases := []struct {
		src  string
		want string
	}{
		{"name", "/a/b/c.txt"},
		{"stem", "/a/b/c.txt"},
		{"extension", "txt"},
		{"exists", "true"},
		{"owner", "root"},
		{"group", "root"},
		{"lines.length", "3"},
		{"words.length", "6"},
		{"me.length", "10"}, // length of the path string itself ("/a/b/c.txt"), distinct from size
	}
	for _, c := range cases {
		got := evalOK(t, c.src, env)
		if got.String() != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got.String(), c.want)
		}
	}
}

func TestPathChildResolvesThroughContextChild(t *testing.T) {
	file := newFakeFile("/a/b/c.txt", "")
	file.files["sibling.txt"] = newFakeFile("/a/b/c.txt/sibling.txt", "sibling body")
	env := NewEnvironment(file)
	got := evalOK(t, `(me / "sibling.txt")`, env)
	p, ok := got.(value.Path)
	if !ok || p.P != "/a/b/c.txt/sibling.txt" {
		t.Fatalf("got %#v", got)
	}
}

func TestWalkMaterializesChildren(t *testing.T) {
	file := newFakeFile("/a", "")
	file.files["x.txt"] = newFakeFile("/a/x.txt", "")
	file.files["y.txt"] = newFakeFile("/a/y.txt", "")
	env := NewEnvironment(file)
	got := evalOK(t, "me.walk.length", env)
	n, ok := got.(value.Number)
	if !ok || n.N != 2 {
		t.Fatalf("got %#v, want Number{2}", got)
	}
}

func TestUnknownPathPropertyYieldsEmpty(t *testing.T) {
	env := newTestEnv("")
	got := evalOK(t, "me.nosuchproperty", env)
	if !value.IsEmpty(got) {
		t.Fatalf("got %#v, want Empty", got)
	}
}
