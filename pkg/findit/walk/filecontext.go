// Package walk provides the concrete FileContext implementation and the
// composable Walk pipeline (Walker -> Filter -> MinDepth -> OrderBy ->
// Limit -> Output) that drives findit's CLI, grounded on
// original_source/src/{walker,filter,min_depth,order,limit,output}.rs
// (SPEC_FULL.md §3.1) and reimplemented as idiomatic Go.
package walk

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/findit-cli/findit/pkg/findit/evaluator"
	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// contentCache memoizes file content reads across AtPath lookups during a
// single walk, the way the Rust original's FileWrapper shares one read per
// path instead of re-reading on every property access.
type contentCache struct {
	mu    sync.Mutex
	items map[string]fileSnapshot
}

type fileSnapshot struct {
	content string
	hasBody bool
	read    bool
}

func newContentCache() *contentCache {
	return &contentCache{items: map[string]fileSnapshot{}}
}

func (c *contentCache) get(path string) fileSnapshot {
	c.mu.Lock()
	if snap, ok := c.items[path]; ok {
		c.mu.Unlock()
		return snap
	}
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	snap := fileSnapshot{read: true}
	if err == nil {
		snap.content = string(data)
		snap.hasBody = true
	}
	c.mu.Lock()
	c.items[path] = snap
	c.mu.Unlock()
	return snap
}

// osFileContext is findit's real FileContext: a path on disk plus its
// walk depth, sharing a contentCache and optional debug sink with every
// FileContext produced from the same walk.
type osFileContext struct {
	path  string
	depth uint64
	cache *contentCache
	sink  findit.Logger
}

// NewRootContext builds the FileContext for the root of a walk.
func NewRootContext(root string, sink findit.Logger) findit.FileContext {
	return &osFileContext{path: root, depth: 0, cache: newContentCache(), sink: sink}
}

func newChildContext(path string, depth uint64, cache *contentCache, sink findit.Logger) *osFileContext {
	return &osFileContext{path: path, depth: depth, cache: cache, sink: sink}
}

func (f *osFileContext) Path() string { return f.path }

func (f *osFileContext) stat() (os.FileInfo, bool) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, false
	}
	return info, true
}

func (f *osFileContext) Parent() (value.Value, bool) {
	dir := filepath.Dir(f.path)
	return value.Path{P: dir}, true
}

func (f *osFileContext) Name() (value.Value, bool) {
	return value.String{S: filepath.Base(f.path)}, true
}

func (f *osFileContext) Stem() (value.Value, bool) {
	base := filepath.Base(f.path)
	ext := filepath.Ext(base)
	return value.String{S: base[:len(base)-len(ext)]}, true
}

func (f *osFileContext) Extension() (value.Value, bool) {
	ext := filepath.Ext(f.path)
	if ext == "" {
		return value.EmptyValue, false
	}
	return value.String{S: ext[1:]}, true
}

func (f *osFileContext) Absolute() (value.Value, bool) {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return value.EmptyValue, false
	}
	return value.Path{P: abs}, true
}

func (f *osFileContext) Content() (value.Value, bool) {
	info, ok := f.stat()
	if !ok || info.IsDir() {
		return value.EmptyValue, false
	}
	snap := f.cache.get(f.path)
	if !snap.hasBody {
		return value.EmptyValue, false
	}
	return value.String{S: snap.content}, true
}

func (f *osFileContext) Depth() (value.Value, bool) { return value.Number{N: f.depth}, true }

func (f *osFileContext) Size() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Number{N: uint64(info.Size())}, true
}

func (f *osFileContext) Count() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	if !info.IsDir() {
		return value.Number{N: 1}, true
	}
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return value.EmptyValue, false
	}
	return value.Number{N: uint64(len(entries))}, true
}

func (f *osFileContext) Created() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Date{T: statTimes(info).created}, true
}

func (f *osFileContext) Modified() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Date{T: info.ModTime()}, true
}

func (f *osFileContext) Accessed() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Date{T: statTimes(info).accessed}, true
}

func (f *osFileContext) Exists() (value.Value, bool) {
	_, ok := f.stat()
	return value.Boolean{B: ok}, true
}

func (f *osFileContext) Owner() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.String{S: ownerName(info)}, true
}

func (f *osFileContext) Group() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.String{S: groupName(info)}, true
}

// Permission exposes the raw st_mode bits (not just the low 9
// permission bits), matching extract.rs's m.permissions().mode() and
// DESIGN.md's resolution of spec.md §229.4.
func (f *osFileContext) Permission() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return value.Number{N: uint64(info.Mode().Perm())}, true
	}
	return value.Number{N: uint64(sys.Mode)}, true
}

func (f *osFileContext) IsDir() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Boolean{B: info.IsDir()}, true
}

func (f *osFileContext) IsFile() (value.Value, bool) {
	info, ok := f.stat()
	if !ok {
		return value.EmptyValue, false
	}
	return value.Boolean{B: info.Mode().IsRegular()}, true
}

func (f *osFileContext) IsLink() (value.Value, bool) {
	info, err := os.Lstat(f.path)
	if err != nil {
		return value.EmptyValue, false
	}
	return value.Boolean{B: info.Mode()&os.ModeSymlink != 0}, true
}

func (f *osFileContext) Files() (value.Value, bool) {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return value.EmptyValue, false
	}
	items := make([]value.Value, 0, len(entries))
	for _, e := range entries {
		items = append(items, value.Path{P: filepath.Join(f.path, e.Name())})
	}
	return value.List{Items: items}, true
}

// immediateChildren lists f's direct children only, one level down,
// used by Walker's own recursive traversal (walker.go) so its
// depth-bounding and directory-stepping stay level-by-level. This is
// deliberately unexported and distinct from the public Walk(), which
// flattens an entire subtree for the `walk` expression-language method.
func (f *osFileContext) immediateChildren() []findit.FileContext {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil
	}
	out := make([]findit.FileContext, 0, len(entries))
	for _, e := range entries {
		out = append(out, newChildContext(filepath.Join(f.path, e.Name()), f.depth+1, f.cache, f.sink))
	}
	return out
}

// Walk descends the whole subtree rooted at f, yielding every regular
// file (never directories), grounded on original_source's
// evaluators/method_invocation/walk.rs Walker: a stack of open
// directories, pushing every subdirectory it meets and emitting only
// `path.is_file()` entries.
func (f *osFileContext) Walk() []findit.FileContext {
	type pending struct {
		path  string
		depth uint64
	}
	stack := []pending{{path: f.path, depth: f.depth}}
	var out []findit.FileContext

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(top.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			childPath := filepath.Join(top.path, e.Name())
			mode := e.Type()
			if mode&os.ModeSymlink != 0 {
				info, err := os.Stat(childPath)
				if err != nil {
					continue
				}
				mode = info.Mode()
			}
			switch {
			case mode.IsDir():
				stack = append(stack, pending{path: childPath, depth: top.depth + 1})
			case mode.IsRegular():
				out = append(out, newChildContext(childPath, top.depth+1, f.cache, f.sink))
			}
		}
	}
	return out
}

func (f *osFileContext) Child(name string) findit.FileContext {
	return newChildContext(filepath.Join(f.path, name), f.depth+1, f.cache, f.sink)
}

func (f *osFileContext) AtPath(path string) findit.FileContext {
	return newChildContext(path, f.depth, f.cache, f.sink)
}

func (f *osFileContext) DebugSink() evaluator.DebugSink {
	return findit.AsDebugSink(f.sink)
}

// fsTimes holds the created/accessed timestamps that os.FileInfo alone
// cannot portably report; statTimes fills them in from the raw syscall
// stat buffer, falling back to ModTime otherwise.
type fsTimes struct {
	created  time.Time
	accessed time.Time
}

func statTimes(info os.FileInfo) fsTimes {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fsTimes{created: info.ModTime(), accessed: info.ModTime()}
	}
	return fsTimes{
		created:  time.Unix(sys.Ctim.Sec, sys.Ctim.Nsec),
		accessed: time.Unix(sys.Atim.Sec, sys.Atim.Nsec),
	}
}
