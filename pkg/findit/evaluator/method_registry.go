package evaluator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/findit-cli/findit/pkg/findit/value"
)

// MethodFunc is the signature for registry-dispatched methods (the string
// methods), whose arguments are plain Values. Path/file properties and
// methods are dispatched by dispatchPathMethod's own switch instead.
// List's higher-order methods (map/filter/sortBy/...) take an unevaluated
// lambda instead and are dispatched directly in eval_collections.go rather
// than through a MethodRegistry.
type MethodFunc func(receiver value.Value, args []value.Value, env *Environment) value.Value

// MethodEntry is one registry slot: the implementation plus its declared
// arity ("0", "1", "0-1", "1+", ...), used to decide unknown-arity calls.
type MethodEntry struct {
	Fn    MethodFunc
	Arity string
}

// MethodRegistry maps canonical (lowercase, no separators) method names to
// their entries for one receiver Kind.
type MethodRegistry map[string]MethodEntry

// Names returns the registry's method names, sorted, for `findit help`.
func (r MethodRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r MethodRegistry) Get(name string) (MethodEntry, bool) {
	entry, ok := r[name]
	return entry, ok
}

// typeRegistries is the master table used by `findit help` introspection.
var typeRegistries = map[string]MethodRegistry{}

// RegisterMethodRegistry registers a Kind's method table; called from
// each dispatcher file's init().
func RegisterMethodRegistry(typeName string, registry MethodRegistry) {
	typeRegistries[typeName] = registry
}

// GetRegistryForType returns the registry for a type name, or nil.
func GetRegistryForType(typeName string) MethodRegistry { return typeRegistries[typeName] }

// checkArity validates an argument count against a spec string: exact
// ("1"), range ("0-1"), or minimum ("1+").
func checkArity(spec string, got int) bool {
	spec = strings.TrimSpace(spec)
	if exact, err := strconv.Atoi(spec); err == nil {
		return got == exact
	}
	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) == 2 {
			minVal, errMin := strconv.Atoi(parts[0])
			maxVal, errMax := strconv.Atoi(parts[1])
			if errMin == nil && errMax == nil {
				return got >= minVal && got <= maxVal
			}
		}
	}
	if suffix, found := strings.CutSuffix(spec, "+"); found {
		minVal, err := strconv.Atoi(suffix)
		if err == nil {
			return got >= minVal
		}
	}
	return true
}

// dispatchFromRegistry looks up and calls method against registry. A wrong
// arity or an unknown method both yield Empty (per spec.md §9: "arity
// mismatches and unknown methods yield Empty" for runtime dispatch,
// reserving RuntimeError strictly for lambda-arity mismatches).
func dispatchFromRegistry(registry MethodRegistry, receiver value.Value, method string, args []value.Value, env *Environment) (value.Value, bool) {
	entry, ok := registry.Get(method)
	if !ok {
		return value.EmptyValue, false
	}
	if !checkArity(entry.Arity, len(args)) {
		return value.EmptyValue, true
	}
	return entry.Fn(receiver, args, env), true
}
