package evaluator

import (
	"strings"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// listMethodNames lists every List method for `findit help`; dispatch
// itself lives in dispatchListMethod rather than a MethodRegistry because
// half these methods take an unevaluated lambda argument instead of plain
// Values, which method_registry.go's eager MethodFunc shape doesn't fit.
var listMethodNames = []string{
	"length", "reverse", "map", "filter", "sum", "max", "min", "avg", "sort",
	"sortBy", "distinct", "distinctBy", "take", "skip", "join", "first",
	"last", "contains", "indexOf", "flatMap", "all", "any", "groupBy",
	"enumerate",
}

// ListMethodNames exposes listMethodNames to pkg/findit/help.
func ListMethodNames() []string { return listMethodNames }

func dispatchListMethod(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	switch m.Name {
	case "length":
		return value.Number{N: uint64(len(l.Items))}, nil
	case "reverse":
		return listReverse(l), nil
	case "sum":
		return listSum(l), nil
	case "max":
		return listExtreme(l, false), nil
	case "min":
		return listExtreme(l, true), nil
	case "avg":
		return listAvg(l), nil
	case "sort":
		return listSort(l), nil
	case "distinct":
		return listDistinct(l), nil
	case "take":
		return listTake(l, m, env)
	case "skip":
		return listSkip(l, m, env)
	case "join":
		return listJoin(l, m, env)
	case "first":
		return listFirst(l), nil
	case "last":
		return listLast(l), nil
	case "contains":
		return listContains(l, m, env)
	case "indexof":
		return listIndexOf(l, m, env)
	case "enumerate":
		return listEnumerate(l), nil
	case "map":
		return listMap(l, m, env)
	case "filter":
		return listFilter(l, m, env)
	case "flatmap":
		return listFlatMap(l, m, env)
	case "all":
		return listAll(l, m, env)
	case "any":
		return listAny(l, m, env)
	case "sortby":
		return listSortBy(l, m, env)
	case "distinctby":
		return listDistinctBy(l, m, env)
	case "groupby":
		return listGroupBy(l, m, env)
	default:
		return value.EmptyValue, nil
	}
}

func listReverse(l value.List) value.Value {
	out := make([]value.Value, len(l.Items))
	for i, v := range l.Items {
		out[len(l.Items)-1-i] = v
	}
	return value.List{Items: out}
}

func listSum(l value.List) value.Value {
	var total uint64
	for _, v := range l.Items {
		n, ok := v.(value.Number)
		if !ok {
			return value.EmptyValue
		}
		total += n.N
	}
	return value.Number{N: total}
}

func listAvg(l value.List) value.Value {
	if len(l.Items) == 0 {
		return value.EmptyValue
	}
	sum := listSum(l)
	n, ok := sum.(value.Number)
	if !ok {
		return value.EmptyValue
	}
	return value.Number{N: n.N / uint64(len(l.Items))}
}

// listExtreme implements max/min: "by natural order; Empty if
// heterogeneous" (spec.md §4.5).
func listExtreme(l value.List, wantMin bool) value.Value {
	if len(l.Items) == 0 || !homogeneous(l.Items) {
		return value.EmptyValue
	}
	best := l.Items[0]
	for _, v := range l.Items[1:] {
		cmp, ok := value.Compare(v, best)
		if !ok {
			return value.EmptyValue
		}
		if (wantMin && cmp < 0) || (!wantMin && cmp > 0) {
			best = v
		}
	}
	return best
}

func homogeneous(items []value.Value) bool {
	if len(items) == 0 {
		return true
	}
	kind := items[0].Kind()
	for _, v := range items[1:] {
		if v.Kind() != kind {
			return false
		}
	}
	return true
}

// listSort implements `sort`: yields Empty on a heterogeneous or
// non-orderable list (spec.md §9 open question 3).
func listSort(l value.List) value.Value {
	if !homogeneous(l.Items) {
		return value.EmptyValue
	}
	if len(l.Items) >= 2 {
		if _, ok := value.Compare(l.Items[0], l.Items[1]); !ok {
			return value.EmptyValue
		}
	}
	out := append([]value.Value{}, l.Items...)
	value.SortValues(out, false)
	return value.List{Items: out}
}

func listDistinct(l value.List) value.Value {
	var out []value.Value
	for _, v := range l.Items {
		dup := false
		for _, seen := range out {
			if eq, ok := value.Equal(v, seen); ok && eq {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return value.List{Items: out}
}

func listTake(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalArgs(m.Args, env)
	if err != nil {
		return nil, err
	}
	n, ok := numberArg(args, 0)
	if !ok {
		return value.EmptyValue, nil
	}
	if n > uint64(len(l.Items)) {
		n = uint64(len(l.Items))
	}
	return value.List{Items: append([]value.Value{}, l.Items[:n]...)}, nil
}

func listSkip(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalArgs(m.Args, env)
	if err != nil {
		return nil, err
	}
	n, ok := numberArg(args, 0)
	if !ok {
		return value.EmptyValue, nil
	}
	if n > uint64(len(l.Items)) {
		n = uint64(len(l.Items))
	}
	return value.List{Items: append([]value.Value{}, l.Items[n:]...)}, nil
}

func listJoin(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalArgs(m.Args, env)
	if err != nil {
		return nil, err
	}
	sep := ","
	if len(args) > 0 {
		s, ok := stringArg(args, 0)
		if !ok {
			return value.EmptyValue, nil
		}
		sep = s
	}
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = value.AsString(v, dateFormatForDisplay)
	}
	return value.String{S: strings.Join(parts, sep)}, nil
}

func listFirst(l value.List) value.Value {
	if len(l.Items) == 0 {
		return value.EmptyValue
	}
	return l.Items[0]
}

func listLast(l value.List) value.Value {
	if len(l.Items) == 0 {
		return value.EmptyValue
	}
	return l.Items[len(l.Items)-1]
}

func listContains(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalArgs(m.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return value.EmptyValue, nil
	}
	for _, v := range l.Items {
		if eq, ok := value.Equal(v, args[0]); ok && eq {
			return value.Boolean{B: true}, nil
		}
	}
	return value.Boolean{B: false}, nil
}

func listIndexOf(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalArgs(m.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return value.EmptyValue, nil
	}
	for i, v := range l.Items {
		if eq, ok := value.Equal(v, args[0]); ok && eq {
			return value.Number{N: uint64(i)}, nil
		}
	}
	return value.EmptyValue, nil
}

func listEnumerate(l value.List) value.Value {
	out := make([]value.Value, len(l.Items))
	for i, v := range l.Items {
		out[i] = value.NewClass([]string{"index", "item"}, []value.Value{value.Number{N: uint64(i)}, v})
	}
	return value.List{Items: out}
}

func lambdaArg(args []ast.CallArg) (*ast.LambdaExpr, bool) {
	if len(args) == 0 {
		return nil, false
	}
	l, ok := args[0].Value.(*ast.LambdaExpr)
	return l, ok
}

func listMap(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	out := make([]value.Value, len(l.Items))
	for i, v := range l.Items {
		r, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return value.List{Items: out}, nil
}

func listFilter(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	var out []value.Value
	for _, v := range l.Items {
		r, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		if b, ok := r.(value.Boolean); ok && b.B {
			out = append(out, v)
		}
	}
	return value.List{Items: out}, nil
}

func listFlatMap(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	var out []value.Value
	for _, v := range l.Items {
		r, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		if inner, ok := r.(value.List); ok {
			out = append(out, inner.Items...)
		} else {
			out = append(out, r)
		}
	}
	return value.List{Items: out}, nil
}

func listAll(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	for _, v := range l.Items {
		r, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		if b, ok := r.(value.Boolean); !ok || !b.B {
			return value.Boolean{B: false}, nil
		}
	}
	return value.Boolean{B: true}, nil
}

func listAny(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	for _, v := range l.Items {
		r, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		if b, ok := r.(value.Boolean); ok && b.B {
			return value.Boolean{B: true}, nil
		}
	}
	return value.Boolean{B: false}, nil
}

func listSortBy(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	type keyed struct {
		key value.Value
		val value.Value
	}
	items := make([]keyed, len(l.Items))
	for i, v := range l.Items {
		k, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		items[i] = keyed{key: k, val: v}
	}
	for i := 1; i < len(items); i++ {
		if _, ok := value.Compare(items[0].key, items[i].key); !ok {
			return value.EmptyValue, nil
		}
	}
	// Stable insertion sort by key, preserving original order on ties.
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 {
			cmp, ok := value.Compare(items[j].key, items[j-1].key)
			if !ok || cmp >= 0 {
				break
			}
			items[j], items[j-1] = items[j-1], items[j]
			j--
		}
	}
	out := make([]value.Value, len(items))
	for i, it := range items {
		out[i] = it.val
	}
	return value.List{Items: out}, nil
}

func listDistinctBy(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	var out []value.Value
	var seenKeys []value.Value
	for _, v := range l.Items {
		k, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		dup := false
		for _, seen := range seenKeys {
			if eq, ok := value.Equal(k, seen); ok && eq {
				dup = true
				break
			}
		}
		if !dup {
			seenKeys = append(seenKeys, k)
			out = append(out, v)
		}
	}
	return value.List{Items: out}, nil
}

func listGroupBy(l value.List, m *ast.MethodCall, env *Environment) (value.Value, *errors.FindItError) {
	lambda, ok := lambdaArg(m.Args)
	if !ok {
		return value.EmptyValue, nil
	}
	var keys []value.Value
	groups := map[int][]value.Value{}
	for _, v := range l.Items {
		k, err := applyLambda(lambda, v, env)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i, existing := range keys {
			if eq, ok := value.Equal(k, existing); ok && eq {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = len(keys)
			keys = append(keys, k)
		}
		groups[idx] = append(groups[idx], v)
	}
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.NewClass([]string{"key", "values"}, []value.Value{k, value.List{Items: groups[i]}})
	}
	return value.List{Items: out}, nil
}
