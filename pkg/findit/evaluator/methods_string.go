package evaluator

import (
	"strings"

	"github.com/findit-cli/findit/pkg/findit/value"
)

func init() {
	RegisterMethodRegistry("STRING", stringMethods)
}

// stringMethods implements spec.md §4.5's String methods via
// method_registry.go's shared dispatch. Every argument is already an
// evaluated Value by the time it reaches one of these (String methods
// take no lambda arguments, unlike List's higher-order methods).
var stringMethods = MethodRegistry{
	"length":       {Fn: strLength, Arity: "0"},
	"toupper":      {Fn: strToUpper, Arity: "0"},
	"tolower":      {Fn: strToLower, Arity: "0"},
	"trim":         {Fn: strTrim, Arity: "0"},
	"trimhead":     {Fn: strTrimHead, Arity: "0"},
	"trimtail":     {Fn: strTrimTail, Arity: "0"},
	"reverse":      {Fn: strReverse, Arity: "0"},
	"take":         {Fn: strTake, Arity: "1"},
	"skip":         {Fn: strSkip, Arity: "1"},
	"split":        {Fn: strSplit, Arity: "0-1"},
	"lines":        {Fn: strLines, Arity: "0"},
	"words":        {Fn: strWords, Arity: "0"},
	"contains":     {Fn: strContains, Arity: "1"},
	"indexof":      {Fn: strIndexOf, Arity: "1"},
	"hasprefix":    {Fn: strHasPrefix, Arity: "1"},
	"hassuffix":    {Fn: strHasSuffix, Arity: "1"},
	"removeprefix": {Fn: strRemovePrefix, Arity: "1"},
	"removesuffix": {Fn: strRemoveSuffix, Arity: "1"},
}

func asString(receiver value.Value) (string, bool) {
	s, ok := receiver.(value.String)
	if !ok {
		return "", false
	}
	return s.S, true
}

func stringArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(value.String)
	if !ok {
		return "", false
	}
	return s.S, true
}

func numberArg(args []value.Value, i int) (uint64, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := args[i].(value.Number)
	if !ok {
		return 0, false
	}
	return n.N, true
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func stringList(items []string) value.Value {
	out := make([]value.Value, len(items))
	for i, s := range items {
		out[i] = value.String{S: s}
	}
	return value.List{Items: out}
}

func strLength(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.Number{N: uint64(len([]rune(s)))}
}

func strToUpper(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.ToUpper(s)}
}

func strToLower(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.ToLower(s)}
}

func strTrim(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.TrimSpace(s)}
}

func strTrimHead(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.TrimLeft(s, " \t\n\r")}
}

func strTrimTail(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.TrimRight(s, " \t\n\r")}
}

func strReverse(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return value.String{S: string(runes)}
}

func strTake(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	n, ok := numberArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	runes := []rune(s)
	if n > uint64(len(runes)) {
		n = uint64(len(runes))
	}
	return value.String{S: string(runes[:n])}
}

func strSkip(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	n, ok := numberArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	runes := []rune(s)
	if n > uint64(len(runes)) {
		n = uint64(len(runes))
	}
	return value.String{S: string(runes[n:])}
}

func strSplit(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	sep := ","
	if len(args) > 0 {
		sepArg, ok := stringArg(args, 0)
		if !ok {
			return value.EmptyValue
		}
		sep = sepArg
	}
	return stringList(strings.Split(s, sep))
}

func strLines(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return stringList(splitLines(s))
}

func strWords(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	return stringList(strings.Fields(s))
}

func strContains(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	sub, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	return value.Boolean{B: strings.Contains(s, sub)}
}

func strIndexOf(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	sub, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	idx := strings.Index(s, sub)
	if idx < 0 {
		return value.EmptyValue
	}
	return value.Number{N: uint64(len([]rune(s[:idx])))}
}

func strHasPrefix(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	p, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	return value.Boolean{B: strings.HasPrefix(s, p)}
}

func strHasSuffix(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	p, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	return value.Boolean{B: strings.HasSuffix(s, p)}
}

func strRemovePrefix(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	p, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.TrimPrefix(s, p)}
}

func strRemoveSuffix(receiver value.Value, args []value.Value, env *Environment) value.Value {
	s, ok := asString(receiver)
	if !ok {
		return value.EmptyValue
	}
	p, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue
	}
	return value.String{S: strings.TrimSuffix(s, p)}
}
