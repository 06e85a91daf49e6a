package evaluator

import (
	"bytes"
	"math/rand"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/lexer"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// freeFunc is a free (receiverless) function's implementation; see
// ast.CallExpr's doc comment for the free-function-first resolution rule.
type freeFunc func(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError)

// freeFunctions is keyed by the lexer's canonicalized identifier form
// (lowercase, separators stripped), matching how `execOut`/`exec_out`
// would both lex to "execout".
var freeFunctions map[string]freeFunc

func init() {
	freeFunctions = map[string]freeFunc{
		"now":      biNow,
		"rand":     biRand,
		"env":      biEnv,
		"coalesce": biCoalesce,
		"replace":  biReplace,
		"format":   biFormat,
		"parse":    biParse,
		"execout":  biExecOut,
		"execute":  biExecute,
		"spawn":    biSpawn,
	}
}

// FreeFunctionNames returns every free function's canonical name, sorted,
// for `findit help`.
func FreeFunctionNames() []string {
	names := make([]string, 0, len(freeFunctions))
	for name := range freeFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var randSource = rand.New(rand.NewSource(time.Now().UnixNano()))

func biNow(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	return value.Date{T: time.Now()}, nil
}

func biRand(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	return value.Number{N: randSource.Uint64()}, nil
}

func biEnv(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalPositional(c.Args, env)
	if err != nil {
		return nil, err
	}
	name, ok := stringArg(args, 0)
	if !ok {
		return value.EmptyValue, nil
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return value.EmptyValue, nil
	}
	return value.String{S: v}, nil
}

// biCoalesce evaluates its arguments left-to-right, stopping at the first
// non-Empty result (spec.md §4.4, §8 testable property 8).
func biCoalesce(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	for _, a := range c.Args {
		v, err := Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		if !value.IsEmpty(v) {
			return v, nil
		}
	}
	return value.EmptyValue, nil
}

// biReplace implements `replace(src FROM a TO b)` (literal) and
// `replace(src PATTERN r TO t)` (regex, backrefs $1..$9 — Go's regexp
// already understands that syntax natively).
func biReplace(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	var srcExpr, fromExpr, toExpr, patternExpr ast.Expression
	for _, a := range c.Args {
		switch a.Keyword {
		case lexer.ILLEGAL:
			if srcExpr == nil {
				srcExpr = a.Value
			}
		case lexer.FROM:
			fromExpr = a.Value
		case lexer.TO:
			toExpr = a.Value
		case lexer.PATTERN:
			patternExpr = a.Value
		}
	}
	if srcExpr == nil || toExpr == nil {
		return value.EmptyValue, nil
	}
	srcVal, err := Eval(srcExpr, env)
	if err != nil {
		return nil, err
	}
	src, ok := srcVal.(value.String)
	if !ok {
		return value.EmptyValue, nil
	}
	toVal, err := Eval(toExpr, env)
	if err != nil {
		return nil, err
	}
	toStr := value.AsString(toVal, dateFormatForDisplay)

	if patternExpr != nil {
		patVal, err := Eval(patternExpr, env)
		if err != nil {
			return nil, err
		}
		pat, ok := patVal.(value.String)
		if !ok {
			return value.EmptyValue, nil
		}
		re := getCachedRegex(pat.S)
		if re == nil {
			return value.EmptyValue, nil
		}
		return value.String{S: re.ReplaceAllString(src.S, toStr)}, nil
	}
	if fromExpr != nil {
		fromVal, err := Eval(fromExpr, env)
		if err != nil {
			return nil, err
		}
		from, ok := fromVal.(value.String)
		if !ok {
			return value.EmptyValue, nil
		}
		return value.String{S: replaceAllLiteral(src.S, from.S, toStr)}, nil
	}
	return value.EmptyValue, nil
}

func replaceAllLiteral(src, from, to string) string {
	if from == "" {
		return src
	}
	out := ""
	for {
		idx := indexOfSubstring(src, from)
		if idx < 0 {
			out += src
			break
		}
		out += src[:idx] + to
		src = src[idx+len(from):]
	}
	return out
}

func indexOfSubstring(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// biFormat implements `format(date AS fmt)`.
func biFormat(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	var dateExpr, fmtExpr ast.Expression
	for _, a := range c.Args {
		switch a.Keyword {
		case lexer.ILLEGAL:
			if dateExpr == nil {
				dateExpr = a.Value
			}
		case lexer.AS:
			fmtExpr = a.Value
		}
	}
	if dateExpr == nil || fmtExpr == nil {
		return value.EmptyValue, nil
	}
	dateVal, err := Eval(dateExpr, env)
	if err != nil {
		return nil, err
	}
	d, ok := dateVal.(value.Date)
	if !ok {
		return value.EmptyValue, nil
	}
	fmtVal, err := Eval(fmtExpr, env)
	if err != nil {
		return nil, err
	}
	pattern, ok := fmtVal.(value.String)
	if !ok {
		return value.EmptyValue, nil
	}
	return value.String{S: formatDateWithPattern(d.T, pattern.S)}, nil
}

// biParse implements `parse(str FROM fmt)`.
func biParse(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	var strExpr, fmtExpr ast.Expression
	for _, a := range c.Args {
		switch a.Keyword {
		case lexer.ILLEGAL:
			if strExpr == nil {
				strExpr = a.Value
			}
		case lexer.FROM:
			fmtExpr = a.Value
		}
	}
	if strExpr == nil || fmtExpr == nil {
		return value.EmptyValue, nil
	}
	strVal, err := Eval(strExpr, env)
	if err != nil {
		return nil, err
	}
	s, ok := strVal.(value.String)
	if !ok {
		return value.EmptyValue, nil
	}
	fmtVal, err := Eval(fmtExpr, env)
	if err != nil {
		return nil, err
	}
	pattern, ok := fmtVal.(value.String)
	if !ok {
		return value.EmptyValue, nil
	}
	t, ok := parseDateWithPattern(s.S, pattern.S)
	if !ok {
		return value.EmptyValue, nil
	}
	return value.Date{T: t}, nil
}

func evalPositional(args []ast.CallArg, env *Environment) ([]value.Value, *errors.FindItError) {
	var out []value.Value
	for _, a := range args {
		if a.Keyword != lexer.ILLEGAL {
			continue
		}
		v, err := Eval(a.Value, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func evalInto(args []ast.CallArg, env *Environment) (string, bool, *errors.FindItError) {
	for _, a := range args {
		if a.Keyword != lexer.INTO {
			continue
		}
		v, err := Eval(a.Value, env)
		if err != nil {
			return "", false, err
		}
		p, ok := value.AsPath(v)
		if !ok {
			return "", false, nil
		}
		return p, true, nil
	}
	return "", false, nil
}

// runCommand runs path with args to completion, capturing stdout. started
// is false only when the process could not be launched at all (spec.md
// §4.4: "spawn failure → Empty"); a non-zero exit still returns started
// true with stdout populated.
func runCommand(path string, args []string) (stdout []byte, exitErr error, started bool) {
	cmd := exec.Command(path, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	runErr := cmd.Run()
	if runErr != nil {
		if _, isExit := runErr.(*exec.ExitError); !isExit {
			return buf.Bytes(), runErr, false
		}
		return buf.Bytes(), runErr, true
	}
	return buf.Bytes(), nil, true
}

func biExecOut(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalPositional(c.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return value.EmptyValue, nil
	}
	path, ok := value.AsPath(args[0])
	if !ok {
		return value.EmptyValue, nil
	}
	cmdArgs := stringifyArgs(args[1:])
	out, _, started := runCommand(path, cmdArgs)
	if !started {
		return value.EmptyValue, nil
	}
	return value.String{S: string(out)}, nil
}

func biExecute(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalPositional(c.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return value.EmptyValue, nil
	}
	path, ok := value.AsPath(args[0])
	if !ok {
		return value.EmptyValue, nil
	}
	intoPath, hasInto, err := evalInto(c.Args, env)
	if err != nil {
		return nil, err
	}
	out, runErr, started := runCommand(path, stringifyArgs(args[1:]))
	if !started {
		return value.EmptyValue, nil
	}
	if hasInto {
		_ = os.WriteFile(intoPath, out, 0o644)
	}
	return value.Boolean{B: runErr == nil}, nil
}

// biSpawn starts path detached and returns its process ID without
// waiting (spec.md §5: "spawned processes are detached — no wait").
func biSpawn(c *ast.CallExpr, env *Environment) (value.Value, *errors.FindItError) {
	args, err := evalPositional(c.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return value.EmptyValue, nil
	}
	path, ok := value.AsPath(args[0])
	if !ok {
		return value.EmptyValue, nil
	}
	intoPath, hasInto, err := evalInto(c.Args, env)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, stringifyArgs(args[1:])...)
	var into *os.File
	if hasInto {
		f, ferr := os.Create(intoPath)
		if ferr == nil {
			cmd.Stdout = f
			into = f
		}
	}
	startErr := cmd.Start()
	if into != nil {
		into.Close() // the child already holds its own dup'd copy of the fd
	}
	if startErr != nil {
		return value.EmptyValue, nil
	}
	go cmd.Wait() // detached: reap without blocking the evaluator
	return value.Number{N: uint64(cmd.Process.Pid)}, nil
}

func stringifyArgs(vs []value.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = value.AsString(v, dateFormatForDisplay)
	}
	return out
}
