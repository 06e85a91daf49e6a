package walk

import (
	"sort"
	"strings"

	"github.com/findit-cli/findit/pkg/findit/ast"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/value"
)

// OrderDirection is one --order-by key's sort direction.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// OrderItem is one compiled --order-by key, applied in sequence as a
// tiebreaker chain (ties on the first key fall through to the second).
type OrderItem struct {
	Direction OrderDirection
	Expr      ast.Expression
}

// OrderBy buffers every admitted file, sorts by the compiled key
// expressions, then forwards in order, grounded on
// original_source/src/order.rs (the original sorts on Drop; Go has no
// destructor, so sorting instead happens explicitly in Flush, which the
// caller must invoke once the walk completes).
type OrderBy struct {
	Next  Stage
	Order []OrderItem
	items []findit.FileContext
}

func (o *OrderBy) Enough() bool { return false }

func (o *OrderBy) Step(file findit.FileContext) *errors.FindItError {
	o.items = append(o.items, file)
	return nil
}

// Flush sorts the buffered files by the compiled keys and forwards them
// to Next in order, stopping early if Next reports Enough (so a
// downstream Limit still bounds the final output).
func (o *OrderBy) Flush() *errors.FindItError {
	type cacheKey struct {
		index int
		path  string
	}
	cache := map[cacheKey]value.Value{}
	var sortErr *errors.FindItError

	keyAt := func(index int, file findit.FileContext) value.Value {
		key := cacheKey{index, file.Path()}
		if v, ok := cache[key]; ok {
			return v
		}
		env := findit.NewEnvironment(file)
		v, err := findit.Evaluate(o.Order[index].Expr, env)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		if err != nil {
			v = value.EmptyValue
		}
		cache[key] = v
		return v
	}

	sort.SliceStable(o.items, func(i, j int) bool {
		left, right := o.items[i], o.items[j]
		for idx, item := range o.Order {
			lv := keyAt(idx, left)
			rv := keyAt(idx, right)
			cmp, ok := value.Compare(lv, rv)
			if !ok || cmp == 0 {
				continue
			}
			if item.Direction == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	if sortErr != nil {
		return sortErr
	}

	for _, file := range o.items {
		if o.Next.Enough() {
			return nil
		}
		if err := o.Next.Step(file); err != nil {
			return err
		}
	}
	return nil
}

// ParseOrderBy splits a --order-by string into its comma-separated keys,
// each optionally suffixed with ASC or DESC (ASC is the default), and
// compiles every key's expression, grounded on
// original_source/src/parser/mod.rs's parse_order_by (there a dedicated
// lexer loop stops at ASC/DESC/comma; here the split happens textually
// since findit.Compile only ever produces one Expression at a time).
func ParseOrderBy(source string) ([]OrderItem, *errors.FindItError) {
	var items []OrderItem
	for _, part := range splitTopLevelCommas(source) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		direction := Asc
		switch {
		case hasTrailingWord(part, "asc"):
			part = strings.TrimSpace(part[:len(part)-len("asc")])
		case hasTrailingWord(part, "desc"):
			direction = Desc
			part = strings.TrimSpace(part[:len(part)-len("desc")])
		}
		expr, err := findit.Compile(part)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{Direction: direction, Expr: expr})
	}
	return items, nil
}

// hasTrailingWord reports whether s ends with word (case-insensitive) as
// its own token, not part of a longer identifier.
func hasTrailingWord(s, word string) bool {
	if len(s) < len(word) || !strings.EqualFold(s[len(s)-len(word):], word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	before := s[len(s)-len(word)-1]
	return before == ' ' || before == '\t'
}

// splitTopLevelCommas splits on commas that are not nested inside
// parentheses, brackets, or a double-quoted string literal.
func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '"' && (i == 0 || s[i-1] != '\\') {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
