// Package help provides topic-based lookup over findit's expression
// vocabulary (file properties, operators, String/List/Path methods, free
// functions, control-flow keywords), grounded on the teacher's
// pkg/parsley/help package's DescribeTopic/FormatText/FormatJSON shape and
// populated with the vocabulary original_source/src/quick_ref.rs
// documents for findit itself. Accessible via `findit help [topic]`.
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/findit-cli/findit/pkg/findit/evaluator"
)

// Entry is one documented property, method, function, or keyword.
type Entry struct {
	Name        string `json:"name"`
	Signature   string `json:"signature,omitempty"`
	Description string `json:"description,omitempty"`
}

// Group is a named cluster of Entries (an operator category, for
// instance); TopicResult.Groups is used when a topic's entries fall into
// more than one natural bucket.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// TopicResult is the help output for one topic.
type TopicResult struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Entries     []Entry `json:"entries,omitempty"`
	Groups      []Group `json:"groups,omitempty"`
}

// topics lists every top-level topic `findit help` accepts with no
// argument, used for the unknown-topic error and `findit help topics`.
var topics = []string{
	"syntax", "literals", "properties", "operators", "string", "list",
	"path", "functions", "control", "examples",
}

// DescribeTopic returns help information for topic. An empty topic is the
// syntax overview, mirroring original_source/src/quick_ref.rs's
// no-argument behavior of printing the whole reference.
func DescribeTopic(topic string) (*TopicResult, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		topic = "syntax"
	}

	switch topic {
	case "syntax":
		return describeSyntax(), nil
	case "literals":
		return describeLiterals(), nil
	case "properties", "property":
		return describeProperties(), nil
	case "operators", "operator":
		return describeOperators(), nil
	case "string":
		return describeString(), nil
	case "list", "array":
		return describeList(), nil
	case "path":
		return describePath(), nil
	case "functions", "function":
		return describeFunctions(), nil
	case "control", "control-flow", "keywords":
		return describeControl(), nil
	case "examples", "example":
		return describeExamples(), nil
	}

	if result := describeEntryByName(topic); result != nil {
		return result, nil
	}

	return nil, unknownTopicError(topic)
}

func describeSyntax() *TopicResult {
	return &TopicResult{
		Kind:        "topic-list",
		Name:        "syntax",
		Description: "findit expression syntax quick reference",
		Entries: []Entry{
			{Name: "literals", Description: "numbers, strings, booleans, dates, paths, lists, classes"},
			{Name: "properties", Description: "file properties (name, size, modified, ...)"},
			{Name: "operators", Description: "comparison, logical, arithmetic, string, and type operators"},
			{Name: "string", Description: "String methods"},
			{Name: "list", Description: "List methods"},
			{Name: "path", Description: "Path methods"},
			{Name: "functions", Description: "free functions (now, env, replace, execute, ...)"},
			{Name: "control", Description: "IF/CASE/WITH control flow"},
			{Name: "examples", Description: "example --where expressions"},
		},
	}
}

func describeLiterals() *TopicResult {
	return &TopicResult{
		Kind: "entry-list",
		Name: "literals",
		Entries: []Entry{
			{Name: "number", Signature: `123  0x1F  0o755  0b1010`, Description: "numeric literal"},
			{Name: "string", Signature: `"text"  "escape: \n \t \""`, Description: "string literal"},
			{Name: "boolean", Signature: `true  false`, Description: "boolean literal"},
			{Name: "date", Signature: `@(2025-12-19)  @(19/Dec/2025 14:30)`, Description: "date literal"},
			{Name: "path", Signature: `@src  @"my file.txt"`, Description: "path literal"},
			{Name: "list", Signature: `[1, 2, 3]  ["a", "b"]`, Description: "list literal"},
			{Name: "class", Signature: `{:name "value", :count 42}`, Description: "class literal"},
		},
	}
}

func describeProperties() *TopicResult {
	descriptions := map[string]string{
		"name":       "file name with extension",
		"stem":       "file name without extension",
		"extension":  "file extension (without dot)",
		"path":       "full file path as string",
		"absolute":   "absolute path",
		"size":       "file size in bytes",
		"depth":      "directory depth (root = 0)",
		"content":    "file content as string (empty if binary/unreadable)",
		"created":    "creation date/time",
		"modified":   "last modification date/time",
		"accessed":   "last access date/time",
		"owner":      "file owner username",
		"group":      "file group name",
		"permission": "file permissions (numeric)",
		"parent":     "parent directory path",
		"files":      "list of files in directory",
		"exists":     "true if the file exists",
		"count":      "number of entries in a directory",
	}
	return &TopicResult{
		Kind:    "entry-list",
		Name:    "properties",
		Entries: entriesFromNames(evaluator.PathPropertyNames(), descriptions),
	}
}

func describeOperators() *TopicResult {
	return &TopicResult{
		Kind: "group-list",
		Name: "operators",
		Groups: []Group{
			{Name: "comparison", Entries: []Entry{
				{Name: "=", Description: "equal (also ==)"},
				{Name: "!=", Description: "not equal (also <>)"},
				{Name: "<", Description: "less than"},
				{Name: ">", Description: "greater than"},
				{Name: "<=", Description: "less than or equal"},
				{Name: ">=", Description: "greater than or equal"},
				{Name: "BETWEEN", Signature: "value BETWEEN min AND max", Description: "inclusive range test"},
			}},
			{Name: "logical", Entries: []Entry{
				{Name: "AND", Description: "both conditions true"},
				{Name: "OR", Description: "at least one condition true"},
				{Name: "NOT", Description: "negates a condition"},
				{Name: "XOR", Description: "exactly one condition true"},
			}},
			{Name: "arithmetic", Entries: []Entry{
				{Name: "+", Description: "addition"},
				{Name: "-", Description: "subtraction"},
				{Name: "*", Description: "multiplication"},
				{Name: "/", Description: "division"},
				{Name: "%", Description: "modulo (remainder)"},
				{Name: "&", Description: "bitwise AND"},
				{Name: "|", Description: "bitwise OR"},
				{Name: "^", Description: "bitwise XOR"},
			}},
			{Name: "string", Entries: []Entry{
				{Name: "+", Description: `concatenation: "hello" + " " + "world"`},
				{Name: "MATCHES", Signature: `name MATCHES "^test.*\.rs$"`, Description: "regular expression match"},
			}},
			{Name: "type", Entries: []Entry{
				{Name: "IS SOME", Description: "value is not Empty"},
				{Name: "IS NONE", Description: "value is Empty"},
				{Name: "IS TRUE", Description: "boolean is true"},
				{Name: "IS FALSE", Description: "boolean is false"},
				{Name: "IS FILE", Description: "true if a regular file"},
				{Name: "IS DIR", Description: "true if a directory"},
				{Name: "IS LINK", Description: "true if a symbolic link"},
				{Name: "AS STRING", Description: "cast to string"},
				{Name: "AS NUMBER", Description: "cast to number"},
				{Name: "AS BOOLEAN", Description: "cast to boolean"},
				{Name: "AS DATE", Description: "cast to date"},
				{Name: "AS PATH", Description: "cast to path"},
			}},
		},
	}
}

func describeString() *TopicResult {
	descriptions := map[string]string{
		"length":       "number of characters",
		"toupper":      "convert to uppercase",
		"tolower":      "convert to lowercase",
		"trim":         "remove leading/trailing whitespace",
		"trimhead":     "remove leading whitespace",
		"trimtail":     "remove trailing whitespace",
		"reverse":      "reverse the string",
		"take":         "first n characters",
		"skip":         "skip the first n characters",
		"split":        "split into a list",
		"lines":        "split by newlines",
		"words":        "split by whitespace",
		"contains":     "true if it contains a substring",
		"indexof":      "index of a substring, or Empty",
		"hasprefix":    "true if it starts with a prefix",
		"hassuffix":    "true if it ends with a suffix",
		"removeprefix": "remove a leading prefix if present",
		"removesuffix": "remove a trailing suffix if present",
	}
	return &TopicResult{
		Kind:    "entry-list",
		Name:    "string",
		Entries: entriesFromNames(evaluator.GetRegistryForType("STRING").Names(), descriptions),
	}
}

func describeList() *TopicResult {
	descriptions := map[string]string{
		"length":     "number of items",
		"reverse":    "reverse the list",
		"map":        "transform each item: $x <expr>",
		"filter":     "keep items matching: $x <expr>",
		"sum":        "sum of numeric items",
		"max":        "maximum item",
		"min":        "minimum item",
		"avg":        "average of numeric items",
		"sort":       "sort items",
		"sortby":     "sort by expression: $x <expr>",
		"distinct":   "remove duplicate items",
		"distinctby": "remove duplicates by expression",
		"take":       "first n items",
		"skip":       "skip the first n items",
		"join":       "join into a string",
		"first":      "first item, or Empty",
		"last":       "last item, or Empty",
		"contains":   "true if it contains an item",
		"indexof":    "index of an item, or Empty",
		"flatmap":    "map then flatten one level",
		"all":        "true if every item matches",
		"any":        "true if any item matches",
		"groupby":    "group items by expression",
		"enumerate":  "pair each item with its index",
	}
	return &TopicResult{
		Kind:    "entry-list",
		Name:    "list",
		Entries: entriesFromNames(evaluator.ListMethodNames(), descriptions),
	}
}

func describePath() *TopicResult {
	descriptions := map[string]string{
		"length": "length of the path string in bytes",
		"lines":  "file content as a list of lines",
		"words":  "file content as a list of words",
		"walk":   "all descendant regular files (directories excluded)",
	}
	return &TopicResult{
		Kind:    "entry-list",
		Name:    "path",
		Entries: entriesFromNames(evaluator.PathMethodNames(), descriptions),
	}
}

func describeFunctions() *TopicResult {
	descriptions := map[string]string{
		"now":      "current timestamp",
		"rand":     "random number",
		"env":      `environment variable: env("VAR")`,
		"coalesce": "first non-empty value",
		"replace":  "replace in a string (FROM/TO or PATTERN/TO)",
		"format":   "format a date with an explicit pattern",
		"parse":    "parse a string into a date",
		"execout":  "run an external command, returning its output",
		"execute":  "run an external command for its exit status",
		"spawn":    "run an external command without waiting",
	}
	return &TopicResult{
		Kind:    "entry-list",
		Name:    "functions",
		Entries: entriesFromNames(evaluator.FreeFunctionNames(), descriptions),
	}
}

func describeControl() *TopicResult {
	return &TopicResult{
		Kind: "entry-list",
		Name: "control",
		Entries: []Entry{
			{Name: "IF", Signature: "IF condition THEN a ELSE b END", Description: "conditional expression"},
			{Name: "CASE", Signature: "CASE WHEN c1 THEN a WHEN c2 THEN b ELSE c END", Description: "multi-way conditional"},
			{Name: "WITH", Signature: "WITH $var AS value DO expression END", Description: "bind a name for an expression"},
		},
	}
}

func describeExamples() *TopicResult {
	return &TopicResult{
		Kind: "entry-list",
		Name: "examples",
		Entries: []Entry{
			{Name: "by extension", Signature: `extension = "rs"`},
			{Name: "large files", Signature: `size > 10485760`},
			{Name: "recent files", Signature: `modified AS NUMBER > now() AS NUMBER - 86400`},
			{Name: "content search", Signature: `content.contains("TODO")`},
			{Name: "combined filter", Signature: `extension = "txt" AND size BETWEEN 1024 AND 1048576`},
			{Name: "executable files", Signature: `NOT IS DIR AND permission & 0o111 != 0`},
		},
	}
}

// entriesFromNames builds a sorted Entry list from a name slice and a
// name-to-description lookup, leaving Description empty for any name the
// lookup doesn't cover rather than dropping it.
func entriesFromNames(names []string, descriptions map[string]string) []Entry {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	entries := make([]Entry, 0, len(sorted))
	for _, name := range sorted {
		entries = append(entries, Entry{Name: name, Description: descriptions[strings.ToLower(name)]})
	}
	return entries
}

// describeEntryByName looks a single name up across every topic's entries,
// so `findit help hassuffix` works without knowing which topic it lives
// under.
func describeEntryByName(name string) *TopicResult {
	candidates := []*TopicResult{
		describeProperties(), describeString(), describeList(),
		describePath(), describeFunctions(), describeControl(),
	}
	for _, topic := range candidates {
		for _, entry := range topic.Entries {
			if strings.EqualFold(entry.Name, name) {
				return &TopicResult{
					Kind:        "entry",
					Name:        entry.Name,
					Description: entry.Description,
					Entries:     []Entry{entry},
				}
			}
		}
	}
	return nil
}

func unknownTopicError(topic string) error {
	return fmt.Errorf("unknown topic: %s\nTry: %s", topic, strings.Join(topics, ", "))
}
