// Command findit walks a directory tree and evaluates a findit
// expression against every encountered file, grounded on the teacher's
// root main.go's testable run(ctx, args, stdout, stderr, getenv) entry
// point (SPEC_FULL.md §3.2).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/findit-cli/findit/pkg/findit/config"
	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
	"github.com/findit-cli/findit/pkg/findit/help"
	"github.com/findit-cli/findit/pkg/findit/walk"
)

// Version is set at compile time via -ldflags.
var Version = "0.1.0-dev"

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the testable entry point (Mat Ryer pattern): every side effect
// (stdio, environment, process signals) comes in as a parameter.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) > 0 {
		switch args[0] {
		case "help":
			return helpCommand(args[1:], stdout, stderr)
		case "try":
			return tryCommand(ctx, args[1:], stdout, stderr, getenv)
		}
	}
	return findCommand(ctx, args, stdout, stderr, getenv)
}

// multiFlag collects every occurrence of a repeatable flag, for
// `-w/--where` (cli_args.rs's `filter: Vec<String>`).
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func findCommand(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("findit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { printUsage(stderr) }

	var where multiFlag
	flags.Var(&where, "w", "Filter expression (repeatable)")
	flags.Var(&where, "where", "Filter expression (repeatable)")

	orderBy := flags.String("o", "", "Order-by keys, e.g. \"size DESC, name\"")
	flags.StringVar(orderBy, "order-by", "", "Order-by keys, e.g. \"size DESC, name\"")

	maxDepth := flags.Int("x", 0, "Max depth (0 = unbounded)")
	flags.IntVar(maxDepth, "max-depth", 0, "Max depth (0 = unbounded)")

	minDepth := flags.Int("n", 0, "Min depth")
	flags.IntVar(minDepth, "min-depth", 0, "Min depth")

	limit := flags.Int("l", 0, "Stop after N matches (0 = unbounded)")
	flags.IntVar(limit, "limit", 0, "Stop after N matches (0 = unbounded)")

	execute := flags.String("e", "", "Shell command to run per match (supports interpolation)")
	flags.StringVar(execute, "execute", "", "Shell command to run per match (supports interpolation)")

	display := flags.String("d", "", "Display template (default: print path)")
	flags.StringVar(display, "display", "", "Display template (default: print path)")

	interpStart := flags.String("interpolation-start", "", "Start delimiter for display/execute interpolation")
	interpEnd := flags.String("interpolation-end", "", "End delimiter for display/execute interpolation")

	nodeFirst := flags.Bool("node-first", false, "Visit a directory's children before the directory itself")
	debugLog := flags.String("debug-log", "", "Path to write debug($x body) output to")
	watchFlag := flags.Bool("watch", false, "Re-run the walk on filesystem changes under root")
	configPath := flags.String("config", "", "Path to .finditrc.yaml")
	showVersion := flags.Bool("version", false, "Show version")
	showHelp := flags.Bool("h", false, "Show this help message")
	flags.BoolVar(showHelp, "help", false, "Show this help message")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showHelp {
		printUsage(stdout)
		return nil
	}
	if *showVersion {
		fmt.Fprintf(stdout, "findit version %s\n", Version)
		return nil
	}

	cfg, err := config.Load(*configPath, getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyLocale()
	applyConfigDefaults(cfg, &where, orderBy, maxDepth, minDepth, limit, display, interpStart, interpEnd)

	root := "."
	if rest := flags.Args(); len(rest) > 0 {
		root = rest[0]
	}

	orderItems, perr := parseOrderByFlag(*orderBy)
	if perr != nil {
		return fmt.Errorf("%s", perr.PrettyString())
	}

	logger, closeLogger, err := buildLogger(*debugLog)
	if err != nil {
		return fmt.Errorf("opening --debug-log: %w", err)
	}
	if closeLogger != nil {
		defer closeLogger()
	}

	opts := walk.Options{
		Root:               root,
		Where:              where,
		MinDepth:           uint64(max(*minDepth, 0)),
		MaxDepth:           *maxDepth,
		NodeFirst:          *nodeFirst,
		OrderBy:            orderItems,
		Limit:              uint64(max(*limit, 0)),
		Display:            *display,
		Execute:            *execute,
		InterpolationStart: *interpStart,
		InterpolationEnd:   *interpEnd,
		Writer:             stdout,
		ExecStdout:         stdout,
		ExecStderr:         stderr,
		Sink:               logger,
	}

	if *watchFlag {
		return runWatch(ctx, opts, logger)
	}

	pipeline, perr := walk.Build(opts)
	if perr != nil {
		return fmt.Errorf("%s", perr.PrettyString())
	}
	if perr := pipeline.Run(); perr != nil {
		return fmt.Errorf("%s", perr.PrettyString())
	}
	return nil
}

func runWatch(ctx context.Context, opts walk.Options, logger findit.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := walk.NewWatcher(opts, logger)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if perr := watcher.Run(ctx); perr != nil {
		return fmt.Errorf("%s", perr.PrettyString())
	}
	return nil
}

func buildLogger(path string) (findit.Logger, func(), error) {
	if path == "" {
		return findit.NullLogger(), nil, nil
	}
	rotating, err := findit.OpenRotatingFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	return rotating, func() { rotating.Close() }, nil
}

// applyConfigDefaults fills in any CLI flag left at its zero value from
// .finditrc.yaml, matching config.go's "CLI flags always override" rule
// (SPEC_FULL.md §1.3): a flag explicitly set on the command line always
// wins, since only the zero value is ever overwritten here.
func applyConfigDefaults(cfg *config.Config, where *multiFlag, orderBy *string, maxDepth, minDepth, limit *int, display, interpStart, interpEnd *string) {
	if len(*where) == 0 && cfg.Where != "" {
		*where = append(*where, cfg.Where)
	}
	if *orderBy == "" {
		*orderBy = cfg.OrderBy
	}
	if *maxDepth == 0 {
		*maxDepth = cfg.MaxDepth
	}
	if *minDepth == 0 {
		*minDepth = cfg.MinDepth
	}
	if *limit == 0 {
		*limit = cfg.Limit
	}
	if *display == "" {
		*display = cfg.Display
	}
	if *interpStart == "" {
		*interpStart = orDefault(cfg.InterpolationStart, "`")
	}
	if *interpEnd == "" {
		*interpEnd = orDefault(cfg.InterpolationEnd, "`")
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parseOrderByFlag(source string) ([]walk.OrderItem, *errors.FindItError) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	return walk.ParseOrderBy(source)
}

func helpCommand(args []string, stdout, stderr io.Writer) error {
	jsonOutput := false
	var topic string
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		} else if !strings.HasPrefix(arg, "-") {
			topic = arg
		}
	}

	result, err := help.DescribeTopic(topic)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	if jsonOutput {
		data, err := help.FormatJSON(result)
		if err != nil {
			return fmt.Errorf("formatting JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}
	fmt.Fprint(stdout, help.FormatText(result))
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `findit - search files with an SQL-flavored expression language

Usage:
  findit [options] [root]
  findit help [topic]
  findit try [--against path]

Options:
  -w, --where <expr>          Only consider files matching expr (repeatable)
  -o, --order-by <keys>       Sort matches by one or more keys, e.g. "size DESC, name"
  -x, --max-depth <n>         Descend at most n levels (default: unbounded)
  -n, --min-depth <n>         Skip files shallower than n levels
  -l, --limit <n>             Stop after n matches (default: unbounded)
  -e, --execute <template>    Run a shell command per match (supports interpolation)
  -d, --display <template>    Render a template per match instead of the bare path
  --interpolation-start <s>   Start delimiter for display/execute interpolation (default: `+"`"+`)
  --interpolation-end <s>     End delimiter for display/execute interpolation (default: `+"`"+`)
  --node-first                Visit a directory's children before the directory itself
  --debug-log <path>          Write debug($x body) output to path (rotated at 4MiB)
  --watch                     Re-run the walk whenever files under root change
  --config <path>             Path to .finditrc.yaml (default: auto-detect)
  -h, --help                  Show this help message
  --version                   Show version information

Commands:
  help [topic]      Show reference for findit's syntax, properties, methods, and functions
  try               Start an interactive prompt for trying out expressions

Examples:
  findit
  findit -w 'name.hassuffix("go")' .
  findit -w 'size > 1024' -o 'modified DESC' -l 10
  findit -d '`+"`"+`name`+"`"+`: `+"`"+`size`+"`"+` bytes'
  findit --watch -w 'extension == "md"'
  findit help string
  findit try --against .
`)
}
