package walk

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/findit-cli/findit/pkg/findit/errors"
	"github.com/findit-cli/findit/pkg/findit/findit"
)

// Output is the terminal stage: it either prints the bare path (no
// --display given) or renders a --display template via formatDisplay,
// grounded on original_source/src/output.rs's SimpleOutput/ComplexOutput
// split. Next is optional (nil when Output is the innermost stage).
//
// Execute is cli_args.rs's `-e/--execute` flag, which the retrieved
// original never wires into build_output. Here it runs as an additional
// per-file side effect: the template is rendered the same way Display
// is (interpolated findit expressions, AS STRING), then the result is
// run through a shell with its stdio inherited from ExecStdout/ExecStderr,
// mirroring the evaluator's own execute() builtin (builtins.go biExecute)
// but for a shell command line instead of a path+args pair.
type Output struct {
	Writer             io.Writer
	Display            string
	Execute            string
	ExecStdout         io.Writer
	ExecStderr         io.Writer
	InterpolationStart string
	InterpolationEnd   string
	Next               Stage
}

func (o *Output) Enough() bool {
	if o.Next == nil {
		return false
	}
	return o.Next.Enough()
}

func (o *Output) Step(file findit.FileContext) *errors.FindItError {
	if o.Display == "" {
		fmt.Fprintln(o.Writer, file.Path())
	} else {
		env := findit.NewEnvironment(file)
		rendered, err := findit.FormatDisplay(o.Display, env, o.InterpolationStart, o.InterpolationEnd)
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Writer, rendered)
	}
	if o.Execute != "" {
		env := findit.NewEnvironment(file)
		command, err := findit.FormatDisplay(o.Execute, env, o.InterpolationStart, o.InterpolationEnd)
		if err != nil {
			return err
		}
		cmd := exec.Command("sh", "-c", command)
		cmd.Stdout = o.ExecStdout
		cmd.Stderr = o.ExecStderr
		_ = cmd.Run() // spec.md §4.4: spawn/execute failures yield Empty, not a walk-aborting error
	}
	if o.Next != nil {
		return o.Next.Step(file)
	}
	return nil
}
