// Package haxe runs the Haxe cross-compiler as a build operation.
package haxe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
)

const DefaultExe = "haxe"

// Compiler is an [mkcore.Operation] that runs one compiler invocation in the
// project directory. The command is run without a shell, i.e. arguments are
// passed as they are.
type Compiler struct {
	Exe      string   // Defaults to [DefaultExe]
	Switch   string   // Output language flag, e.g. "--python"
	Out      string   // Output path relative to the project directory
	Sources  []string // Class paths, each passed with -cp
	Package  string   // Root package to compile
	Define   string   // Passed with -D
	Excludes []string // Packages excluded from compilation by macro
}

var _ mkcore.Operation = (*Compiler)(nil)

// LookPath returns the full path of the compiler executable exe, or of
// [DefaultExe] if exe is empty.
func LookPath(exe string) (string, error) {
	if exe == "" {
		exe = DefaultExe
	}
	return exec.LookPath(exe)
}

func (c *Compiler) exe() string {
	if c.Exe == "" {
		return DefaultExe
	}
	return c.Exe
}

// Args returns the compiler's argument vector.
func (c *Compiler) Args() []string {
	args := make([]string, 0, 6+2*len(c.Sources)+2*len(c.Excludes))
	args = append(args, c.Switch, c.Out)
	for _, src := range c.Sources {
		args = append(args, "-cp", src)
	}
	if c.Package != "" {
		args = append(args, c.Package)
	}
	if c.Define != "" {
		args = append(args, "-D", c.Define)
	}
	for _, x := range c.Excludes {
		args = append(args, "--macro", fmt.Sprintf("exclude('%s', true)", x))
	}
	return args
}

// CommandLine renders the command for humans. It cannot be fed to a shell.
func (c *Compiler) CommandLine() string {
	return strings.Join(append([]string{c.exe()}, c.Args()...), " ")
}

func (c *Compiler) Describe(*mkcore.Action, *mkcore.Env) string {
	return fmt.Sprintf("haxe %s %s", c.Switch, c.Out)
}

func (c *Compiler) Do(tr *mkcore.Trace, a *mkcore.Action, env *mkcore.Env) error {
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), slog.String("action", a.String()))
	}
	cmd := exec.CommandContext(tr.Ctx(), c.exe(), c.Args()...)
	cmd.Dir = a.Project().Dir
	cmd.Env = xenv
	cmd.Stdin = env.In
	cmd.Stdout = prefixed(env.Out)
	cmd.Stderr = prefixed(env.Err)
	cmdLine := c.CommandLine()
	if env.Out != nil {
		fmt.Fprintln(env.Out, cmdLine)
	}
	tr.Debug("exec `cmd` in `dir`",
		slog.String("cmd", cmdLine),
		slog.String("dir", cmd.Dir),
	)
	err = cmd.Run()
	if err == nil {
		return nil
	}
	var xerr *exec.ExitError
	if errors.As(err, &xerr) {
		return &ExitError{Cmd: cmdLine, Code: xerr.ExitCode(), Err: err}
	}
	return fmt.Errorf("%s: %w", cmdLine, err)
}

func prefixed(w io.Writer) io.Writer {
	if w == nil {
		return nil
	}
	return newPrefixWriter(w, "haxe: ")
}
