package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"git.fractalqb.de/fractalqb/qrgenmk"
	"git.fractalqb.de/fractalqb/qrgenmk/haxe"
	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	dir    string
	haxe   string
	trace  string
	dryRun bool
	dot    bool
}

// NewRootCmd creates the qrgenmk command. Positional arguments look like
// flags (--python, -cs, …), so the command splits its arguments itself.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "qrgenmk [flags] <language-switch> <platform-define> | CLEAN",
		Short: "Build the QRGenerator library with haxe",
		Long: `Build the QRGenerator library for one target language.

Language switches: --python, -cs, -hl, -java, -lua, -js
For -js the platform define is JS_BROWSER or JS_WSH.
CLEAN removes the output directory.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagArgs, posArgs := splitArgs(cmd, args)
			if err := cmd.Flags().Parse(flagArgs); err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			posArgs = append(posArgs, cmd.Flags().Args()...)
			return run(cmd, &flags, posArgs)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&flags.dir, "dir", "C", "", "QRGenerator project directory (default: working directory)")
	fs.StringVar(&flags.haxe, "haxe", haxe.DefaultExe, "haxe compiler executable")
	fs.StringVar(&flags.trace, "trace", "info", "trace level: off, warn, info or debug")
	fs.BoolVarP(&flags.dryRun, "dry-run", "n", false, "only show what would be done")
	fs.BoolVar(&flags.dot, "dot", false, "write the build graph in graphviz dot format and exit")
	return cmd
}

// splitArgs separates the command's own flags from the positional
// arguments. Anything that is not a known flag is positional.
func splitArgs(cmd *cobra.Command, args []string) (flagArgs, posArgs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flagArgs, append(posArgs, args[i+1:]...)
		}
		name, hasVal := "", false
		switch {
		case strings.HasPrefix(arg, "--"):
			name, _, hasVal = strings.Cut(arg[2:], "=")
			if f := cmd.Flags().Lookup(name); f != nil {
				flagArgs = append(flagArgs, arg)
				if !hasVal && f.NoOptDefVal == "" && i+1 < len(args) {
					i++
					flagArgs = append(flagArgs, args[i])
				}
				continue
			}
		case len(arg) == 2 && arg[0] == '-':
			if f := cmd.Flags().ShorthandLookup(arg[1:]); f != nil {
				flagArgs = append(flagArgs, arg)
				if f.NoOptDefVal == "" && i+1 < len(args) {
					i++
					flagArgs = append(flagArgs, args[i])
				}
				continue
			}
		}
		posArgs = append(posArgs, arg)
	}
	return flagArgs, posArgs
}

func run(cmd *cobra.Command, flags *rootFlags, args []string) error {
	dir := flags.dir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	cfg, err := qrgenmk.ParseArgs(runtime.GOOS, args,
		qrgenmk.WithRoot(dir),
		qrgenmk.WithCompiler(flags.haxe),
	)
	if err != nil {
		return err
	}
	if flags.dot {
		prj, err := qrgenmk.Plan(cfg, qrgenmk.NewStates())
		if err != nil {
			return err
		}
		_, err = prj.WriteDot(cmd.OutOrStdout())
		return err
	}

	if !cfg.Clean() && !flags.dryRun {
		if _, err := haxe.LookPath(cfg.Compiler()); err != nil {
			return err
		}
	}

	tracer := qrgenmk.DefaultTracer()
	tracer.W = cmd.ErrOrStderr()
	if err := tracer.ParseLogFlag(flags.trace); err != nil {
		return err
	}
	env := mkcore.DefaultEnv(nil)
	env.Out, env.Err = cmd.OutOrStdout(), cmd.ErrOrStderr()

	states, err := qrgenmk.Run(cmd.Context(), cfg, tracer, qrgenmk.RunOptions{
		DryRun: flags.dryRun,
		Env:    env,
	})
	if err != nil {
		return fmt.Errorf("%s failed after %s: %w", cfg, states.Last(), err)
	}
	if flags.trace != "off" {
		fmt.Fprintln(cmd.ErrOrStderr(), "states:", states)
	}
	return nil
}

// Execute runs the qrgenmk command with the process' arguments. It is
// canceled by an interrupt signal.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
