package qrgenmk

import (
	"context"
	"log/slog"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
)

type RunOptions struct {
	// DryRun traces what would be done without touching anything.
	DryRun bool

	// Env for the compiler. If nil, the process' environment is used.
	Env *mkcore.Env
}

// Run builds or cleans as configured by cfg and returns the states the build
// has reached, even if it failed.
func Run(ctx context.Context, cfg *BuildConfig, tracer mkcore.Tracer, opts RunOptions) (*States, error) {
	states := NewStates()
	if !cfg.Clean() {
		states.Reach(ArgsParsed)
	}
	prj, err := Plan(cfg, states)
	if err != nil {
		return states, err
	}
	tr := mkcore.NewTrace(ctx, tracer)

	if cfg.Clean() {
		if err := mkcore.Clean(prj, opts.DryRun, tr); err != nil {
			return states, err
		}
		states.Reach(CleanOut)
		states.Reach(Done)
		return states, nil
	}

	states.Reach(OutputPlanned)
	tr.Info("building library `output` for `target`",
		slog.String("output", cfg.OutPath()),
		slog.String("target", cfg.String()),
	)
	bd, err := mkcore.NewBuilder(tr, opts.Env)
	if err != nil {
		return states, err
	}
	bd.DryRun = opts.DryRun
	if err := bd.Project(prj); err != nil {
		return states, err
	}
	if !opts.DryRun {
		states.Reach(Done)
	}
	return states, nil
}
