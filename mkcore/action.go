package mkcore

import (
	"log/slog"
)

// An Action is something you can do in your [Project] to achieve at least one
// [Goal]. The actual implementation of the action is an [Operation]. An action
// without an operation is an "implicit" action, i.e. if all its premises are
// reached, all results of the action are implicitly given.
type Action struct {
	Op Operation

	// IgnoreError makes a failing action a warning. Use it only for
	// operations that may fail without harm, e.g. removing stale files.
	IgnoreError bool

	prj      *Project
	premises []*Goal
	results  []*Goal
}

func (a *Action) Project() *Project { return a.prj }

func (a *Action) Premises() []*Goal { return a.premises }

func (a *Action) Premise(i int) *Goal { return a.premises[i] }

func (a *Action) Results() []*Goal { return a.results }

func (a *Action) Result(i int) *Goal { return a.results[i] }

// Run runs the action's operation with env. If env is nil, [DefaultEnv] is
// used.
func (a *Action) Run(tr *Trace, env *Env) error {
	if a.Op == nil {
		tr.runImplicitAction(a)
		return nil
	}
	if env == nil {
		env = DefaultEnv(tr)
	}
	tr.runAction(a)
	err := a.Op.Do(tr, a, env)
	if err != nil && a.IgnoreError {
		tr.Warn("ignoring failed `action`: `error`",
			slog.String("action", a.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return err
}

func (a *Action) String() string {
	switch {
	case a == nil:
		return "<nil:Action>"
	case a.Op == nil:
		return "implicit:" + a.Project().String()
	}
	return a.Op.Describe(a, nil)
}

type Operation interface {
	// The hints are optional
	Describe(actionHint *Action, envHint *Env) string
	Do(tr *Trace, a *Action, env *Env) error
}
