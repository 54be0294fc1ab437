// Package mktest has helpers for testing build operations.
package mktest

import (
	"context"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
)

// Tracer logs all trace events to a test.
type Tracer struct{ T testing.TB }

var _ mkcore.Tracer = Tracer{}

// Trace returns a new trace that logs to t.
func Trace(t testing.TB) *mkcore.Trace {
	return mkcore.NewTrace(context.Background(), Tracer{t})
}

func (tr Tracer) Debug(t *mkcore.Trace, msg string, args ...any) {
	tr.T.Log(append([]any{"mk-DEBUG:", msg}, args...)...)
}

func (tr Tracer) Info(t *mkcore.Trace, msg string, args ...any) {
	tr.T.Log(append([]any{"mk-INFO:", msg}, args...)...)
}

func (tr Tracer) Warn(t *mkcore.Trace, msg string, args ...any) {
	tr.T.Log(append([]any{"mk-WARN:", msg}, args...)...)
}

func (tr Tracer) StartProject(t *mkcore.Trace, p *mkcore.Project, activity string) {
	tr.T.Logf("mk-StartProject: %s %s", p, activity)
}

func (tr Tracer) DoneProject(t *mkcore.Trace, p *mkcore.Project, activity string, dt time.Duration) {
	tr.T.Logf("mk-DoneProject: %s %s %s", p, activity, dt)
}

func (tr Tracer) RunAction(_ *mkcore.Trace, a *mkcore.Action) {
	tr.T.Logf("mk-RunAction: %s", a)
}

func (tr Tracer) RunImplicitAction(_ *mkcore.Trace, a *mkcore.Action) {
	tr.T.Logf("mk-RunImplicitAction: %s", a)
}

func (tr Tracer) SkipAction(_ *mkcore.Trace, a *mkcore.Action) {
	tr.T.Logf("mk-SkipAction: %s", a)
}

func (tr Tracer) CheckGoal(_ *mkcore.Trace, g *mkcore.Goal) {
	tr.T.Logf("mk-CheckGoal: %s", g)
}

func (tr Tracer) RemoveArtefact(_ *mkcore.Trace, g *mkcore.Goal) {
	tr.T.Logf("mk-RemoveArtefact: %s", g)
}
