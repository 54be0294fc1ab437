package mkcore

import (
	"testing"
	"time"
)

type testTracer struct{ t *testing.T }

var _ Tracer = testTracer{}

func (tr testTracer) Debug(t *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"DEBUG", t.Path(), msg}, args...)...)
}

func (tr testTracer) Info(t *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"INFO", t.Path(), msg}, args...)...)
}

func (tr testTracer) Warn(t *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"WARN", t.Path(), msg}, args...)...)
}

func (tr testTracer) StartProject(t *Trace, p *Project, activity string) {
	tr.t.Logf("StartProject: %s %s", p, activity)
}

func (tr testTracer) DoneProject(t *Trace, p *Project, activity string, dt time.Duration) {
	tr.t.Logf("DoneProject: %s %s %s", p, activity, dt)
}

func (tr testTracer) RunAction(t *Trace, a *Action) {
	tr.t.Logf("RunAction %s: %s", t, a)
}

func (tr testTracer) RunImplicitAction(t *Trace, a *Action) {
	tr.t.Logf("RunImplicitAction %s: %s", t, a)
}

func (tr testTracer) SkipAction(t *Trace, a *Action) {
	tr.t.Logf("SkipAction %s: %s", t, a)
}

func (tr testTracer) CheckGoal(t *Trace, g *Goal) {
	tr.t.Logf("CheckGoal %s: %s", t, g)
}

func (tr testTracer) RemoveArtefact(t *Trace, g *Goal) {
	tr.t.Logf("RemoveArtefact %s: %s", t, g)
}
