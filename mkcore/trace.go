package mkcore

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// TracerCommon is what all tracers have to report. Messages use sllm
// templates, i.e. parameters are referenced as `name` and args are key-value
// pairs or [log/slog.Attr].
type TracerCommon interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	StartProject(t *Trace, p *Project, activity string)
	DoneProject(t *Trace, p *Project, activity string, dt time.Duration)
}

type Tracer interface {
	BuildTracer
	CleanTracer
}

type TraceLog int

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

// Trace is passed down while building a project and tells where in the project
// the build is.
type Trace struct {
	root *traceRoot
	up   *Trace
	obj  any
	id   uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	if ctx == nil {
		ctx = context.Background()
	}
	root := &traceRoot{ctx: ctx, tr: t}
	return &Trace{root: root}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

func (t *Trace) startProject(p *Project, activity string) {
	t.root.prj = p
	t.root.tr.StartProject(t, p, activity)
}

func (t *Trace) doneProject(p *Project, activity string, dt time.Duration) {
	t.root.tr.DoneProject(t, p, activity, dt)
}

func (t *Trace) runAction(a *Action)         { t.root.tr.RunAction(t, a) }
func (t *Trace) runImplicitAction(a *Action) { t.root.tr.RunImplicitAction(t, a) }
func (t *Trace) skipAction(a *Action)        { t.root.tr.SkipAction(t, a) }
func (t *Trace) checkGoal(g *Goal)           { t.root.tr.CheckGoal(t, g) }
func (t *Trace) removeArtefact(g *Goal)      { t.root.tr.RemoveArtefact(t, g) }

// Build returns the ID of the current build or 0 if no project is being
// built.
func (t *Trace) Build() BuildID {
	if t.root == nil || t.root.prj == nil {
		return 0
	}
	return t.root.prj.Build()
}

func (t *Trace) TopID() uint64 { return t.id }

func (t *Trace) TopTag() string {
	switch t.obj.(type) {
	case *Goal:
		return fmt.Sprintf("[%d]", t.id)
	case *Action:
		return fmt.Sprintf("(%d)", t.id)
	case *Project:
		return fmt.Sprintf("{%d}", t.id)
	case nil:
		return ""
	}
	return fmt.Sprintf("!%T!", t.obj)
}

func (t *Trace) Path() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for ; t != nil; t = t.up {
		sb.WriteString(t.TopTag())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string {
	if t.root.prj == nil {
		return t.Path()
	}
	return fmt.Sprintf("%d@%s", t.root.prj.Build(), t.Path())
}

func (t *Trace) push(obj any) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  obj,
		id:   t.root.idSeq.Add(1),
	}
}

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	prj   *Project
	idSeq atomic.Uint64
}
