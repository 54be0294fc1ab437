package qrgenmk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes trace events as lines of text to W.
type WriteTracer struct {
	W   io.Writer
	Log mkcore.TraceLog
}

var _ mkcore.Tracer = (*WriteTracer)(nil)

func DefaultTracer() *WriteTracer {
	return &WriteTracer{W: os.Stderr, Log: mkcore.TraceWarn | mkcore.TraceInfo}
}

func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = mkcore.TraceWarn
	case "info", "i":
		tr.Log = mkcore.TraceWarn | mkcore.TraceInfo
	case "debug", "d":
		tr.Log = mkcore.TraceWarn | mkcore.TraceInfo | mkcore.TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr *WriteTracer) Debug(t *mkcore.Trace, msg string, args ...any) {
	if tr.Log&mkcore.TraceDebug == 0 {
		return
	}
	tr.msg(t, "DEBUG", msg, args)
}

func (tr *WriteTracer) Info(t *mkcore.Trace, msg string, args ...any) {
	if tr.Log&(mkcore.TraceInfo|mkcore.TraceDebug) == 0 {
		return
	}
	tr.msg(t, "INFO ", msg, args)
}

func (tr *WriteTracer) Warn(t *mkcore.Trace, msg string, args ...any) {
	if tr.Log == 0 {
		return
	}
	tr.msg(t, "WARN ", msg, args)
}

func (tr *WriteTracer) msg(t *mkcore.Trace, level, msg string, args []any) {
	fmt.Fprintf(tr.W, "%d@%s\t  %s ", t.Build(), t.TopTag(), level)
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr *WriteTracer) StartProject(t *mkcore.Trace, p *mkcore.Project, activity string) {
	if !tr.logGoals() {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t{ %s project '%s' in %s\n",
		t.Build(),
		t.TopTag(),
		activity,
		p,
		p.Dir,
	)
}

func (tr *WriteTracer) DoneProject(t *mkcore.Trace, p *mkcore.Project, activity string, dt time.Duration) {
	if !tr.logGoals() {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t} %s project '%s' took %s\n",
		t.Build(),
		t.TopTag(),
		activity,
		p,
		dt,
	)
}

func (tr *WriteTracer) logGoals() bool {
	return tr.Log&(mkcore.TraceInfo|mkcore.TraceDebug) != 0
}

func (tr *WriteTracer) RunAction(t *mkcore.Trace, a *mkcore.Action) {
	if tr.logGoals() {
		fmt.Fprintf(tr.W, "%d@%s\t  run action (%s)\n", t.Build(), t.TopTag(), a)
	}
}

func (tr *WriteTracer) RunImplicitAction(t *mkcore.Trace, _ *mkcore.Action) {
	if tr.Log&mkcore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%d@%s\t  implicit action\n", t.Build(), t.TopTag())
	}
}

func (tr *WriteTracer) SkipAction(t *mkcore.Trace, a *mkcore.Action) {
	if tr.Log != 0 {
		fmt.Fprintf(tr.W, "%d@%s\t  would run action (%s)\n", t.Build(), t.TopTag(), a)
	}
}

func (tr *WriteTracer) CheckGoal(t *mkcore.Trace, g *mkcore.Goal) {
	if tr.Log&mkcore.TraceDebug == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t? [%s] %s\n",
		t.Build(),
		t.TopTag(),
		g,
		t.Path(),
	)
}

func (tr *WriteTracer) RemoveArtefact(t *mkcore.Trace, g *mkcore.Goal) {
	if tr.Log == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t! remove artefact [%s]\n",
		t.Build(),
		t.TopTag(),
		g,
	)
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value.Any()), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s'", n)
}
