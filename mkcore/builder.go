package mkcore

import (
	"errors"
	"fmt"
	"time"
)

type Builder struct {
	// DryRun only traces the actions that would run.
	DryRun bool

	trace *Trace
	env   *Env
	bid   BuildID
}

func NewBuilder(tr *Trace, env *Env) (*Builder, error) {
	if tr == nil {
		return nil, errors.New("no trace for new builder")
	}
	return &Builder{trace: tr, env: env}, nil
}

// Project builds all leafs in prj.
func (bd *Builder) Project(prj *Project) error {
	bd.bid = prj.LockBuild()
	defer prj.Unlock()
	if bd.env == nil {
		bd.env = DefaultEnv(bd.trace)
	}
	start := time.Now()
	tr := bd.trace.push(prj)
	tr.startProject(prj, bd.activity())
	for _, leaf := range prj.Leafs() {
		if err := bd.buildGoal(tr, leaf); err != nil {
			return err
		}
	}
	tr.doneProject(prj, bd.activity(), time.Since(start))
	return nil
}

// Goals builds the goals gs, which must all belong to the same project.
func (bd *Builder) Goals(gs ...*Goal) error {
	if len(gs) == 0 {
		return nil
	}
	prj := gs[0].Project()
	for _, g := range gs[1:] {
		if g.Project() != prj {
			return fmt.Errorf("goal %s not in project '%s'", g, prj)
		}
	}
	bd.bid = prj.LockBuild()
	defer prj.Unlock()
	if bd.env == nil {
		bd.env = DefaultEnv(bd.trace)
	}
	start := time.Now()
	tr := bd.trace.push(prj)
	tr.startProject(prj, bd.activity())
	for _, g := range gs {
		if err := bd.buildGoal(tr, g); err != nil {
			return err
		}
	}
	tr.doneProject(prj, bd.activity(), time.Since(start))
	return nil
}

func (bd *Builder) NamedGoals(prj *Project, names ...string) error {
	var gs []*Goal
	for _, n := range names {
		g := prj.FindGoal(n)
		if g == nil {
			return fmt.Errorf("no goal named '%s' in project '%s'", n, prj.String())
		}
		gs = append(gs, g)
	}
	return bd.Goals(gs...)
}

func (bd *Builder) activity() string {
	if bd.DryRun {
		return "dry-run building"
	}
	return "building"
}

func (bd *Builder) buildGoal(tr *Trace, g *Goal) error {
	if g.lastBID >= bd.bid {
		return nil
	}
	g.lastBID = bd.bid

	tr = tr.push(g)
	tr.checkGoal(g)
	for _, act := range g.ResultOf() {
		for _, pre := range act.Premises() {
			if err := bd.buildGoal(tr, pre); err != nil {
				return err
			}
		}
	}
	for _, act := range g.ResultOf() {
		atr := tr.push(act)
		if bd.DryRun {
			atr.skipAction(act)
			continue
		}
		if err := act.Run(atr, bd.env); err != nil {
			return fmt.Errorf("goal %s: %w", g, err)
		}
		if err := atr.Ctx().Err(); err != nil {
			return err
		}
	}
	return nil
}

type BuildTracer interface {
	TracerCommon

	RunAction(*Trace, *Action)
	RunImplicitAction(*Trace, *Action)
	SkipAction(*Trace, *Action)

	CheckGoal(t *Trace, g *Goal)
}
