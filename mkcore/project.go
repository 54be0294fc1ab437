package mkcore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"sync"
)

type BuildID = uint64

type Project struct {
	Dir string

	sync.Mutex

	goals     map[string]*Goal
	order     []*Goal
	actions   []*Action
	lastBuild BuildID
}

// NewProject creates a project rooted in dir. An empty dir is the current
// working directory.
func NewProject(dir string) *Project {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Project{
		Dir:   dir,
		goals: make(map[string]*Goal),
	}
}

// Goal returns the goal for atf. Artefacts are identified by name, i.e. if prj
// already has a goal for an artefact with the same name, that goal is
// returned.
func (prj *Project) Goal(atf Artefact) (*Goal, error) {
	if atf == nil {
		atf = Abstract(fmt.Sprintf("artefact-%d", len(prj.goals)))
	}
	name := atf.Name(prj)
	if g := prj.goals[name]; g != nil {
		if ta, tg := reflect.TypeOf(atf), reflect.TypeOf(g.Artefact); ta != tg {
			return nil, fmt.Errorf("goal '%s' already has artefact type %s, not %s",
				name,
				tg,
				ta,
			)
		}
		return g, nil
	}
	g := &Goal{
		Artefact: atf,
		prj:      prj,
	}
	prj.goals[name] = g
	prj.order = append(prj.order, g)
	return g, nil
}

// Goals appends all goals of prj in the order they were created to addTo.
func (prj *Project) Goals(addTo []*Goal) []*Goal {
	if len(prj.order) == 0 {
		return addTo
	}
	addTo = slices.Grow(addTo, len(prj.order))
	return append(addTo, prj.order...)
}

func (prj *Project) FindGoal(name string) *Goal { return prj.goals[name] }

func (prj *Project) Actions() []*Action { return prj.actions }

func (prj *Project) String() string {
	tmp := prj.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp)
}

// RelPath returns p relative to the project directory.
func (prj *Project) RelPath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	dir, err := filepath.Abs(prj.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Rel(dir, p)
}

// AbsPath returns the absolute path of p. Relative paths are relative to the
// project directory.
func (prj *Project) AbsPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(filepath.Join(prj.Dir, p))
}

// Leafs returns the goals that are not premise of any action.
func (prj *Project) Leafs() (ls []*Goal) {
	for _, g := range prj.order {
		if len(g.premiseOf) == 0 {
			ls = append(ls, g)
		}
	}
	return ls
}

// Roots returns the goals that are not result of any action.
func (prj *Project) Roots() (rs []*Goal) {
	for _, g := range prj.order {
		if len(g.resultOf) == 0 {
			rs = append(rs, g)
		}
	}
	return rs
}

// NewAction creates a new [Action] in project prj. There must be at least one
// result. All premises and results must belong to the same project prj.
func (prj *Project) NewAction(premises, results []*Goal, op Operation) (*Action, error) {
	if len(results) == 0 {
		desc := "implicit action"
		if op != nil {
			desc = op.Describe(nil, nil)
		}
		return nil, fmt.Errorf("creating %s without result", desc)
	}
	if err := prj.consistentPrj(premises, results); err != nil {
		return nil, err
	}
	a := &Action{
		Op:       op,
		prj:      prj,
		premises: premises,
		results:  results,
	}
	for _, p := range premises {
		p.premiseOf = append(p.premiseOf, a)
	}
	for _, r := range results {
		r.resultOf = append(r.resultOf, a)
	}
	prj.actions = append(prj.actions, a)
	return a, nil
}

// LockBuild locks prj and starts a new build. The caller must unlock prj when
// the build is done.
func (prj *Project) LockBuild() BuildID {
	prj.Lock()
	prj.lastBuild++
	return prj.lastBuild
}

func (prj *Project) Build() BuildID { return prj.lastBuild }

func escDotID(id string) string {
	return strings.ReplaceAll(id, "\"", "\\\"")
}

// WriteDot writes the goals and actions of prj as graphviz digraph to w.
func (prj *Project) WriteDot(w io.Writer) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			default:
				panic(p)
			}
		}
	}()
	akku := func(p int, err error) {
		n += p
		if err != nil {
			panic(err)
		}
	}
	akku(fmt.Fprintf(w, "digraph \"%s\" {\n\trankdir=\"LR\"\n", escDotID(prj.String())))
	for _, g := range prj.order {
		tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
		var style string
		if len(g.resultOf) == 0 || len(g.premiseOf) == 0 {
			style = ",style=bold"
		}
		akku(fmt.Fprintf(w, "\t\"%p\" [shape=record%s,label=\"{%s|%s}\"];\n",
			g,
			style,
			tn,
			escDotID(g.Name()),
		))
		for i, a := range g.resultOf {
			if a.Op == nil {
				akku(fmt.Fprintf(w, "\t\"%p\" [shape=none,label=\"implicit\"];\n", a))
			} else {
				style := "rounded"
				if a.IgnoreError {
					style = "\"rounded,dashed\""
				}
				akku(fmt.Fprintf(w, "\t\"%p\" [shape=box,style=%s,label=\"%s\"];\n",
					a,
					style,
					escDotID(a.String()),
				))
			}
			akku(fmt.Fprintf(w, "\t\"%p\" -> \"%p\" [label=%d];\n", a, g, i+1))
		}
	}
	for _, act := range prj.actions {
		for _, p := range act.premises {
			akku(fmt.Fprintf(w, "\t\"%p\" -> \"%p\";\n", p, act))
		}
	}
	akku(fmt.Fprintln(w, "}"))
	return
}

func (prj *Project) consistentPrj(premises, results []*Goal) error {
	for _, g := range premises {
		if p := g.Project(); p != prj {
			return fmt.Errorf("premise '%s' not in project '%s'",
				g.Name(),
				prj.String(),
			)
		}
	}
	for _, g := range results {
		if p := g.Project(); p != prj {
			return fmt.Errorf("result '%s' not in project '%s'",
				g.Name(),
				prj.String(),
			)
		}
	}
	return nil
}
