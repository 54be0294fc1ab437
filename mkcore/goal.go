package mkcore

import (
	"fmt"
	"reflect"
)

// Artefact represents the tangible outcome of a [Goal] being reached. A special
// case is the [Abstract] artefact.
type Artefact interface {
	// Name returns the name of the artefact that must be unique in the Project.
	Name(in *Project) string
}

// RemovableArtefact is an artefact that [Clean] can remove.
type RemovableArtefact interface {
	Artefact
	Exists(in *Project) (bool, error)
	Remove(in *Project) error
}

type Abstract string

var _ Artefact = Abstract("")

func (a Abstract) Name(*Project) string { return string(a) }

// A Goal is something you want to achieve in your [Project]. Each goal is
// associated with an [Artefact] that is considered available when the goal is
// reached.
//
// A goal is reached by running all actions it results from in the order they
// were created. A goal can also be the premise for other actions, which will
// not run before the goal is reached.
type Goal struct {
	Artefact Artefact

	// Removable allows [Clean] to remove the goal's artefact.
	Removable bool

	prj       *Project
	resultOf  []*Action
	premiseOf []*Action
	lastBID   BuildID
}

func (g *Goal) Project() *Project { return g.prj }

func (g *Goal) Name() string { return g.Artefact.Name(g.Project()) }

// ResultOf returns the actions that result in this goal.
func (g *Goal) ResultOf() []*Action { return g.resultOf }

// PremiseOf returns the actions that depend on g.
func (g *Goal) PremiseOf() []*Action { return g.premiseOf }

func (g *Goal) IsAbstract() bool {
	_, ok := g.Artefact.(Abstract)
	return ok
}

// By adds an action with operation op that results in g. It returns g to
// allow chaining.
func (g *Goal) By(op Operation, premises ...*Goal) (*Goal, error) {
	_, err := g.Project().NewAction(premises, []*Goal{g}, op)
	return g, err
}

func (g *Goal) String() string {
	tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
	return fmt.Sprintf("[%s]%s", g.Name(), tn)
}
