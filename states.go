package qrgenmk

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// State is a step of the build sequence. A build reaches them in the order
// they are declared, except that a clean build goes from Start to CleanOut
// and Done.
type State uint

const (
	Start State = iota
	ArgsParsed
	OutputPlanned
	DirPrepared
	Compiled
	Renamed
	HeaderApplied
	CleanOut
	Done

	stateCount
)

var stateNames = [stateCount]string{
	"START",
	"ARGS_PARSED",
	"OUTPUT_PLANNED",
	"DIR_PREPARED",
	"COMPILED",
	"RENAMED",
	"HEADER_APPLIED",
	"CLEAN",
	"DONE",
}

func (s State) String() string {
	if s >= stateCount {
		return "illegal state"
	}
	return stateNames[s]
}

// States records which states a build has reached.
type States struct {
	bits *bitset.BitSet
	last State
}

func NewStates() *States {
	res := &States{bits: bitset.New(uint(stateCount))}
	res.bits.Set(uint(Start))
	return res
}

func (ss *States) Reach(s State) {
	ss.bits.Set(uint(s))
	ss.last = s
}

func (ss *States) Has(s State) bool { return ss.bits.Test(uint(s)) }

// Last returns the state reached most recently.
func (ss *States) Last() State { return ss.last }

// Path returns the reached states in sequence order.
func (ss *States) Path() (p []State) {
	for i, ok := ss.bits.NextSet(0); ok; i, ok = ss.bits.NextSet(i + 1) {
		p = append(p, State(i))
	}
	return p
}

func (ss *States) String() string {
	var sb strings.Builder
	for i, s := range ss.Path() {
		if i > 0 {
			sb.WriteString(" → ")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
