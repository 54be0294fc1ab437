// Package mkcore implements the model of a buildable project. The core
// concepts are [Project], [Goal] and [Action]. Goals are reached by running
// the actions they result from, each of which delegates the actual work to
// an [Operation]. A [Builder] walks the goals of a project premises first and
// reports what it does to a [Tracer].
//
// mkcore never considers a goal up to date. Every build runs all actions of
// all involved goals in the order they were added.
package mkcore
