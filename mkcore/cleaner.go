package mkcore

import (
	"log/slog"
	"time"
)

// Clean removes the artefacts of all removable goals that are the result of
// some action. Failing to remove an artefact is traced as warning.
func Clean(prj *Project, dryrun bool, tr *Trace) error {
	prj.LockBuild()
	defer prj.Unlock()
	start := time.Now()
	tr = tr.push(prj)
	tr.startProject(prj, "cleaning")
	for _, g := range prj.Goals(nil) {
		if len(g.ResultOf()) == 0 || !g.Removable {
			continue
		}
		f, ok := g.Artefact.(RemovableArtefact)
		if !ok {
			tr.Warn("cannot remove `goal`", slog.String("goal", g.String()))
			continue
		}
		gtr := tr.push(g)
		if ok, err := f.Exists(prj); err != nil {
			gtr.Warn(err.Error())
			continue
		} else if !ok {
			continue
		}
		gtr.removeArtefact(g)
		if !dryrun {
			if err := f.Remove(prj); err != nil {
				gtr.Warn(err.Error())
			}
		}
	}
	tr.doneProject(prj, "cleaning", time.Since(start))
	return nil
}

type CleanTracer interface {
	TracerCommon

	RemoveArtefact(*Trace, *Goal)
}
