package qrgenmk

import (
	"git.fractalqb.de/fractalqb/qrgenmk/haxe"
	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
	"git.fractalqb.de/fractalqb/qrgenmk/mkfs"
)

// Plan creates the project that builds the library as configured by cfg.
// Actions report the build states they reach to states.
//
// The output directory is the only removable goal. For a clean config, the
// plan only has the output directory.
func Plan(cfg *BuildConfig, states *States) (*mkcore.Project, error) {
	prj := mkcore.NewProject(cfg.Root())
	out, err := prj.Goal(mkfs.Directory(cfg.OutDir()))
	if err != nil {
		return nil, err
	}
	out.Removable = true
	if _, err = out.By(mkfs.MkDir{}); err != nil {
		return nil, err
	}
	if cfg.Clean() {
		return prj, nil
	}

	tmpFile, libFile := mkfs.File(cfg.TmpPath()), mkfs.File(cfg.OutPath())
	tmp, err := prj.Goal(tmpFile)
	if err != nil {
		return nil, err
	}
	scrub, err := prj.NewAction(
		[]*mkcore.Goal{out},
		[]*mkcore.Goal{tmp},
		reach{mkfs.Scrub{Stale: []mkfs.Artefact{libFile}}, DirPrepared, states},
	)
	if err != nil {
		return nil, err
	}
	scrub.IgnoreError = true

	compile := &haxe.Compiler{
		Exe:      cfg.Compiler(),
		Switch:   cfg.Target().Switch(),
		Out:      cfg.CompilerOut(),
		Sources:  DefaultSources,
		Package:  DefaultPackage,
		Define:   cfg.Define(),
		Excludes: DefaultExcludes,
	}
	if _, err = tmp.By(reach{compile, Compiled, states}, out); err != nil {
		return nil, err
	}

	relocate := mkfs.Relocate{From: mkfs.File(cfg.CompilerOut())}
	if cfg.Target().Archive() {
		relocate = mkfs.Relocate{
			From: mkfs.File(cfg.ArchivePath()),
			Drop: []mkfs.Artefact{mkfs.Directory(cfg.CompilerOut())},
		}
	}
	if _, err = tmp.By(reach{relocate, Renamed, states}, out); err != nil {
		return nil, err
	}

	lib, err := prj.Goal(libFile)
	if err != nil {
		return nil, err
	}
	if hdrPath := cfg.HeaderPath(); hdrPath != "" {
		hdr, err := prj.Goal(mkfs.File(hdrPath))
		if err != nil {
			return nil, err
		}
		if _, err = lib.By(reach{mkfs.Concat{}, HeaderApplied, states}, hdr, tmp); err != nil {
			return nil, err
		}
	} else if _, err = lib.By(mkfs.Relocate{From: tmpFile}, tmp); err != nil {
		return nil, err
	}
	discard, err := prj.NewAction(
		[]*mkcore.Goal{tmp},
		[]*mkcore.Goal{lib},
		mkfs.Discard{Paths: []mkfs.Artefact{tmpFile}},
	)
	if err != nil {
		return nil, err
	}
	discard.IgnoreError = true
	return prj, nil
}

// reach marks state as reached in states when its operation succeeded or
// when the action ignores errors.
type reach struct {
	mkcore.Operation
	state  State
	states *States
}

func (r reach) Do(tr *mkcore.Trace, a *mkcore.Action, env *mkcore.Env) error {
	err := r.Operation.Do(tr, a, env)
	if err == nil || a.IgnoreError {
		r.states.Reach(r.state)
		tr.Debug("reached `state`", `state`, r.state.String())
	}
	return err
}
