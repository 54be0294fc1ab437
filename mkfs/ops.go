package mkfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
)

// MkDir creates the [Directory] results of its action. Failing to create a
// directory is traced and does not fail the action; whatever needs the
// directory will fail later with a more specific error.
type MkDir struct {
	Mode fs.FileMode
}

var _ mkcore.Operation = MkDir{}

func (md MkDir) Describe(a *mkcore.Action, _ *mkcore.Env) string {
	return "mkdir " + resultNames(a)
}

func (md MkDir) Do(tr *mkcore.Trace, a *mkcore.Action, _ *mkcore.Env) error {
	prj := a.Project()
	for _, res := range a.Results() {
		switch res := res.Artefact.(type) {
		case mkcore.Abstract:
			// ignore
		case Directory:
			path, err := prj.AbsPath(res.Path())
			if err != nil {
				return err
			}
			tr.Debug("create `directory`", `directory`, path)
			if err := EnsureDir(path, md.Mode); err != nil {
				tr.Warn("cannot create `directory`: `error`",
					slog.String(`directory`, path),
					slog.String(`error`, err.Error()),
				)
			}
		default:
			return fmt.Errorf("illegal mkdir result: %T", res)
		}
	}
	return nil
}

// Scrub removes the artefacts of its action's results and the Stale
// artefacts before anything else builds them.
type Scrub struct {
	Stale []Artefact
}

var _ mkcore.Operation = Scrub{}

func (sc Scrub) Describe(a *mkcore.Action, _ *mkcore.Env) string {
	return "scrub " + resultNames(a)
}

func (sc Scrub) Do(tr *mkcore.Trace, a *mkcore.Action, _ *mkcore.Env) error {
	prj := a.Project()
	var atfs []Artefact
	for _, res := range a.Results() {
		switch res := res.Artefact.(type) {
		case mkcore.Abstract:
			// ignore
		case Artefact:
			atfs = append(atfs, res)
		default:
			return fmt.Errorf("illegal scrub result: %T", res)
		}
	}
	atfs = append(atfs, sc.Stale...)
	return removeAll(tr, prj, atfs)
}

// Relocate moves From to the single [File] result of its action. Then the
// Drop artefacts are removed. Relocate with Drop is used to pull a file out of
// a directory that is not needed any longer.
type Relocate struct {
	From Artefact
	Drop []Artefact
}

var _ mkcore.Operation = Relocate{}

func (rl Relocate) Describe(a *mkcore.Action, _ *mkcore.Env) string {
	if rl.From == nil {
		return "relocate -> " + resultNames(a)
	}
	return fmt.Sprintf("relocate %s -> %s", rl.From.Path(), resultNames(a))
}

func (rl Relocate) Do(tr *mkcore.Trace, a *mkcore.Action, _ *mkcore.Env) error {
	if rl.From == nil {
		return errors.New("relocate without source")
	}
	dst, err := singleFile(a)
	if err != nil {
		return err
	}
	prj := a.Project()
	srcPath, err := prj.AbsPath(rl.From.Path())
	if err != nil {
		return err
	}
	dstPath, err := prj.AbsPath(dst.Path())
	if err != nil {
		return err
	}
	tr.Debug("move `src` -> `dst`",
		slog.String(`src`, srcPath),
		slog.String(`dst`, dstPath),
	)
	if err := Move(srcPath, dstPath); err != nil {
		return err
	}
	return removeAll(tr, prj, rl.Drop)
}

// Concat writes all premise files of its action, in order, to its single
// [File] result. The first premise replaces the content of the result, all
// others are appended.
type Concat struct{}

var _ mkcore.Operation = Concat{}

func (Concat) Describe(a *mkcore.Action, _ *mkcore.Env) string {
	if a == nil {
		return "concat"
	}
	names := make([]string, len(a.Premises()))
	for i, p := range a.Premises() {
		names[i] = p.Name()
	}
	return fmt.Sprintf("concat %s -> %s", strings.Join(names, "+"), resultNames(a))
}

func (Concat) Do(tr *mkcore.Trace, a *mkcore.Action, _ *mkcore.Env) error {
	dst, err := singleFile(a)
	if err != nil {
		return err
	}
	prj := a.Project()
	dstPath, err := prj.AbsPath(dst.Path())
	if err != nil {
		return err
	}
	appending := false
	for _, pre := range a.Premises() {
		src, ok := pre.Artefact.(File)
		if !ok {
			if _, ok := pre.Artefact.(mkcore.Abstract); ok {
				continue
			}
			return fmt.Errorf("concat: illegal premise artefact type %T", pre.Artefact)
		}
		srcPath, err := prj.AbsPath(src.Path())
		if err != nil {
			return err
		}
		tr.Debug("concat: `src` -> `dst`",
			slog.String(`src`, srcPath),
			slog.String(`dst`, dstPath),
			slog.Bool(`append`, appending),
		)
		if err := Append(srcPath, dstPath, appending); err != nil {
			return err
		}
		appending = true
	}
	if !appending {
		return fmt.Errorf("concat %s: no premise files", dst.Path())
	}
	return nil
}

// Discard removes Paths once the action's results are reached.
type Discard struct {
	Paths []Artefact
}

var _ mkcore.Operation = Discard{}

func (dc Discard) Describe(*mkcore.Action, *mkcore.Env) string {
	names := make([]string, len(dc.Paths))
	for i, p := range dc.Paths {
		names[i] = p.Path()
	}
	return "discard " + strings.Join(names, ", ")
}

func (dc Discard) Do(tr *mkcore.Trace, a *mkcore.Action, _ *mkcore.Env) error {
	return removeAll(tr, a.Project(), dc.Paths)
}

// removeAll removes all atfs. A failure is returned only after all
// artefacts were tried.
func removeAll(tr *mkcore.Trace, prj *mkcore.Project, atfs []Artefact) error {
	var errs []error
	for _, atf := range atfs {
		tr.Debug("remove `path`", `path`, atf.Path())
		if err := atf.Remove(prj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func singleFile(a *mkcore.Action) (File, error) {
	var res []File
	for _, r := range a.Results() {
		switch atf := r.Artefact.(type) {
		case mkcore.Abstract:
			continue
		case File:
			res = append(res, atf)
		default:
			return "", fmt.Errorf("expect file result, have %T", r.Artefact)
		}
	}
	if len(res) != 1 {
		return "", fmt.Errorf("expect one file result, have %d", len(res))
	}
	return res[0], nil
}

func resultNames(a *mkcore.Action) string {
	if a == nil {
		return "…"
	}
	names := make([]string, len(a.Results()))
	for i, r := range a.Results() {
		names[i] = r.Name()
	}
	return strings.Join(names, ", ")
}
