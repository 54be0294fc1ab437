package mkfs

import (
	"errors"
	"io/fs"
	"os"

	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
)

// Artefact is a removable artefact that lives in the filesystem.
type Artefact interface {
	mkcore.RemovableArtefact
	Path() string
}

func Stat(a Artefact, in *mkcore.Project) (fs.FileInfo, error) {
	p, err := in.AbsPath(a.Path())
	if err != nil {
		return nil, err
	}
	return os.Lstat(p)
}

func Exists(a Artefact, in *mkcore.Project) (bool, error) {
	_, err := Stat(a, in)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type File string

var _ Artefact = File("")

func (f File) Path() string { return string(f) }

func (f File) Name(in *mkcore.Project) string {
	n, _ := in.RelPath(f.Path())
	return n
}

func (f File) Exists(in *mkcore.Project) (bool, error) { return Exists(f, in) }

func (f File) Remove(in *mkcore.Project) error {
	p, err := in.AbsPath(f.Path())
	if err != nil {
		return err
	}
	return RemovePath(p)
}

type Directory string

var _ Artefact = Directory("")

func (d Directory) Path() string { return string(d) }

func (d Directory) Name(in *mkcore.Project) string {
	n, _ := in.RelPath(d.Path())
	return n
}

func (d Directory) Exists(in *mkcore.Project) (bool, error) { return Exists(d, in) }

func (d Directory) Remove(in *mkcore.Project) error {
	p, err := in.AbsPath(d.Path())
	if err != nil {
		return err
	}
	return RemovePath(p)
}
