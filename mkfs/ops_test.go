package mkfs_test

import (
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/qrgenmk/internal/mktest"
	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
	"git.fractalqb.de/fractalqb/qrgenmk/mkfs"
	"git.fractalqb.de/fractalqb/testerr"
)

func build(t *testing.T, prj *mkcore.Project) error {
	t.Helper()
	bd := testerr.Shall1(mkcore.NewBuilder(mktest.Trace(t), nil)).BeNil(t)
	return bd.Project(prj)
}

func TestConcat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hdr.txt"), "// header\n")
	writeFile(t, filepath.Join(dir, "out", "body.tmp"), "body\n")
	writeFile(t, filepath.Join(dir, "out", "lib.js"), "stale\n")

	prj := mkcore.NewProject(dir)
	hdr := testerr.Shall1(prj.Goal(mkfs.File("hdr.txt"))).BeNil(t)
	body := testerr.Shall1(prj.Goal(mkfs.File("out/body.tmp"))).BeNil(t)
	lib := testerr.Shall1(prj.Goal(mkfs.File("out/lib.js"))).BeNil(t)
	testerr.Shall1(lib.By(mkfs.Concat{}, hdr, body)).BeNil(t)
	testerr.Shall(build(t, prj)).BeNil(t)

	if s := readFile(t, filepath.Join(dir, "out", "lib.js")); s != "// header\nbody\n" {
		t.Errorf("concatenated '%s'", s)
	}
}

func TestRelocate_drop(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "out", "lib.jar", "lib.jar.jar"), "JAR")

	prj := mkcore.NewProject(dir)
	tmp := testerr.Shall1(prj.Goal(mkfs.File("out/build.tmp"))).BeNil(t)
	testerr.Shall1(tmp.By(mkfs.Relocate{
		From: mkfs.File("out/lib.jar/lib.jar.jar"),
		Drop: []mkfs.Artefact{mkfs.Directory("out/lib.jar")},
	})).BeNil(t)
	testerr.Shall(build(t, prj)).BeNil(t)

	if s := readFile(t, filepath.Join(dir, "out", "build.tmp")); s != "JAR" {
		t.Errorf("relocated '%s'", s)
	}
	notExists(t, filepath.Join(dir, "out", "lib.jar"))
}

func TestScrub_MkDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "out", "build.tmp", "x"), "stale dir")
	writeFile(t, filepath.Join(dir, "out", "lib.py"), "stale")

	prj := mkcore.NewProject(dir)
	out := testerr.Shall1(prj.Goal(mkfs.Directory("out"))).BeNil(t)
	testerr.Shall1(out.By(mkfs.MkDir{})).BeNil(t)
	tmp := testerr.Shall1(prj.Goal(mkfs.File("out/build.tmp"))).BeNil(t)
	testerr.Shall1(tmp.By(mkfs.Scrub{Stale: []mkfs.Artefact{mkfs.File("out/lib.py")}}, out)).BeNil(t)
	testerr.Shall(build(t, prj)).BeNil(t)

	notExists(t, filepath.Join(dir, "out", "build.tmp"))
	notExists(t, filepath.Join(dir, "out", "lib.py"))
	if ok := testerr.Shall1(mkfs.Directory("out").Exists(prj)).BeNil(t); !ok {
		t.Error("out dir vanished")
	}
}

func TestDirectory_Clean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "out", "lib.dll"), "DLL")
	writeFile(t, filepath.Join(dir, "src", "Main.hx"), "class Main {}")

	prj := mkcore.NewProject(dir)
	out := testerr.Shall1(prj.Goal(mkfs.Directory("out"))).BeNil(t)
	testerr.Shall1(out.By(mkfs.MkDir{})).BeNil(t)
	out.Removable = true
	testerr.Shall1(prj.Goal(mkfs.Directory("src"))).BeNil(t)

	testerr.Shall(mkcore.Clean(prj, true, mktest.Trace(t))).BeNil(t)
	readFile(t, filepath.Join(dir, "out", "lib.dll"))

	testerr.Shall(mkcore.Clean(prj, false, mktest.Trace(t))).BeNil(t)
	notExists(t, filepath.Join(dir, "out"))
	readFile(t, filepath.Join(dir, "src", "Main.hx"))
}
