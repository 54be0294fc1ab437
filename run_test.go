package qrgenmk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/qrgenmk/haxe"
	"git.fractalqb.de/fractalqb/qrgenmk/internal/mktest"
	"git.fractalqb.de/fractalqb/qrgenmk/mkcore"
	"git.fractalqb.de/fractalqb/qrgenmk/target"
	"git.fractalqb.de/fractalqb/testerr"
)

// fakeHaxe writes its language switch to the output path. For -java it
// creates the output directory with the nested archive, like haxe does.
const fakeHaxe = `#!/bin/sh
case "$1" in
-java)
	mkdir -p "$2"
	printf 'JAR' > "$2/$(basename "$2").jar"
	;;
*)
	printf 'BODY %s\n' "$1" > "$2"
	;;
esac
`

func testRoot(t *testing.T, script string) (root, exe string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler needs a POSIX shell")
	}
	root = t.TempDir()
	exe = filepath.Join(t.TempDir(), "haxe")
	testerr.Shall(os.WriteFile(exe, []byte(script), 0755)).BeNil(t)
	for _, h := range []string{"py", "lua", "txt"} {
		hdr := filepath.Join(root, "Append_To_Beginning."+h)
		testerr.Shall(os.WriteFile(hdr, []byte("HEADER "+h+"\n"), 0666)).BeNil(t)
	}
	return root, exe
}

func testRun(t *testing.T, root, exe string, args ...string) (*States, error) {
	t.Helper()
	cfg := testerr.Shall1(ParseArgs(runtime.GOOS, args, WithRoot(root), WithCompiler(exe))).BeNil(t)
	env := &mkcore.Env{Out: &strings.Builder{}, Err: &strings.Builder{}}
	return Run(context.Background(), cfg, mktest.Tracer{T: t}, RunOptions{Env: env})
}

func readOut(t *testing.T, root, name string) string {
	t.Helper()
	data := testerr.Shall1(os.ReadFile(filepath.Join(root, "out", name))).BeNil(t)
	return string(data)
}

func assertGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s exists (%v)", path, err)
	}
}

func TestRun_python(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	states, err := testRun(t, root, exe, "--python", "PY")
	testerr.Shall(err).BeNil(t)
	if s := readOut(t, root, "QRGenerator.py"); s != "HEADER py\nBODY --python\n" {
		t.Errorf("library content '%s'", s)
	}
	assertGone(t, filepath.Join(root, "out", "build.tmp"))
	want := []State{Start, ArgsParsed, OutputPlanned, DirPrepared, Compiled, Renamed, HeaderApplied, Done}
	if p := states.Path(); !slices.Equal(p, want) {
		t.Errorf("states %s", states)
	}
}

func TestRun_javaArchive(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	states, err := testRun(t, root, exe, "-java", "JVM")
	testerr.Shall(err).BeNil(t)
	jar := filepath.Join(root, "out", "QRGenerator.jar")
	st := testerr.Shall1(os.Stat(jar)).BeNil(t)
	if st.IsDir() {
		t.Fatal("jar is still the compiler's directory")
	}
	if s := readOut(t, root, "QRGenerator.jar"); s != "JAR" {
		t.Errorf("jar content '%s'", s)
	}
	assertGone(t, filepath.Join(root, "out", "build.tmp"))
	if states.Has(HeaderApplied) {
		t.Error("java has no header")
	}
	if !states.Has(Done) {
		t.Errorf("not done: %s", states)
	}
}

func TestRun_outputNames(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	tests := []struct {
		args   []string
		name   string
		header string
	}{
		{[]string{"-cs", "CS"}, "QRGenerator.dll", ""},
		{[]string{"-hl", "HL"}, "QRGenerator-lib.hl", ""},
		{[]string{"-lua", "LUA"}, "QRGenerator.lua", "HEADER lua\n"},
		{[]string{"-js", "JS_BROWSER"}, "QRGenerator-browser.js", "HEADER txt\n"},
		{[]string{"-js", "JS_WSH"}, "QRGenerator-wsh.js", "HEADER txt\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			testerr.Shall1(testRun(t, root, exe, test.args...)).BeNil(t)
			want := test.header + "BODY " + test.args[0] + "\n"
			if s := readOut(t, root, test.name); s != want {
				t.Errorf("library content '%s', want '%s'", s, want)
			}
		})
	}
}

func TestRun_replacesStaleOutput(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	out := filepath.Join(root, "out")
	testerr.Shall(os.MkdirAll(filepath.Join(out, "build.tmp"), 0777)).BeNil(t)
	testerr.Shall(os.WriteFile(filepath.Join(out, "QRGenerator.dll"), []byte("old"), 0666)).BeNil(t)
	testerr.Shall1(testRun(t, root, exe, "-cs", "CS")).BeNil(t)
	if s := readOut(t, root, "QRGenerator.dll"); s != "BODY -cs\n" {
		t.Errorf("library content '%s'", s)
	}
}

func TestRun_clean(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	testerr.Shall1(testRun(t, root, exe, "-cs", "CS")).BeNil(t)
	states, err := testRun(t, root, exe, "CLEAN")
	testerr.Shall(err).BeNil(t)
	assertGone(t, filepath.Join(root, "out"))
	if p := states.Path(); !slices.Equal(p, []State{Start, CleanOut, Done}) {
		t.Errorf("clean states %s", states)
	}
	testerr.Shall1(os.Stat(filepath.Join(root, "Append_To_Beginning.py"))).BeNil(t)
}

func TestRun_compilerFails(t *testing.T) {
	root, exe := testRoot(t, "#!/bin/sh\necho 'Type not found' >&2\nexit 7\n")
	states, err := testRun(t, root, exe, "-lua", "LUA")
	if code := haxe.ExitCode(err); code != 7 {
		t.Fatalf("exit code %d from %v", code, err)
	}
	if states.Has(Compiled) || states.Has(Done) {
		t.Errorf("failed build reached %s", states)
	}
	if !states.Has(DirPrepared) {
		t.Errorf("directory not prepared: %s", states)
	}
}

func TestRun_missingHeader(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	testerr.Shall(os.Remove(filepath.Join(root, "Append_To_Beginning.py"))).BeNil(t)
	states, err := testRun(t, root, exe, "--python", "PY")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("unexpected error: %v", err)
	}
	if states.Has(HeaderApplied) {
		t.Errorf("header applied: %s", states)
	}
}

func TestRun_dryRun(t *testing.T) {
	root, exe := testRoot(t, fakeHaxe)
	cfg := testerr.Shall1(ParseArgs(runtime.GOOS, []string{"-hl", "HL"}, WithRoot(root), WithCompiler(exe))).BeNil(t)
	states, err := Run(context.Background(), cfg, mktest.Tracer{T: t}, RunOptions{DryRun: true})
	testerr.Shall(err).BeNil(t)
	assertGone(t, filepath.Join(root, "out"))
	if states.Has(Done) {
		t.Error("dry run reached DONE")
	}
}

func TestParseArgs(t *testing.T) {
	cfg := testerr.Shall1(ParseArgs("linux", []string{"-js", "JS_WSH"})).BeNil(t)
	if cfg.Target() != target.JSWSH {
		t.Errorf("target %s", cfg.Target())
	}
	if s := cfg.PlatformSwitch(); s != "-D JS_WSH" {
		t.Errorf("platform switch '%s'", s)
	}
	if p := cfg.OutPath(); p != "out/QRGenerator-wsh.js" {
		t.Errorf("out path '%s'", p)
	}
	if p := cfg.TmpPath(); p != "out/build.tmp" {
		t.Errorf("tmp path '%s'", p)
	}

	cfg = testerr.Shall1(ParseArgs("windows", []string{"-java", "JVM"})).BeNil(t)
	if p := cfg.ArchivePath(); p != `out\QRGenerator.jar\QRGenerator.jar.jar` {
		t.Errorf("archive path '%s'", p)
	}

	cfg = testerr.Shall1(ParseArgs("darwin", []string{"CLEAN"})).BeNil(t)
	if !cfg.Clean() {
		t.Error("not a clean config")
	}

	for _, args := range [][]string{nil, {"-cs"}, {"-cs", "A", "B"}} {
		if _, err := ParseArgs("linux", args); !errors.Is(err, ErrUsage) {
			t.Errorf("args %q: unexpected error %v", args, err)
		}
	}
	if _, err := ParseArgs("linux", []string{"-php", "X"}); !errors.Is(err, target.ErrUnknownLanguage) {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := ParseArgs("plan9", []string{"-cs", "X"}); !errors.Is(err, target.ErrUnsupportedPlatform) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestPlan_dot(t *testing.T) {
	cfg := testerr.Shall1(ParseArgs("linux", []string{"--python", "PY"}, WithRoot(t.TempDir()))).BeNil(t)
	prj := testerr.Shall1(Plan(cfg, NewStates())).BeNil(t)
	if ls := prj.Leafs(); len(ls) != 1 || ls[0].Name() != "out/QRGenerator.py" {
		t.Errorf("leafs: %v", ls)
	}
	var sb strings.Builder
	testerr.Shall1(prj.WriteDot(&sb)).BeNil(t)
	if !strings.Contains(sb.String(), "haxe --python out/QRGenerator.py") {
		t.Errorf("compile action missing in:\n%s", sb.String())
	}
}
