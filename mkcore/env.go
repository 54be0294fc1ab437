package mkcore

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

// Env is the environment in which operations run. Tags are passed to
// executed commands as environment variables.
type Env struct {
	In       io.Reader
	Out, Err io.Writer

	tags    map[string]string
	xenv    []string
	xenvErr error
}

// DefaultEnv uses the process' stdio and environment. Malformed OS
// environment entries are reported to tr, if not nil.
func DefaultEnv(tr *Trace) *Env {
	env := &Env{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		tags: make(map[string]string),
	}
	for _, evar := range os.Environ() {
		k, v, _ := strings.Cut(evar, "=")
		if k == "" {
			if tr != nil {
				tr.Warn("ignoring default `env`", `env`, evar)
			}
			continue
		}
		env.tags[k] = v
	}
	return env
}

func (e *Env) Tag(key string) (string, bool) {
	v, ok := e.tags[key]
	return v, ok
}

func (e *Env) SetTag(key, val string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	e.tags[key] = val
	e.clearXEnv()
}

// SetTags sets tags from "key=value" strings. A string without '=' sets the
// key to the empty value.
func (e *Env) SetTags(env ...string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	for _, evar := range env {
		k, v, _ := strings.Cut(evar, "=")
		e.tags[k] = v
	}
	e.clearXEnv()
}

func (e *Env) DelTag(key string) {
	delete(e.tags, key)
	e.clearXEnv()
}

type NonXEnvKeys []string

func (e NonXEnvKeys) Error() string {
	return fmt.Sprintf("illegal exec env keys: %s", strings.Join(e, ", "))
}

func (NonXEnvKeys) Is(target error) bool {
	_, ok := target.(NonXEnvKeys)
	return ok
}

// ExecEnv returns the tags in the form expected by [os/exec.Cmd.Env], sorted
// by key. Tags that cannot be passed to a process are left out and reported
// as [NonXEnvKeys] error.
func (e *Env) ExecEnv() ([]string, error) {
	if e.xenv == nil {
		var errKeys []string
		keys := slices.Sorted(maps.Keys(e.tags))
		for _, k := range keys {
			switch {
			case k == "":
				errKeys = append(errKeys, `""`)
			case strings.ContainsRune(k, '='):
				errKeys = append(errKeys, k)
			default:
				e.xenv = append(e.xenv, k+"="+e.tags[k])
			}
		}
		if len(errKeys) > 0 {
			e.xenvErr = NonXEnvKeys(errKeys)
		}
	}
	return e.xenv, e.xenvErr
}

func (e *Env) clearXEnv() {
	e.xenv = nil
	e.xenvErr = nil
}
