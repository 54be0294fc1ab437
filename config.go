package qrgenmk

import (
	"errors"
	"fmt"

	"git.fractalqb.de/fractalqb/qrgenmk/target"
)

var ErrUsage = errors.New("usage: <language-switch|CLEAN> <platform-define>")

// Default layout of the QRGenerator project.
const (
	DefaultOutDir  = "out"
	DefaultTmpName = "build.tmp"
	DefaultPackage = "com.vis.qrcardgenerator"
)

var (
	DefaultSources  = []string{"src", "lib-src"}
	DefaultExcludes = []string{"com.sdtk", "com.field"}
)

// BuildConfig is everything a build needs to know. It is created once by
// [ParseArgs] and not changed afterwards.
type BuildConfig struct {
	root     string
	compiler string
	platform target.Platform
	clean    bool
	target   target.Target
	define   string
}

type Option func(*BuildConfig)

// WithRoot sets the project directory. The default is the current working
// directory.
func WithRoot(dir string) Option { return func(c *BuildConfig) { c.root = dir } }

// WithCompiler sets the compiler executable.
func WithCompiler(exe string) Option { return func(c *BuildConfig) { c.compiler = exe } }

// ParseArgs creates the configuration from the positional command line
// arguments for a build on OS goos.
func ParseArgs(goos string, args []string, opts ...Option) (*BuildConfig, error) {
	platform, err := target.DetectPlatform(goos)
	if err != nil {
		return nil, err
	}
	cfg := &BuildConfig{platform: platform}
	for _, opt := range opts {
		opt(cfg)
	}
	switch {
	case len(args) == 0 || len(args) > 2:
		return nil, fmt.Errorf("%w: got %d arguments", ErrUsage, len(args))
	case args[0] == target.CleanSwitch:
		cfg.clean = true
		return cfg, nil
	case len(args) != 2:
		return nil, fmt.Errorf("%w: missing platform define", ErrUsage)
	}
	if cfg.target, err = target.Parse(args[0], args[1]); err != nil {
		return nil, err
	}
	cfg.define = args[1]
	return cfg, nil
}

func (c *BuildConfig) Root() string              { return c.root }
func (c *BuildConfig) Compiler() string          { return c.compiler }
func (c *BuildConfig) Platform() target.Platform { return c.platform }

// Clean is true if the build output shall be removed instead of built.
func (c *BuildConfig) Clean() bool { return c.clean }

// Target must not be used when c is a clean config.
func (c *BuildConfig) Target() target.Target { return c.target }

func (c *BuildConfig) Define() string { return c.define }

// PlatformSwitch is the define as it would read on the compiler's command
// line.
func (c *BuildConfig) PlatformSwitch() string { return "-D " + c.define }

func (c *BuildConfig) OutputName() string { return c.target.OutputName() }

func (c *BuildConfig) OutDir() string { return DefaultOutDir }

func (c *BuildConfig) OutPath() string {
	return c.platform.Join(DefaultOutDir, c.OutputName())
}

func (c *BuildConfig) TmpPath() string {
	return c.platform.Join(DefaultOutDir, DefaultTmpName)
}

// HeaderPath is the file to put in front of the build output or "".
func (c *BuildConfig) HeaderPath() string { return c.target.Header() }

// CompilerOut is where the compiler writes its output. For archive targets
// this is a directory.
func (c *BuildConfig) CompilerOut() string { return c.OutPath() }

// ArchivePath is where an archive target's compiler output nests the
// library archive.
func (c *BuildConfig) ArchivePath() string {
	name := c.OutputName()
	return c.platform.Join(DefaultOutDir, name, name+c.target.Suffix())
}

func (c *BuildConfig) String() string {
	if c.clean {
		return target.CleanSwitch
	}
	return fmt.Sprintf("%s %s", c.target, c.PlatformSwitch())
}
