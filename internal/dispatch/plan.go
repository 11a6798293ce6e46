package dispatch

import (
	"errors"
	"fmt"

	"project-setup/internal/config"
	"project-setup/internal/preset"
	"project-setup/internal/project"
	"project-setup/internal/runner"
	"project-setup/internal/settings"
)

// Request is a resolved user intent, from the menu or the command line.
type Request struct {
	Op        Operation
	Preset    string // configure; empty selects the configured or platform default
	BuildType string // empty uses the cached build type
	Key       string // get-setting
	VcpkgRoot string // generate-cache; empty prompts on Windows
}

// Plan describes every side effect of a project operation. Nothing in a Plan
// has happened yet.
type Plan struct {
	Confirm  string           // warning that must be acknowledged first; empty when none
	Persist  []settings.Entry // cache writes applied before any command runs
	Mkdirs   []string         // directories created before any command runs
	Commands []runner.Command // run in order, each exactly once
}

// Planner turns requests into plans. It performs no I/O.
type Planner struct {
	Presets *preset.Registry
	Tools   config.Tools
}

// Plan builds the plan for a project operation against ctx.
// req.Preset must already be resolved for OpConfigure.
func (p Planner) Plan(ctx project.Context, req Request) (Plan, error) {
	bt := string(ctx.BuildType)

	switch req.Op {
	case OpConfigure:
		ps, err := p.Presets.Lookup(req.Preset)
		if err != nil {
			return Plan{}, err
		}
		plan := Plan{
			Mkdirs: []string{ctx.BuildDir},
			Commands: []runner.Command{{
				Name: p.Tools.CMake,
				Args: ps.ConfigureArgs(ctx.SourceDir, ctx.BuildDir, ctx.ToolchainFile),
				Dir:  ctx.BuildDir,
			}},
		}
		if req.BuildType != "" {
			plan.Persist = []settings.Entry{{Key: settings.KeyBuildType, Value: bt}}
		}
		return plan, nil

	case OpBuild:
		return Plan{Commands: []runner.Command{{
			Name: p.Tools.CMake,
			Args: []string{"--build", ctx.BuildDir, "--config", bt},
			Dir:  ctx.SourceDir,
		}}}, nil

	case OpInstall:
		return Plan{Commands: []runner.Command{{
			Name: p.Tools.CMake,
			Args: []string{"--install", ctx.BuildDir, "--prefix", ctx.InstallDir, "--config", bt, "-v"},
			Dir:  ctx.SourceDir,
		}}}, nil

	case OpClean:
		return Plan{
			Confirm: cleanWarning(ctx),
			Commands: []runner.Command{
				{Name: p.Tools.Git, Args: []string{"clean", "-dfx", ctx.BuildDir}, Dir: ctx.SourceDir},
				{Name: p.Tools.Git, Args: []string{"clean", "-dfx", ctx.InstallRoot}, Dir: ctx.SourceDir},
			},
		}, nil
	}
	return Plan{}, fmt.Errorf("%s does not run project commands", req.Op)
}

func cleanWarning(ctx project.Context) string {
	return fmt.Sprintf("WARNING\n"+
		"This will remove all CMAKE project files (generated configuration, build, and install).\n"+
		"GIT CLEAN WILL BE USED ON %s AND %s\n"+
		"MAKE SURE YOU HAVE NO UNCOMMITTED CHANGES IN THESE DIRECTORIES\n",
		ctx.BuildDir, ctx.InstallRoot)
}

// Validate rejects a request whose user-supplied values are invalid,
// before anything is read, written or run.
func (p Planner) Validate(req Request) error {
	if req.BuildType != "" {
		if _, err := project.ParseBuildType(req.BuildType); err != nil {
			return err
		}
	}
	if req.Op == OpConfigure && req.Preset != "" {
		if _, err := p.Presets.Lookup(req.Preset); err != nil {
			return err
		}
	}
	if req.Op == OpGetSetting && req.Key == "" {
		return errors.New("no key specified")
	}
	return nil
}

// IsLocal reports whether err is a validation or user-abort error that leaves
// everything untouched and should not fail the process.
func IsLocal(err error) bool {
	return errors.Is(err, project.ErrInvalidBuildType) ||
		errors.Is(err, preset.ErrUnknownPreset) ||
		errors.Is(err, ErrAborted) ||
		errors.Is(err, ErrUnknownChoice)
}
