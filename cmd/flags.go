package cmd

import (
	"errors"

	"github.com/spf13/pflag"

	"project-setup/internal/dispatch"
)

// operationFlags mirror each dispatcher operation as a root-level flag.
type operationFlags struct {
	cacheShow       bool
	cacheEdit       bool
	cacheGenerate   bool
	cacheGet        string
	projectGenerate string
	buildType       string
	projectBuild    string
	projectInstall  string
	projectClean    bool
}

func (o *operationFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.cacheShow, "cache-show", false, "Print cache contents")
	fs.BoolVar(&o.cacheEdit, "cache-edit", false, "Edit cache interactively")
	fs.BoolVar(&o.cacheGenerate, "cache-generate", false, "Generate the cache; an optional argument sets the vcpkg root")
	fs.StringVar(&o.cacheGet, "cache-get", "", "Print the cached value of `key`")
	fs.StringVar(&o.projectGenerate, "project-generate", "", "Configure the project with `preset` (nt/msvc, unix/clang, unix/gcc); a build type may follow")
	fs.StringVar(&o.buildType, "build-type", "", "Build type for --project-generate (Debug, Release)")
	fs.StringVar(&o.projectBuild, "project-build", "", "Build the project with `build-type` (Debug, Release)")
	fs.StringVar(&o.projectInstall, "project-install", "", "Install the project with `build-type` (Debug, Release)")
	fs.BoolVar(&o.projectClean, "project-clean", false, "Remove generated build and install trees")
}

var errTooManyOperations = errors.New("only one operation flag may be given")

// request converts the parsed flags into a dispatcher request. ok is false
// when no operation flag was given.
func (o *operationFlags) request(fs *pflag.FlagSet, args []string) (dispatch.Request, bool, error) {
	var reqs []dispatch.Request
	add := func(name string, req dispatch.Request) {
		if fs.Changed(name) {
			reqs = append(reqs, req)
		}
	}

	var root string
	if len(args) > 0 {
		root = args[0]
	}
	add("cache-show", dispatch.Request{Op: dispatch.OpShowSettings})
	add("cache-edit", dispatch.Request{Op: dispatch.OpEditSettings})
	add("cache-generate", dispatch.Request{Op: dispatch.OpGenerateCache, VcpkgRoot: root})
	add("cache-get", dispatch.Request{Op: dispatch.OpGetSetting, Key: o.cacheGet})
	add("project-generate", dispatch.Request{Op: dispatch.OpConfigure, Preset: o.projectGenerate, BuildType: o.buildType})
	add("project-build", dispatch.Request{Op: dispatch.OpBuild, BuildType: o.projectBuild})
	add("project-install", dispatch.Request{Op: dispatch.OpInstall, BuildType: o.projectInstall})
	add("project-clean", dispatch.Request{Op: dispatch.OpClean})

	switch {
	case len(reqs) == 0:
		return dispatch.Request{}, false, nil
	case len(reqs) > 1:
		return dispatch.Request{}, false, errTooManyOperations
	}

	req := reqs[0]
	// --cache-generate takes an optional vcpkg root and --project-generate an
	// optional build type when --build-type is absent.
	maxArgs := 0
	switch {
	case req.Op == dispatch.OpGenerateCache:
		maxArgs = 1
	case req.Op == dispatch.OpConfigure && !fs.Changed("build-type"):
		maxArgs = 1
		req.BuildType = root
	}
	if len(args) > maxArgs {
		return dispatch.Request{}, false, errors.New("unexpected arguments")
	}
	return req, true, nil
}
