package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"project-setup/internal/dispatch"
)

func parseOperationFlags(t *testing.T, argv ...string) (dispatch.Request, bool, error) {
	t.Helper()
	var o operationFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.register(fs)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("Parse(%v) error = %v", argv, err)
	}
	return o.request(fs, fs.Args())
}

func TestOperationFlags(t *testing.T) {
	tests := []struct {
		argv []string
		want dispatch.Request
	}{
		{[]string{"--cache-show"}, dispatch.Request{Op: dispatch.OpShowSettings}},
		{[]string{"--cache-edit"}, dispatch.Request{Op: dispatch.OpEditSettings}},
		{[]string{"--cache-generate"}, dispatch.Request{Op: dispatch.OpGenerateCache}},
		{[]string{"--cache-generate", `C:\vcpkg`}, dispatch.Request{Op: dispatch.OpGenerateCache, VcpkgRoot: `C:\vcpkg`}},
		{[]string{"--cache-get", "build_type"}, dispatch.Request{Op: dispatch.OpGetSetting, Key: "build_type"}},
		{
			[]string{"--project-generate", "unix/clang", "--build-type", "Release"},
			dispatch.Request{Op: dispatch.OpConfigure, Preset: "unix/clang", BuildType: "Release"},
		},
		{
			[]string{"--project-generate", "unix/clang", "Release"},
			dispatch.Request{Op: dispatch.OpConfigure, Preset: "unix/clang", BuildType: "Release"},
		},
		{[]string{"--project-generate", "unix/gcc"}, dispatch.Request{Op: dispatch.OpConfigure, Preset: "unix/gcc"}},
		{[]string{"--project-build", "Debug"}, dispatch.Request{Op: dispatch.OpBuild, BuildType: "Debug"}},
		{[]string{"--project-install", "Release"}, dispatch.Request{Op: dispatch.OpInstall, BuildType: "Release"}},
		{[]string{"--project-clean"}, dispatch.Request{Op: dispatch.OpClean}},
	}
	for _, tt := range tests {
		got, ok, err := parseOperationFlags(t, tt.argv...)
		if err != nil || !ok {
			t.Errorf("request(%v) = ok %v, err %v", tt.argv, ok, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("request(%v) mismatch (-want +got):\n%s", tt.argv, diff)
		}
	}
}

func TestOperationFlagsNone(t *testing.T) {
	_, ok, err := parseOperationFlags(t)
	if ok || err != nil {
		t.Errorf("request() = ok %v, err %v; want no operation", ok, err)
	}
}

func TestOperationFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"--cache-show", "--project-clean"},
		{"--project-build", "Debug", "extra"},
		{"--cache-generate", "a", "b"},
		{"--project-generate", "unix/gcc", "--build-type", "Debug", "Release"},
		{"--project-generate", "unix/gcc", "Debug", "extra"},
	}
	for _, argv := range tests {
		if _, _, err := parseOperationFlags(t, argv...); err == nil {
			t.Errorf("request(%v) expected error", argv)
		}
	}
}

func TestFirstArg(t *testing.T) {
	if got := firstArg(nil); got != "" {
		t.Errorf("firstArg(nil) = %q", got)
	}
	if got := firstArg([]string{"Release", "x"}); got != "Release" {
		t.Errorf("firstArg() = %q", got)
	}
}
