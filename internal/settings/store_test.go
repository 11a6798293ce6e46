package settings

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"project-setup/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), FileName))
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	pairs := []Entry{
		{"first_setup", "False"},
		{"", "empty key"},
		{"empty value", ""},
		{"quotes \"and\" \\slashes", "C:\\vcpkg\\root"},
		{"unicode ключ", "値 🚀"},
		{"newline\nkey", "tab\tvalue"},
	}
	for _, p := range pairs {
		if err := s.Set(p.Key, p.Value); err != nil {
			t.Fatalf("Set(%q) error = %v", p.Key, err)
		}
		got, ok, err := s.Get(p.Key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", p.Key, err)
		}
		if !ok {
			t.Fatalf("Get(%q) reported missing", p.Key)
		}
		if diff := cmp.Diff(p.Value, got); diff != "" {
			t.Errorf("Get(%q) mismatch (-want +got):\n%s", p.Key, diff)
		}
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff(pairs, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	// Missing file
	if _, ok, err := s.Get("vcpkg_root"); err != nil || ok {
		t.Fatalf("Get on missing file = ok %v, err %v; want absent, nil", ok, err)
	}

	if _, err := s.EnsureExists(); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("os_name", "posix"); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := s.Get("vcpkg_root"); err != nil || ok || v != "" {
		t.Errorf("Get(unset) = %q, %v, %v; want \"\", false, nil", v, ok, err)
	}
}

func TestEnsureExistsIdempotent(t *testing.T) {
	s := newTestStore(t)

	existed, err := s.EnsureExists()
	if err != nil {
		t.Fatal(err)
	}
	if existed {
		t.Error("first EnsureExists() reported existing file")
	}
	if err := s.Set("build_type", "Release"); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		existed, err := s.EnsureExists()
		if err != nil {
			t.Fatal(err)
		}
		if !existed {
			t.Errorf("EnsureExists() call %d reported missing file", i)
		}
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(before), string(after)); diff != "" {
		t.Errorf("EnsureExists() altered the store (-before +after):\n%s", diff)
	}
}

func TestFirstSetupScenario(t *testing.T) {
	s := newTestStore(t)

	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("store should start absent, stat err = %v", err)
	}
	if _, err := s.EnsureExists(); err != nil {
		t.Fatal(err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("new store has %d entries, want 0", len(entries))
	}

	if err := s.Set(KeyFirstSetup, "False"); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get(KeyFirstSetup)
	if err != nil || !ok {
		t.Fatalf("Get(first_setup) = ok %v, err %v", ok, err)
	}
	if got != "False" {
		t.Errorf("Get(first_setup) = %q, want %q", got, "False")
	}
}

func TestResetYieldsEmptyStore(t *testing.T) {
	s := newTestStore(t)
	for _, k := range []string{"os_name", "platform_name", "release_name"} {
		if err := s.Set(k, "x"); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("List() after Reset() = %v, want empty", entries)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("Reset() did not recreate the file: %v", err)
	}
}

func TestOverwriteKeepsPosition(t *testing.T) {
	s := newTestStore(t)
	for _, e := range []Entry{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		if err := s.Set(e.Key, e.Value); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Set("a", "10"); err != nil {
		t.Fatal(err)
	}

	got, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{"a", "10"}, {"b", "2"}, {"c", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPreservesFileOrder(t *testing.T) {
	s := newTestStore(t)
	content := `{"zeta": "1", "alpha": "2", "mid": "3", "alpha": "4"}`
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{"zeta", "1"}, {"alpha", "4"}, {"mid", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestCorruptCache(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"truncated", `{"os_name": "posix"`},
		{"not an object", `["os_name"]`},
		{"non-string value", `{"first_setup": false}`},
		{"trailing data", `{} {}`},
		{"garbage", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			if _, _, err := s.Get("os_name"); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Get() error = %v, want ErrCorrupt", err)
			}
			if _, err := s.List(); !errors.Is(err, ErrCorrupt) {
				t.Errorf("List() error = %v, want ErrCorrupt", err)
			}
			if err := s.Set("os_name", "posix"); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Set() error = %v, want ErrCorrupt", err)
			}

			// A failed Set must not touch the file.
			data, err := os.ReadFile(s.Path())
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.content {
				t.Errorf("corrupt file rewritten to %q", data)
			}
		})
	}
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, FileName))
	for i := 0; i < 5; i++ {
		if err := s.Set("build_type", "Debug"); err != nil {
			t.Fatal(err)
		}
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	if diff := cmp.Diff([]string{FileName}, names); diff != "" {
		t.Errorf("directory contents mismatch (-want +got):\n%s", diff)
	}
}

func TestFileIsPlainJSONObject(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("os_name", "posix"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("platform_name", "Linux"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"os_name\": \"posix\",\n  \"platform_name\": \"Linux\"\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file content mismatch (-want +got):\n%s", diff)
	}
}
