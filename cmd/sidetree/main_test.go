package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/state"
)

// sandbox points the XDG dirs at temp dirs and changes into a fresh root
// holding dir/file.txt.
func sandbox(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	root := filepath.Join(base, "root")
	if err := os.MkdirAll(filepath.Join(root, "dir"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "dir", "file.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)
	root, _ = os.Getwd()
	return root
}

func TestSetup_DefaultScriptCreated(t *testing.T) {
	sandbox(t)
	logger, closeLog, _ := newLogger(false)
	defer closeLog()

	exec, store, err := setup(&flags{}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if exec.ShouldExit() {
		t.Error("empty script should not quit")
	}
	if store == nil {
		t.Fatal("cache should be enabled by default")
	}
	script := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "sidetree", "sidetreerc")
	if _, err := os.Stat(script); err != nil {
		t.Errorf("default script not created: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("cache file not created: %v", err)
	}
}

func TestSetup_SelectAndExec(t *testing.T) {
	root := sandbox(t)
	logger, closeLog, _ := newLogger(false)
	defer closeLog()

	f := &flags{noCache: true, selectPath: "dir/file.txt", exec: "set show_hidden true; echo hi"}
	exec, store, err := setup(f, logger)
	if err != nil {
		t.Fatal(err)
	}
	if store != nil {
		t.Error("--no-cache should disable the store")
	}
	if line, _ := exec.Tree.Selected(); line.Path != filepath.Join(root, "dir", "file.txt") {
		t.Errorf("selected %s, want dir/file.txt", line.Path)
	}
	if !exec.Opts.ShowHidden {
		t.Error("--exec did not run")
	}
	if msg, _ := exec.Status.Message(); msg != "hi" {
		t.Errorf("status = %q", msg)
	}

	f.exec = "set show_hidden"
	var argErr *command.ArgumentError
	if _, _, err := setup(f, logger); !errors.As(err, &argErr) {
		t.Errorf("error = %v, want *command.ArgumentError", err)
	}
}

func TestSetup_BadScript(t *testing.T) {
	sandbox(t)
	logger, closeLog, _ := newLogger(false)
	defer closeLog()

	script := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(script, []byte("nonsense here\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var verbErr *command.UnknownVerbError
	if _, _, err := setup(&flags{configPath: script}, logger); !errors.As(err, &verbErr) {
		t.Errorf("error = %v, want *command.UnknownVerbError", err)
	}

	if _, _, err := setup(&flags{configPath: filepath.Join(t.TempDir(), "missing")}, logger); err == nil {
		t.Error("a missing --config script should fail")
	}
}

func TestCache_RoundTrip(t *testing.T) {
	root := sandbox(t)
	logger, closeLog, _ := newLogger(false)
	defer closeLog()

	exec, store, err := setup(&flags{selectPath: "dir/file.txt"}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := saveCache(store, exec, logger); err != nil {
		t.Fatal(err)
	}

	c, err := state.NewStore(store.Path()).Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.SelectedPath != filepath.Join(root, "dir", "file.txt") {
		t.Errorf("cached selection = %q", c.SelectedPath)
	}
	if !slices.Contains(c.ExpandedPaths, filepath.Join(root, "dir")) {
		t.Errorf("cached expanded = %v", c.ExpandedPaths)
	}

	// A fresh start restores both.
	exec, _, err = setup(&flags{}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if line, _ := exec.Tree.Selected(); line.Path != filepath.Join(root, "dir", "file.txt") {
		t.Errorf("restored selection = %s", line.Path)
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "no-cache", "select", "exec", "debug"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	for short, long := range map[string]string{"c": "config", "s": "select", "e": "exec"} {
		if f := cmd.Flags().ShorthandLookup(short); f == nil || f.Name != long {
			t.Errorf("-%s should be --%s", short, long)
		}
	}
	if cmd.Version == "" {
		t.Error("--version needs a version")
	}
}
