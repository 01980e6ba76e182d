package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wavythreads/wavythreads/internal/installer"
	"github.com/wavythreads/wavythreads/internal/pipeline"
	"github.com/wavythreads/wavythreads/internal/project"
	"github.com/wavythreads/wavythreads/internal/scaffold"
)

type fakeInstaller struct {
	calls    int
	exitCode int
	err      error
}

func (f *fakeInstaller) Install(ctx context.Context, dir string) (*installer.Output, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &installer.Output{Command: "fake install", ExitCode: f.exitCode, Stderr: "boom"}, nil
}

// useInstaller swaps newInstaller for the duration of the test and records
// the requested package manager.
func useInstaller(t *testing.T, fake *fakeInstaller) *string {
	t.Helper()
	var manager string
	orig := newInstaller
	newInstaller = func(m string, stdout, stderr io.Writer) installer.Installer {
		manager = m
		return fake
	}
	t.Cleanup(func() { newInstaller = orig })
	return &manager
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args in an isolated config home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WAVYTHREADS_HOME", t.TempDir())
	t.Setenv("WAVYTHREADS_LOG_TO_FILE", "false")
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String() + errOut.String(), err
}

func assertExists(t *testing.T, root string, files []scaffold.File, want bool) {
	t.Helper()
	for _, f := range files {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(f.Path)))
		if got := err == nil; got != want {
			t.Errorf("%s exists = %v, want %v", f.Path, got, want)
		}
	}
}

func TestInit_FullRun(t *testing.T) {
	fake := &fakeInstaller{}
	manager := useInstaller(t, fake)
	root := filepath.Join(t.TempDir(), "blog")

	out, err := execute(t, "init", "blog", "--output-dir", root)
	if err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if fake.calls != 1 {
		t.Errorf("installer calls = %d, want 1", fake.calls)
	}
	if *manager != "npm" {
		t.Errorf("package manager = %q, want npm", *manager)
	}
	assertExists(t, root, scaffold.BaseFiles, true)
	assertExists(t, root, scaffold.AuthFiles, true)

	for _, want := range []string{
		"Initializing project blog...",
		"Packages installed successfully.",
		"Authentication module generated successfully.",
		"Next steps:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInit_InstallFailureLeavesPartialProject(t *testing.T) {
	fake := &fakeInstaller{exitCode: 1}
	useInstaller(t, fake)
	root := filepath.Join(t.TempDir(), "blog")

	out, err := execute(t, "init", "blog", "--output-dir", root)
	if !errors.Is(err, pipeline.ErrInstallFailed) {
		t.Fatalf("init error = %v, want ErrInstallFailed", err)
	}
	assertExists(t, root, scaffold.BaseFiles, true)
	assertExists(t, root, scaffold.AuthFiles, false)
	if !strings.Contains(out, "auth module was not generated") {
		t.Errorf("output missing failure notice:\n%s", out)
	}
	if strings.Contains(out, "Next steps:") {
		t.Errorf("failed run should not print next steps:\n%s", out)
	}
}

func TestInit_SkipInstall(t *testing.T) {
	fake := &fakeInstaller{}
	useInstaller(t, fake)
	root := filepath.Join(t.TempDir(), "shop")

	out, err := execute(t, "init", "shop", "--output-dir", root, "--skip-install")
	if err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if fake.calls != 0 {
		t.Errorf("installer calls = %d, want 0", fake.calls)
	}
	assertExists(t, root, scaffold.AuthFiles, true)
	if !strings.Contains(out, "npm install") {
		t.Errorf("next steps should mention the install:\n%s", out)
	}
}

func TestInit_SkipInstallFromConfig(t *testing.T) {
	fake := &fakeInstaller{}
	useInstaller(t, fake)
	t.Setenv("WAVYTHREADS_SKIP_INSTALL", "true")
	root := filepath.Join(t.TempDir(), "shop")

	if out, err := execute(t, "init", "shop", "--output-dir", root); err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if fake.calls != 0 {
		t.Errorf("installer calls = %d, want 0", fake.calls)
	}
}

func TestInit_PackageManagerFlag(t *testing.T) {
	fake := &fakeInstaller{}
	manager := useInstaller(t, fake)
	root := filepath.Join(t.TempDir(), "api")

	if out, err := execute(t, "init", "api", "--output-dir", root, "--package-manager", "pnpm"); err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if *manager != "pnpm" {
		t.Errorf("package manager = %q, want pnpm", *manager)
	}
}

func TestInit_UnsupportedPackageManager(t *testing.T) {
	fake := &fakeInstaller{}
	useInstaller(t, fake)
	root := filepath.Join(t.TempDir(), "blog")

	_, err := execute(t, "init", "blog", "--output-dir", root, "--package-manager", "bower")
	if !errors.Is(err, installer.ErrUnsupportedManager) {
		t.Fatalf("init error = %v, want ErrUnsupportedManager", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("nothing should be written for an unsupported package manager")
	}
	if fake.calls != 0 {
		t.Errorf("installer calls = %d, want 0", fake.calls)
	}
}

func TestInit_InvalidName(t *testing.T) {
	fake := &fakeInstaller{}
	useInstaller(t, fake)
	dir := t.TempDir()

	for _, name := range []string{"../escape", "My App", "node_modules"} {
		_, err := execute(t, "init", name, "--output-dir", filepath.Join(dir, "out"))
		if !errors.Is(err, project.ErrInvalidName) {
			t.Errorf("init %q error = %v, want ErrInvalidName", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Error("nothing should be written for an invalid name")
	}
	if fake.calls != 0 {
		t.Errorf("installer calls = %d, want 0", fake.calls)
	}
}

func TestInit_NameRequiredWithoutTerminal(t *testing.T) {
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	_, err := execute(t, "init")
	if !errors.Is(err, project.ErrInvalidName) {
		t.Fatalf("init error = %v, want ErrInvalidName", err)
	}
}

func TestInit_PromptsForName(t *testing.T) {
	origTerm, origPrompt := stdinIsTerminal, promptProjectName
	stdinIsTerminal = func() bool { return true }
	promptProjectName = func() (string, error) { return "prompted", nil }
	t.Cleanup(func() {
		stdinIsTerminal = origTerm
		promptProjectName = origPrompt
	})
	useInstaller(t, &fakeInstaller{})
	root := filepath.Join(t.TempDir(), "prompted")

	out, err := execute(t, "init", "--output-dir", root)
	if err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Initializing project prompted...") {
		t.Errorf("output missing prompted name:\n%s", out)
	}
}

func TestDoctor(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	t.Cleanup(func() { lookPath = orig })
	useInstaller(t, &fakeInstaller{})

	root := filepath.Join(t.TempDir(), "blog")
	if out, err := execute(t, "init", "blog", "--output-dir", root); err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}

	out, err := execute(t, "doctor", root)
	if err != nil {
		t.Fatalf("doctor error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "All checks passed.") {
		t.Errorf("doctor output:\n%s", out)
	}

	if err := os.Remove(filepath.Join(root, scaffold.RoutesFile.Path)); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "doctor", root)
	if err == nil {
		t.Fatalf("doctor should fail on a partial project:\n%s", out)
	}
	if !strings.Contains(out, "[MISS] "+scaffold.RoutesFile.Path) {
		t.Errorf("doctor output missing routes file:\n%s", out)
	}
}

func TestDoctor_MissingPackageManager(t *testing.T) {
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if name == "yarn" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}
	t.Cleanup(func() { lookPath = orig })

	out, err := execute(t, "doctor", "--package-manager", "yarn")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out, "[MISS] yarn not found") {
		t.Errorf("doctor output:\n%s", out)
	}
}

func TestConfig_SetGetList(t *testing.T) {

	if _, err := execute(t, "config", "set", "package_manager", "pnpm"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("WAVYTHREADS_HOME"), "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, "config", "set", "package_manager", "bower"); !errors.Is(err, installer.ErrUnsupportedManager) {
		t.Errorf("config set package_manager bower error = %v, want ErrUnsupportedManager", err)
	}
	if _, err := execute(t, "config", "set", "no_such_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := execute(t, "config", "set", "install_timeout", "soon"); err == nil {
		t.Error("expected error for invalid duration")
	}
	if _, err := execute(t, "config", "get", "bogus"); err == nil {
		t.Error("expected error for unknown key")
	}

	out, err := execute(t, "config", "list")
	if err != nil {
		t.Fatalf("config list error = %v", err)
	}
	for _, key := range []string{"install_timeout", "log_to_file", "package_manager", "skip_install"} {
		if !strings.Contains(out, key+" = ") {
			t.Errorf("config list missing %s:\n%s", key, out)
		}
	}
}

func TestConfig_SetThenGet(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	t.Setenv("WAVYTHREADS_HOME", home)
	t.Setenv("WAVYTHREADS_LOG_TO_FILE", "false")
	t.Cleanup(viper.Reset)

	run := func(args ...string) string {
		t.Helper()
		viper.Reset()
		resetFlags(rootCmd)
		out.Reset()
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v error = %v", args, err)
		}
		return out.String()
	}

	run("config", "set", "package_manager", "pnpm")
	if got := run("config", "get", "package_manager"); got != "pnpm\n" {
		t.Errorf("config get package_manager = %q, want %q", got, "pnpm\n")
	}
	if got := run("config", "list"); !strings.Contains(got, "package_manager = pnpm") {
		t.Errorf("config list missing stored value:\n%s", got)
	}
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"
	t.Cleanup(func() { buildVersion, buildCommit, buildDate = "", "", "" })

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, "wavythreads version 1.2.3 (commit: abc123, built: 2026-01-01)"},
		{[]string{"version", "--short"}, "1.2.3\n"},
		{[]string{"version", "--json"}, `"commit": "abc123"`},
		{[]string{"version", "--json"}, `"repository": "https://github.com/wavythreads/wavythreads"`},
		{[]string{"--help"}, "Source: https://github.com/wavythreads/wavythreads"},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatalf("%v error = %v", tt.args, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("%v output = %q, want it to contain %q", tt.args, out, tt.want)
		}
	}
}
