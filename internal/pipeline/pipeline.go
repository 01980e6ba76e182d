package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wavythreads/wavythreads/internal/installer"
	"github.com/wavythreads/wavythreads/internal/project"
	"github.com/wavythreads/wavythreads/internal/scaffold"
)

// ErrInstallFailed is returned when dependency installation does not succeed.
// The project is left with its directories and base files but no auth module.
var ErrInstallFailed = errors.New("installing packages failed")

// Pipeline initializes a project. Fs and Installer are required unless
// SkipInstall is set, in which case Installer is not used.
type Pipeline struct {
	Fs          afero.Fs
	Installer   installer.Installer
	Logger      *slog.Logger
	SkipInstall bool

	// OnStage, when set, is called after every stage transition.
	OnStage func(Stage, *Report)
}

// Report describes how far a run got and what it produced.
type Report struct {
	Name     string
	Root     string
	Stage    Stage
	Dirs     []string
	Files    []string
	Warnings []string
	Install  *installer.Output
}

// Run executes every stage for spec under root, stopping at the first failure.
// The returned Report is never nil, so callers can tell where a failed run stopped.
func (p *Pipeline) Run(ctx context.Context, spec *project.Spec, root string) (*Report, error) {
	report := &Report{Name: spec.Name, Root: root, Stage: StageStart}
	log := p.logger().With("project", spec.Name, "root", root)
	log.Info("initializing project")

	dirs, err := scaffold.BuildDirs(p.Fs, root)
	if err != nil {
		log.Error("creating directories failed", "error", err)
		return report, fmt.Errorf("creating project directories: %w", err)
	}
	report.Dirs = dirs
	p.advance(report, StageDirsCreated, log)

	base, err := scaffold.Emit(p.Fs, root, scaffold.BaseFiles, spec)
	report.Files = append(report.Files, base.Files...)
	if err != nil {
		log.Error("writing base files failed", "error", err)
		return report, fmt.Errorf("writing base files: %w", err)
	}
	report.Warnings = append(report.Warnings, base.Warnings...)
	for _, w := range base.Warnings {
		log.Warn("manifest issue", "issue", w)
	}
	p.advance(report, StageFilesWritten, log)

	if p.SkipInstall {
		p.advance(report, StageInstallSkipped, log)
	} else if err := p.install(ctx, report, log); err != nil {
		return report, err
	}

	auth, err := scaffold.Emit(p.Fs, root, scaffold.AuthFiles, spec)
	report.Files = append(report.Files, auth.Files...)
	if err != nil {
		log.Error("writing auth module failed", "error", err)
		return report, fmt.Errorf("writing auth module: %w", err)
	}
	p.advance(report, StageAuthScaffolded, log)

	return report, nil
}

func (p *Pipeline) install(ctx context.Context, report *Report, log *slog.Logger) error {
	if p.Installer == nil {
		return errors.New("no installer configured")
	}

	p.advance(report, StageInstallPending, log)

	dir := filepath.Join(report.Root, scaffold.SourceDir)
	out, err := p.Installer.Install(ctx, dir)
	report.Install = out

	if err != nil {
		p.advance(report, StageInstallFailed, log)
		log.Error("installing packages failed", "dir", dir, "error", err)
		return fmt.Errorf("%w: %w", ErrInstallFailed, err)
	}
	if !out.Succeeded() {
		p.advance(report, StageInstallFailed, log)
		log.Error("installing packages failed", "dir", dir, "command", out.Command,
			"exit_code", out.ExitCode, "stderr", out.Stderr)
		return fmt.Errorf("%w: %s exited with code %d", ErrInstallFailed, out.Command, out.ExitCode)
	}

	p.advance(report, StageInstallSucceeded, log)
	return nil
}

func (p *Pipeline) advance(report *Report, to Stage, log *slog.Logger) {
	if !CanAdvance(report.Stage, to) {
		// Transitions are hard-coded in Run; reaching this is a programming error.
		panic(fmt.Sprintf("pipeline: illegal transition %s → %s", report.Stage, to))
	}
	log.Info("stage reached", "from", report.Stage.String(), "stage", to.String())
	report.Stage = to
	if p.OnStage != nil {
		p.OnStage(to, report)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
