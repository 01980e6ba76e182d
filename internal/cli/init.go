package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wavythreads/wavythreads/internal/branding"
	"github.com/wavythreads/wavythreads/internal/config"
	"github.com/wavythreads/wavythreads/internal/installer"
	"github.com/wavythreads/wavythreads/internal/logger"
	"github.com/wavythreads/wavythreads/internal/pipeline"
	"github.com/wavythreads/wavythreads/internal/project"
)

var (
	initOutputDir      string
	initSkipInstall    bool
	initPackageManager string
)

// newInstaller builds the dependency installer; tests replace it.
var newInstaller = installer.Dispatch

func init() {
	initCmd.Flags().StringVar(&initOutputDir, "output-dir", "", "Project directory (default: ./<projectName>)")
	initCmd.Flags().BoolVar(&initSkipInstall, "skip-install", false, "Write all files without installing packages")
	initCmd.Flags().StringVar(&initPackageManager, "package-manager", "", "Package manager: npm, pnpm or yarn (default from config)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [projectName]",
	Short: "Initialize a new project",
	Long: `Initialize a new Express + MongoDB project.

Creates <projectName>/ with .env, package.json and src/index.js, installs the
packages from src/, then writes the auth module (controller, middleware, model,
routes). If the install fails the auth module is not written.

Example:
  ` + branding.CLIName() + ` init my-api`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	name, err := resolveProjectName(args)
	if err != nil {
		return err
	}
	spec, err := project.New(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	statusColor.Fprintf(out, "Initializing project %s...\n", spec.Name)
	fmt.Fprintln(out, "Generated random JWT secret")

	root := initOutputDir
	if root == "" {
		root = filepath.Join(".", spec.Name)
	}

	skip := initSkipInstall
	if !cmd.Flags().Changed("skip-install") {
		skip = config.SkipInstall()
	}
	manager := initPackageManager
	if manager == "" {
		manager = config.PackageManager()
	}
	if err := installer.CheckManager(manager); err != nil {
		return err
	}

	var installOut, installErr io.Writer
	if verbose {
		installOut, installErr = out, cmd.ErrOrStderr()
	}
	progress := newProgress(out, cmd.ErrOrStderr(), manager)

	p := &pipeline.Pipeline{
		Fs:          afero.NewOsFs(),
		Installer:   newInstaller(manager, installOut, installErr),
		Logger:      logger.Get(),
		SkipInstall: skip,
		OnStage:     progress.onStage,
	}

	ctx := cmd.Context()
	if timeout := config.InstallTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report, err := p.Run(ctx, spec, root)
	progress.stop()
	printWarnings(out, report.Warnings)
	if err != nil {
		if errors.Is(err, pipeline.ErrInstallFailed) {
			printInstallFailure(cmd.ErrOrStderr(), report)
		}
		return err
	}

	if report.Stage.Complete() {
		printNextSteps(out, report, skip, manager)
	}
	return nil
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	warnColor.Fprintln(w, "\nWarnings:")
	for _, msg := range warnings {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

func printInstallFailure(w io.Writer, report *pipeline.Report) {
	errorColor.Fprintln(w, "Error installing packages; the auth module was not generated.")
	if report.Install != nil && report.Install.Stderr != "" && !verbose {
		fmt.Fprintln(w, report.Install.Stderr)
	}
	fmt.Fprintf(w, "Fix the problem and run '%s init %s' again to finish the project.\n",
		branding.CLIName(), report.Name)
}

func printNextSteps(w io.Writer, report *pipeline.Report, skipped bool, manager string) {
	fmt.Fprintf(w, "\nCreated project at %s/\n", report.Root)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. cd %s\n", report.Root)
	step := 2
	if skipped {
		fmt.Fprintf(w, "  %d. %s install\n", step, manager)
		step++
	}
	fmt.Fprintf(w, "  %d. %s start\n", step, manager)
}
