package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wavythreads/wavythreads/internal/branding"
	"github.com/wavythreads/wavythreads/internal/config"
	"github.com/wavythreads/wavythreads/internal/logger"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var (
	statusColor  = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a new Express + MongoDB project with a ready-made
registration and login module, and installs its dependencies.

Source: ` + branding.RepoURL(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logger.Init(logger.Options{
			ToFile:  config.LogToFile(),
			Verbose: verbose,
			Stderr:  cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Stream installer output and debug logs to stderr")
}

// Execute runs the root command with build info injected via ldflags.
// Interrupting the process cancels a running install.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logger.Close()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
