package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wavythreads/wavythreads/internal/config"
	"github.com/wavythreads/wavythreads/internal/installer"
	"github.com/wavythreads/wavythreads/internal/scaffold"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

var doctorPackageManager string

func init() {
	doctorCmd.Flags().StringVar(&doctorPackageManager, "package-manager", "", "Package manager to check (default from config)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [projectDir]",
	Short: "Check the environment and an existing project",
	Long: `Check that node and the package manager are on PATH. When projectDir is
given, also check the generated layout, the .env keys and package.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		manager := doctorPackageManager
		if manager == "" {
			manager = config.PackageManager()
		}
		if err := installer.CheckManager(manager); err != nil {
			return err
		}

		fmt.Fprintln(out, "Runtime check:")
		problems := checkBinary(out, "node")
		problems += checkBinary(out, manager)

		if len(args) == 1 {
			fmt.Fprintln(out)
			problems += scaffold.Check(afero.NewOsFs(), args[0], out)
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		successColor.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}

func checkBinary(w io.Writer, name string) int {
	path, err := lookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	return 0
}
