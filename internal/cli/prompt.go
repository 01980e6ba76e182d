package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/wavythreads/wavythreads/internal/branding"
	"github.com/wavythreads/wavythreads/internal/project"
)

// stdinIsTerminal and promptProjectName are replaced in tests.
var (
	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	promptProjectName = func() (string, error) {
		var name string
		err := survey.AskOne(&survey.Input{Message: "Project name:"}, &name,
			survey.WithValidator(survey.Required),
			survey.WithValidator(func(ans interface{}) error {
				s, _ := ans.(string)
				return project.ValidateName(s)
			}),
		)
		return name, err
	}
)

// resolveProjectName takes the name from args, or asks for it when running
// interactively.
func resolveProjectName(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !stdinIsTerminal() {
		return "", fmt.Errorf("%w: usage: %s init <projectName>", project.ErrInvalidName, branding.CLIName())
	}
	name, err := promptProjectName()
	if err != nil {
		return "", fmt.Errorf("reading project name: %w", err)
	}
	return name, nil
}
