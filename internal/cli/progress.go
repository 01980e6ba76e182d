package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/wavythreads/wavythreads/internal/pipeline"
	"github.com/wavythreads/wavythreads/internal/scaffold"
)

// progress turns pipeline stage transitions into terminal output.
type progress struct {
	out     io.Writer
	manager string
	spin    *spinner.Spinner
}

func newProgress(out, spinOut io.Writer, manager string) *progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(spinOut))
	s.Suffix = fmt.Sprintf(" Installing packages with %s...", manager)
	return &progress{out: out, manager: manager, spin: s}
}

func (p *progress) onStage(stage pipeline.Stage, report *pipeline.Report) {
	if stage.Terminal() {
		p.stop()
	}
	switch stage {
	case pipeline.StageDirsCreated:
		fmt.Fprintf(p.out, "Created %s folders under %s/\n",
			strings.Join(scaffold.SourceSubdirs, ", "), scaffold.SourceDir)
	case pipeline.StageFilesWritten:
		fmt.Fprintf(p.out, "Created %s\n", strings.Join(report.Files, ", "))
	case pipeline.StageInstallPending:
		if verbose {
			statusColor.Fprintf(p.out, "Installing packages with %s...\n", p.manager)
			return
		}
		p.spin.Start()
	case pipeline.StageInstallSucceeded:
		p.stop()
		successColor.Fprintln(p.out, "Packages installed successfully.")
	case pipeline.StageInstallSkipped:
		warnColor.Fprintln(p.out, "Skipped package installation.")
	case pipeline.StageAuthScaffolded:
		successColor.Fprintln(p.out, "Authentication module generated successfully.")
	}
}

func (p *progress) stop() {
	p.spin.Stop()
}
