package pipeline

// Stage is a point in the initialization state machine:
//
//	Start → DirsCreated → FilesWritten → InstallPending → InstallFailed
//	                                                    → InstallSucceeded → AuthScaffolded
//	                                   → InstallSkipped → AuthScaffolded
type Stage int

const (
	StageStart Stage = iota
	StageDirsCreated
	StageFilesWritten
	StageInstallPending
	StageInstallFailed
	StageInstallSucceeded
	StageInstallSkipped
	StageAuthScaffolded
)

var stageNames = map[Stage]string{
	StageStart:            "Start",
	StageDirsCreated:      "DirsCreated",
	StageFilesWritten:     "FilesWritten",
	StageInstallPending:   "InstallPending",
	StageInstallFailed:    "InstallFailed",
	StageInstallSucceeded: "InstallSucceeded",
	StageInstallSkipped:   "InstallSkipped",
	StageAuthScaffolded:   "AuthScaffolded",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further stage can follow s.
func (s Stage) Terminal() bool {
	return s == StageInstallFailed || s == StageAuthScaffolded
}

// Complete reports whether s is the successful end state.
func (s Stage) Complete() bool {
	return s == StageAuthScaffolded
}

// next lists the legal transitions out of each stage.
var next = map[Stage][]Stage{
	StageStart:            {StageDirsCreated},
	StageDirsCreated:      {StageFilesWritten},
	StageFilesWritten:     {StageInstallPending, StageInstallSkipped},
	StageInstallPending:   {StageInstallFailed, StageInstallSucceeded},
	StageInstallSucceeded: {StageAuthScaffolded},
	StageInstallSkipped:   {StageAuthScaffolded},
}

// CanAdvance reports whether the state machine allows from → to.
func CanAdvance(from, to Stage) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
