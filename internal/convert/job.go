package convert

import (
	"fmt"

	"github.com/google/uuid"
)

// Job pairs one source file with its derived output path. Jobs are
// created at enumeration time and discarded once the transcode attempt
// completes; nothing about them survives the run.
type Job struct {
	ID         uuid.UUID
	SourcePath string
	OutputPath string
}

func NewJob(source string, output string) Job {
	return Job{ID: uuid.New(), SourcePath: source, OutputPath: output}
}

func (job Job) String() string {
	return fmt.Sprintf("{job id=%s | in_path=%s | out_path=%s}", job.ID, job.SourcePath, job.OutputPath)
}
