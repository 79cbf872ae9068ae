package media

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobProcessing JobStatus = "PROCESSING"
	JobDone       JobStatus = "DONE"
	JobFailed     JobStatus = "FAILED"
)

// EditFailedAlert is what a failed edit reports back to the user.
const EditFailedAlert = "The Referee has disallowed the goal (Editing failed). Check your prompt."

// Image is an inline image payload.
type Image struct {
	MimeType string
	Data     []byte
}

// EditJob tracks one asynchronous image edit.
type EditJob struct {
	ID          string
	Workspace   string
	Prompt      string
	Status      JobStatus
	Result      Image
	Message     string
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// Editor edits an image according to a free-text prompt.
type Editor interface {
	Edit(ctx context.Context, img Image, prompt string) (Image, error)
}
