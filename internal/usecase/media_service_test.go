package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	mediamock "github.com/riskibarqy/the-gaffer/internal/mocks/domain/media"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var testPNG = media.Image{MimeType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func waitForJob(t *testing.T, svc *MediaService, workspace, jobID string) media.EditJob {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.Get(t.Context(), workspace, jobID)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if job.Status != media.JobProcessing {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", jobID)
	return media.EditJob{}
}

func TestMediaService_EditSucceeds(t *testing.T) {
	editor := mediamock.NewEditor(t)
	edited := media.Image{MimeType: "image/png", Data: []byte("edited")}
	editor.On("Edit", mock.Anything, testPNG, "add a retro filter").Return(edited, nil).Once()

	svc, err := NewMediaService(editor, &sequentialIDs{}, logging.NewNop(), MediaServiceConfig{Workers: 1})
	if err != nil {
		t.Fatalf("new media service: %v", err)
	}
	defer svc.Close()

	job, err := svc.Submit(t.Context(), "ws", testPNG, "  add a retro filter ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if job.Status != media.JobProcessing {
		t.Fatalf("expected PROCESSING, got %s", job.Status)
	}

	done := waitForJob(t, svc, "ws", job.ID)
	if done.Status != media.JobDone || string(done.Result.Data) != "edited" {
		t.Fatalf("unexpected finished job: %+v", done)
	}

	if _, err := svc.Get(t.Context(), "other-ws", job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("jobs must not leak across workspaces, got %v", err)
	}
}

func TestMediaService_EditFailureReportsAlert(t *testing.T) {
	editor := mediamock.NewEditor(t)
	editor.On("Edit", mock.Anything, testPNG, "make it rain").Return(media.Image{}, errors.New("safety block")).Once()

	svc, err := NewMediaService(editor, &sequentialIDs{}, logging.NewNop(), MediaServiceConfig{Workers: 1})
	if err != nil {
		t.Fatalf("new media service: %v", err)
	}
	defer svc.Close()

	job, err := svc.Submit(t.Context(), "ws", testPNG, "make it rain")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	done := waitForJob(t, svc, "ws", job.ID)
	if done.Status != media.JobFailed || done.Message != media.EditFailedAlert {
		t.Fatalf("unexpected failed job: %+v", done)
	}
}

func TestMediaService_Validation(t *testing.T) {
	t.Run("disabled without editor", func(t *testing.T) {
		svc, err := NewMediaService(nil, &sequentialIDs{}, logging.NewNop(), MediaServiceConfig{})
		if err != nil {
			t.Fatalf("new media service: %v", err)
		}
		if svc.Enabled() {
			t.Fatalf("expected disabled service")
		}
		if _, err := svc.Submit(t.Context(), "ws", testPNG, "x"); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	svc, err := NewMediaService(mediamock.NewEditor(t), &sequentialIDs{}, logging.NewNop(), MediaServiceConfig{Workers: 1})
	if err != nil {
		t.Fatalf("new media service: %v", err)
	}
	defer svc.Close()

	tests := []struct {
		name   string
		img    media.Image
		prompt string
	}{
		{name: "blank prompt", img: testPNG, prompt: "  "},
		{name: "empty image", img: media.Image{MimeType: "image/png"}, prompt: "x"},
		{name: "not an image", img: media.Image{MimeType: "application/pdf", Data: []byte("%PDF")}, prompt: "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(t.Context(), "ws", tc.img, tc.prompt); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if _, err := svc.Get(t.Context(), "ws", "edit-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
