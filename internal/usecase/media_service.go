package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	"github.com/riskibarqy/the-gaffer/internal/platform/cache"
	"github.com/riskibarqy/the-gaffer/internal/platform/id"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

const mediaJobKeyPrefix = "media:job:"

type MediaServiceConfig struct {
	Workers    int
	JobTimeout time.Duration
	JobTTL     time.Duration
}

// MediaService runs image edits in the background on a bounded pool. Jobs are
// not retried or cancelled once queued.
type MediaService struct {
	editor  media.Editor
	ids     id.Generator
	logger  *logging.Logger
	pool    *ants.Pool
	jobs    *cache.Store[media.EditJob]
	timeout time.Duration
	now     func() time.Time
}

// NewMediaService returns a service that reports ErrDependencyUnavailable for
// every call when editor is nil.
func NewMediaService(editor media.Editor, ids id.Generator, logger *logging.Logger, cfg MediaServiceConfig) (*MediaService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 60 * time.Second
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	svc := &MediaService{
		editor:  editor,
		ids:     ids,
		logger:  logger,
		jobs:    cache.NewStore[media.EditJob](cfg.JobTTL),
		timeout: cfg.JobTimeout,
		now:     time.Now,
	}
	if editor == nil {
		return svc, nil
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create media worker pool: %w", err)
	}
	svc.pool = pool

	return svc, nil
}

func (s *MediaService) Enabled() bool {
	return s.editor != nil && s.pool != nil
}

// Submit queues an edit and returns the job in PROCESSING state.
func (s *MediaService) Submit(ctx context.Context, workspace string, img media.Image, prompt string) (media.EditJob, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Submit")
	defer span.End()

	if !s.Enabled() {
		return media.EditJob{}, fmt.Errorf("%w: image editor is not configured", ErrDependencyUnavailable)
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return media.EditJob{}, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if len(img.Data) == 0 {
		return media.EditJob{}, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if !strings.HasPrefix(img.MimeType, "image/") {
		return media.EditJob{}, fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, img.MimeType)
	}

	jobID, err := s.ids.NewID("edit")
	if err != nil {
		return media.EditJob{}, fmt.Errorf("generate job id: %w", err)
	}

	s.jobs.PurgeExpired(ctx)

	job := media.EditJob{
		ID:          jobID,
		Workspace:   workspace,
		Prompt:      prompt,
		Status:      media.JobProcessing,
		SubmittedAt: s.now(),
	}
	s.jobs.Set(ctx, mediaJobKeyPrefix+jobID, job)

	if err := s.pool.Submit(func() { s.run(job, img) }); err != nil {
		s.jobs.Delete(ctx, mediaJobKeyPrefix+jobID)
		if errors.Is(err, ants.ErrPoolOverload) {
			return media.EditJob{}, fmt.Errorf("%w: image editor is busy", ErrDependencyUnavailable)
		}
		return media.EditJob{}, fmt.Errorf("submit edit job: %w", err)
	}

	return job, nil
}

// Get returns a job owned by workspace.
func (s *MediaService) Get(ctx context.Context, workspace, jobID string) (media.EditJob, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.Get")
	defer span.End()

	job, ok := s.jobs.Get(ctx, mediaJobKeyPrefix+strings.TrimSpace(jobID))
	if !ok || job.Workspace != workspace {
		return media.EditJob{}, fmt.Errorf("%w: edit job=%s", ErrNotFound, jobID)
	}

	return job, nil
}

func (s *MediaService) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

func (s *MediaService) run(job media.EditJob, img media.Image) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	edited, err := s.editor.Edit(ctx, img, job.Prompt)
	job.FinishedAt = s.now()
	if err != nil {
		job.Status = media.JobFailed
		job.Message = media.EditFailedAlert
		s.logger.WarnContext(ctx, "image edit failed", "job_id", job.ID, "workspace", job.Workspace, "error", err)
	} else {
		job.Status = media.JobDone
		job.Result = edited
	}

	s.jobs.Set(ctx, mediaJobKeyPrefix+job.ID, job)
}
