package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pixeldrop/pixeldrop/internal/client/client"
	"github.com/pixeldrop/pixeldrop/internal/client/models"
	"github.com/pixeldrop/pixeldrop/internal/common"
	"github.com/pixeldrop/pixeldrop/internal/logging"
	"github.com/pixeldrop/pixeldrop/internal/netx"
)

// progressHoldDelay is how long the finished batch's 100% stays visible
// before the progress display resets to 0. Purely cosmetic; the batch
// result returned to the caller is unaffected. A variable so tests can
// shorten the hold.
var progressHoldDelay = 2 * time.Second

// UploadService drives batches of files through presign and transfer.
//
// Files are processed strictly sequentially, in input order. The first
// failure aborts the whole batch: the caller gets an error and no partial
// result list, although files transferred before the failing one remain
// durably written in the store. Nothing is retried automatically; a retry
// is a fresh UploadBatch call.
type UploadService interface {
	// UploadBatch uploads files in order and returns their descriptors.
	// The error wraps one of common.ErrInvalidInput, common.ErrPresign,
	// common.ErrTransfer; anything else is an unexpected fault.
	UploadBatch(ctx context.Context, files []models.FileBlob) ([]models.UploadedFile, error)

	// Progress returns a snapshot of the current batch's progress.
	Progress() models.BatchProgress

	// RecentUploads returns the results of the last successful batch.
	RecentUploads() []models.UploadedFile

	// History returns every file uploaded this session, oldest first.
	History() []models.UploadedFile

	// ClearRecent empties the recent-uploads set, keeping History.
	ClearRecent()
}

type uploadService struct {
	client   client.Client
	transfer *http.Client
	logger   logging.Logger

	mu       sync.Mutex
	progress models.BatchProgress
	recent   []models.UploadedFile
	history  []models.UploadedFile
	running  bool
	resetAt  *time.Timer
}

// NewUploadService builds an UploadService. transfer is the HTTP client
// used for the direct-to-storage PUTs; give it a timeout, an unbounded
// hang on one file stalls the whole sequential batch.
func NewUploadService(c client.Client, transfer *http.Client, logger logging.Logger) UploadService {
	if transfer == nil {
		transfer = &http.Client{Timeout: 5 * time.Minute}
	}
	return &uploadService{client: c, transfer: transfer, logger: logger}
}

func (s *uploadService) UploadBatch(ctx context.Context, files []models.FileBlob) ([]models.UploadedFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: empty batch", common.ErrInvalidInput)
	}
	for _, f := range files {
		if !strings.HasPrefix(f.Type, "image/") {
			return nil, fmt.Errorf("%w: %s is not an image", common.ErrInvalidInput, f.Name)
		}
	}

	if err := s.begin(); err != nil {
		return nil, err
	}

	uploaded := make([]models.UploadedFile, 0, len(files))
	total := len(files)

	for i, f := range files {
		if err := s.uploadOne(ctx, f, i, total, &uploaded); err != nil {
			s.fail(err)
			return nil, err
		}
	}

	s.finish(uploaded)
	return uploaded, nil
}

func (s *uploadService) uploadOne(ctx context.Context, f models.FileBlob, index, total int, uploaded *[]models.UploadedFile) error {
	grant, err := s.client.Presign(ctx, f.Name, f.Type)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrPresign, f.Name, err)
	}

	body, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", common.ErrTransfer, f.Name, err)
	}
	defer body.Close()

	size := f.Size
	err = netx.UploadPresigned(ctx, s.transfer, grant.UploadURL, f.Type, body, size, func(sent int64) {
		fraction := 1.0
		if size > 0 {
			fraction = float64(sent) / float64(size)
		}
		s.setPercent(int(float64(index)*100.0/float64(total) + fraction*100.0/float64(total)))
	})
	if err != nil {
		// netx already wraps common.ErrTransfer
		return fmt.Errorf("%s: %w", f.Name, err)
	}

	s.logger.Info(ctx, "file uploaded", "key", grant.Key, "url", grant.PublicURL, "size", f.Size)

	*uploaded = append(*uploaded, models.UploadedFile{
		ID:         grant.Key,
		Name:       f.Name,
		Size:       f.Size,
		Type:       f.Type,
		URL:        grant.PublicURL,
		UploadedAt: time.Now(),
	})
	s.setPercent((index + 1) * 100 / total)
	return nil
}

// begin resets progress for a new batch run. A second batch while one is
// running is refused: the orchestrator is the only writer of progress
// state and keeps it that way.
func (s *uploadService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("%w: a batch is already running", common.ErrInvalidInput)
	}
	if s.resetAt != nil {
		s.resetAt.Stop()
		s.resetAt = nil
	}
	s.running = true
	s.progress = models.BatchProgress{IsUploading: true}
	return nil
}

// setPercent raises PercentComplete, never lowering it within a run.
func (s *uploadService) setPercent(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p > 100 {
		p = 100
	}
	if p > s.progress.PercentComplete {
		s.progress.PercentComplete = p
	}
}

func (s *uploadService) finish(uploaded []models.UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.progress = models.BatchProgress{
		PercentComplete: 100,
		CompletedFiles:  uploaded,
	}
	s.recent = uploaded
	s.history = append(s.history, uploaded...)

	s.resetAt = time.AfterFunc(progressHoldDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.running {
			s.progress.PercentComplete = 0
		}
	})
}

func (s *uploadService) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.progress = models.BatchProgress{Error: err.Error()}
}

func (s *uploadService) Progress() models.BatchProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.progress
	p.CompletedFiles = append([]models.UploadedFile(nil), s.progress.CompletedFiles...)
	return p
}

func (s *uploadService) RecentUploads() []models.UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UploadedFile(nil), s.recent...)
}

func (s *uploadService) History() []models.UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UploadedFile(nil), s.history...)
}

func (s *uploadService) ClearRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}
