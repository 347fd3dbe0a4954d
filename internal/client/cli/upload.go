package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pixeldrop/pixeldrop/internal/client/models"
)

// progressPollInterval controls how often the upload command samples batch
// progress for rendering. A variable so tests can speed it up.
var progressPollInterval = 100 * time.Millisecond

// Upload resolves the given paths into file blobs and pushes them through
// the upload service as one batch, rendering progress on the way. A single
// unreadable path aborts the command before anything is sent.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		printlnFn("Usage: upload <path> [path...]")
		return nil
	}

	files := make([]models.FileBlob, 0, len(paths))
	for _, p := range paths {
		f, err := models.FileBlobFromPath(p)
		if err != nil {
			log.Printf("Cannot read %s: %s", p, err.Error())
			return err
		}
		files = append(files, f)
	}

	done := make(chan struct{})
	go a.renderProgress(ctx, done)

	uploaded, err := a.uploadService.UploadBatch(ctx, files)
	close(done)

	if err != nil {
		log.Printf("Upload failed: %s", err.Error())
		return err
	}

	for _, f := range uploaded {
		printlnFn(fmt.Sprintf("%s -> %s", f.Name, f.URL))
	}
	printlnFn(fmt.Sprintf("Uploaded %d file(s)", len(uploaded)))
	return nil
}

// renderProgress prints the batch percentage whenever it changes, until
// done is closed. Rendering is best effort; the batch result does not
// depend on it.
func (a *App) renderProgress(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-ticker.C:
			p := a.uploadService.Progress()
			if p.IsUploading && p.PercentComplete != last {
				last = p.PercentComplete
				printlnFn(fmt.Sprintf("Uploading... %d%%", p.PercentComplete))
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
