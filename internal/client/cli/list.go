package cli

import (
	"context"
	"fmt"
)

// List prints every file uploaded during this session, oldest first.
func (a *App) List(ctx context.Context) error {
	history := a.uploadService.History()
	if len(history) == 0 {
		printlnFn("Nothing uploaded yet")
		return nil
	}
	for _, f := range history {
		printlnFn(fmt.Sprintf("%s  %s  %d bytes  %s",
			f.UploadedAt.Format("2006-01-02 15:04:05"), f.Name, f.Size, f.URL))
	}
	return nil
}

// Clear empties the recent-uploads set shown after the last batch. The
// session history is kept.
func (a *App) Clear(ctx context.Context) error {
	a.uploadService.ClearRecent()
	printlnFn("Cleared")
	return nil
}
