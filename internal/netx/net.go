// Package netx implements the direct-to-storage transfer primitive: a raw
// HTTP PUT of file bytes to a presigned URL. The signed URL carries the
// authorization, so no storage SDK is involved on this path.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pixeldrop/pixeldrop/internal/common"
)

// maxErrorBody bounds how much of a storage provider's error response is
// carried into the returned error.
const maxErrorBody = 200

// ProgressFunc receives the cumulative number of body bytes sent so far.
type ProgressFunc func(sent int64)

// progressReader counts bytes as the HTTP client drains the request body.
type progressReader struct {
	r    io.Reader
	sent int64
	fn   ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent)
		}
	}
	return n, err
}

// UploadPresigned PUTs size bytes from body to a presigned URL with the
// given Content-Type header. Any 2xx status is a success. On a non-2xx
// response the returned error wraps common.ErrTransfer and carries the
// status code plus the provider's error text when the body looks like an
// S3-style XML error (truncated to maxErrorBody bytes).
//
// A context cancellation mid-transfer surfaces as ctx.Err wrapped in
// common.ErrTransfer, so callers can tell it apart with errors.Is.
func UploadPresigned(ctx context.Context, client *http.Client, url, contentType string, body io.Reader, size int64, fn ProgressFunc) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, &progressReader{r: body, fn: fn})
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: cancelled: %w", common.ErrTransfer, ctxErr)
		}
		return fmt.Errorf("%w: %w", common.ErrTransfer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d%s", common.ErrTransfer, resp.StatusCode, providerErrorText(resp.Body))
	}
	return nil
}

// IsCancelled reports whether err is a transfer aborted by its context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// providerErrorText reads a bounded prefix of an error response body and
// formats it for inclusion in an error message. Only bodies that look like
// an S3/R2 XML error are included.
func providerErrorText(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	s := string(b)
	if !strings.Contains(s, "<Code>") {
		return ""
	}
	return ": " + s
}
