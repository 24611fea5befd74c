package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/acme/voice-call-runner/internal/domain"
	apperrors "github.com/acme/voice-call-runner/pkg/errors"
	"github.com/acme/voice-call-runner/pkg/logger"
)

// Fetcher downloads call artifacts by URL into local files. It is tolerant:
// a missing or sentinel URL is a warning-level no-op, and transport or
// status failures never leave a partial file behind.
type Fetcher struct {
	http   *http.Client
	logger *logger.Logger
}

// NewFetcher constructs a fetcher with a bounded request timeout.
func NewFetcher(timeout time.Duration, lg *logger.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{
		http:   &http.Client{Timeout: timeout},
		logger: lg,
	}
}

// Fetch downloads url into dest, overwriting any existing file. An empty or
// sentinel url performs no network I/O and creates no file.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	if url == "" || url == domain.FieldMissing || url == domain.FieldUnavailable {
		f.logger.Warn("artifact: no url, skipping download", zap.String("dest", dest))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Warn("artifact: invalid url", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrDownload, err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		f.logger.Warn("artifact: request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("artifact: unexpected status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d for %s", apperrors.ErrDownload, resp.StatusCode, url)
	}

	if err := writeAtomic(dest, resp.Body); err != nil {
		f.logger.Warn("artifact: write failed", zap.String("dest", dest), zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrDownload, err)
	}

	f.logger.Info("artifact: downloaded", zap.String("url", url), zap.String("dest", dest))
	return nil
}

// writeAtomic stages the body in a temp file so a failed download never
// leaves a truncated artifact at dest.
func writeAtomic(dest string, body io.Reader) error {
	tmp := dest + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
