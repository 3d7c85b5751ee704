// Package bundle downloads per-app archives from the content bucket and
// extracts them into a local staging directory.
package bundle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archiver"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads <id>.zip from a fixed bucket base URL.
type Fetcher struct {
	client  *http.Client
	baseURL string
	log     *logrus.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// New returns a Fetcher for the given bucket base URL.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		log:     logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch downloads the archive for appID into stagingDir (created if absent),
// extracts its full contents there, and deletes the archive file.
//
// A 404 from the bucket means no bundle exists for the id; that is reported
// as found=false with a nil error. Partially written files from a failed
// download or extraction are left in place.
func (f *Fetcher) Fetch(ctx context.Context, appID int, stagingDir string, sink Sink) (found bool, err error) {
	sink.notify(StepStart, fmt.Sprintf("downloading %d.zip", appID))

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return false, fmt.Errorf("cannot create staging dir %s: %w", stagingDir, err)
	}

	url := fmt.Sprintf("%s/%d.zip", f.baseURL, appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("bundle download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		f.log.WithField("appid", appID).Debug("no bundle data in bucket")
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("bundle download failed: %s", resp.Status)
	}

	archivePath := filepath.Join(stagingDir, fmt.Sprintf("%d.zip", appID))
	if err := writeBody(archivePath, resp.Body); err != nil {
		return false, err
	}
	sink.notify(StepDownloaded, filepath.Base(archivePath))

	sink.notify(StepExtracting, "")
	if err := archiver.Unarchive(archivePath, stagingDir); err != nil {
		return false, fmt.Errorf("cannot extract %s: %w", archivePath, err)
	}
	sink.notify(StepExtracted, "")

	if err := os.Remove(archivePath); err != nil {
		f.log.WithError(err).Warn("cannot remove downloaded archive")
	}
	return true, nil
}

func writeBody(path string, body io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}
