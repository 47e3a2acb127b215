// Package fetch stages the vendor signing key from the active origin.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/system"
	"github.com/bctrainers/webmin/internal/utils"
	"github.com/sirupsen/logrus"
)

// downloader is one download-tool backend in the fallback chain
type downloader interface {
	Name() string
	Available() bool
	Fetch(url, dest string) error
}

// Fetcher downloads the trust key through a preference-ordered chain of
// download tools: curl, then wget, then a built-in HTTP client. When curl is
// missing the chain additionally attempts a one-shot install of it through
// the host's package manager before giving up.
type Fetcher struct {
	runner system.Runner
	client *http.Client
}

// NewFetcher creates a key fetcher using the given command runner
func NewFetcher(runner system.Runner) *Fetcher {
	return &Fetcher{
		runner: runner,
		client: http.DefaultClient,
	}
}

// FetchKey stages the key at url into dest. Any stale staged copy is
// removed first. Exhausting every backend is fatal; the returned error
// carries the last tool diagnostic flattened to a single line.
func (f *Fetcher) FetchKey(url, dest string, dialect *system.Dialect) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("creating staging directory: %w", err),
		}
	}
	if err := utils.RemoveIfExists(dest); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("removing stale key %s: %w", dest, err),
		}
	}

	curl := &toolDownloader{runner: f.runner, name: "curl", args: []string{"-f", "-s", "-S", "-L", "-o"}}
	chain := []downloader{
		curl,
		&toolDownloader{runner: f.runner, name: "wget", args: []string{"-q", "-O"}},
		&httpDownloader{client: f.client},
	}

	var lastErr error
	for _, d := range chain {
		if !d.Available() {
			continue
		}
		logrus.Debugf("Downloading %s with %s", url, d.Name())
		if err := d.Fetch(url, dest); err != nil {
			lastErr = err
			logrus.Debugf("Download with %s failed: %v", d.Name(), err)
			continue
		}
		return nil
	}

	// Last resort: install the preferred tool and retry it once
	if !curl.Available() {
		logrus.Debugf("Attempting to install curl with %s", dialect.PackageManager)
		name, args := dialect.InstallCommand("curl")
		if _, err := f.runner.Run(name, args...); err == nil && curl.Available() {
			err := curl.Fetch(url, dest)
			if err == nil {
				return nil
			}
			lastErr = err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no download tool available")
	}
	return &models.SetupError{
		Type: models.ErrDownload,
		Err:  fmt.Errorf("fetching %s: %s", url, system.Flatten(lastErr.Error())),
	}
}

// toolDownloader shells out to an external download tool
type toolDownloader struct {
	runner system.Runner
	name   string
	args   []string // flags preceding "dest url"
}

func (t *toolDownloader) Name() string { return t.name }

func (t *toolDownloader) Available() bool {
	_, err := t.runner.LookPath(t.name)
	return err == nil
}

func (t *toolDownloader) Fetch(url, dest string) error {
	args := append(append([]string{}, t.args...), dest, url)
	_, err := t.runner.Run(t.name, args...)
	return err
}

// httpDownloader fetches with the standard library client
type httpDownloader struct {
	client *http.Client
}

func (h *httpDownloader) Name() string { return "http" }

func (h *httpDownloader) Available() bool { return true }

func (h *httpDownloader) Fetch(url, dest string) error {
	resp, err := h.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download failed: %s status=%d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}
