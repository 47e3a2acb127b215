package writer

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bctrainers/webmin/internal/keyring"
	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/options"
	"github.com/bctrainers/webmin/internal/system"
	"github.com/bctrainers/webmin/internal/utils"
	"github.com/sirupsen/logrus"
)

// legacyKeyringName is the keyring filename used before keys were
// namespaced per vendor suffix; it is purged on every run so hosts
// provisioned under the old naming scheme do not keep a stale key.
const legacyKeyringName = "jcameron-key.gpg"

// debianWriter provisions apt repositories
type debianWriter struct {
	dialect *system.Dialect
	opts    *options.Options
	runner  system.Runner
}

func (w *debianWriter) keyringPath() string {
	return filepath.Join(w.opts.KeyringDir, fmt.Sprintf("%s-%s.gpg", w.dialect.RepoID, w.opts.KeySuffix))
}

// InstallKey purges previous keyrings for this vendor, imports the key into
// the system key database and dearmors it into the vendor keyring.
func (w *debianWriter) InstallKey(stagedKey string) error {
	for _, stale := range []string{
		filepath.Join(w.opts.KeyringDir, legacyKeyringName),
		w.keyringPath(),
	} {
		if err := utils.RemoveIfExists(stale); err != nil {
			return &models.SetupError{
				Type: models.ErrFileOp,
				Err:  fmt.Errorf("removing stale keyring %s: %w", stale, err),
			}
		}
	}

	// Best effort; the dearmored keyring below is what apt actually uses
	if _, err := w.runner.Run("gpg", "--import", stagedKey); err != nil {
		logrus.Debugf("gpg import failed: %v", err)
	}

	armored, err := os.ReadFile(stagedKey)
	if err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("reading staged key: %w", err),
		}
	}
	binary, err := keyring.Dearmor(armored)
	if err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("dearmoring key: %w", err),
		}
	}
	if err := utils.WriteFile(w.keyringPath(), binary, 0644); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("writing keyring: %w", err),
		}
	}

	logrus.Infof("Installed signing key to %s", w.keyringPath())
	return nil
}

// Artifact returns the source-list path and its single deb line. The stable
// channel gets the fixed repository path suffix and the section label,
// other channels the plain origin and the component label.
func (w *debianWriter) Artifact(profile models.RepositoryProfile, ch models.Channel) (string, string) {
	baseURL := stableBaseURL(profile.Origin, "/download/newkey/repository", ch)
	label := profile.Component
	if ch == models.ChannelStable {
		label = profile.Section
	}

	line := fmt.Sprintf("deb [signed-by=%s] %s %s %s\n", w.keyringPath(), baseURL, profile.Distribution, label)
	path := filepath.Join(w.opts.AptRepoDir, profile.Name+".list")
	return path, line
}

// WriteArtifact strips conflicting declarations out of the legacy sources
// file, then writes the source list as its sole content.
func (w *debianWriter) WriteArtifact(profile models.RepositoryProfile, ch models.Channel) error {
	if err := w.stripLegacySources(profile.Origin); err != nil {
		return err
	}

	path, content := w.Artifact(profile, ch)
	if err := utils.WriteFile(path, []byte(content), 0644); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("writing %s: %w", path, err),
		}
	}

	logrus.Infof("Wrote repository definition to %s", path)
	return nil
}

// stripLegacySources rewrites the system-wide sources file with every line
// mentioning the repository host removed, so older manual declarations do
// not conflict with the new source list.
func (w *debianWriter) stripLegacySources(origin string) error {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}

	data, err := os.ReadFile(w.opts.AptSourcesFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("reading %s: %w", w.opts.AptSourcesFile, err),
		}
	}

	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, host) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return nil
	}

	if err := os.WriteFile(w.opts.AptSourcesFile, []byte(strings.Join(kept, "\n")), 0644); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("rewriting %s: %w", w.opts.AptSourcesFile, err),
		}
	}

	logrus.Infof("Removed %d stale %s entries from %s", removed, host, w.opts.AptSourcesFile)
	return nil
}

// RefreshMetadata cleans the package cache and refreshes the package lists
func (w *debianWriter) RefreshMetadata() error {
	if _, err := w.runner.Run(w.dialect.PackageManager, w.dialect.CleanArgs...); err != nil {
		logrus.Warnf("Package cache clean failed: %v", err)
	}
	if _, err := w.runner.Run(w.dialect.PackageManager, w.dialect.UpdateArgs...); err != nil {
		logrus.Warnf("Package list update failed: %v", err)
		return nil
	}
	logrus.Info("Package metadata refreshed")
	return nil
}
