package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/options"
	"github.com/bctrainers/webmin/internal/system"
	"github.com/bctrainers/webmin/internal/utils"
	"github.com/sirupsen/logrus"
)

// rpmWriter provisions dnf/yum and zypper repositories
type rpmWriter struct {
	dialect *system.Dialect
	opts    *options.Options
	runner  system.Runner
}

func (w *rpmWriter) trustPath() string {
	return filepath.Join(w.opts.RPMTrustDir, "RPM-GPG-KEY-"+w.opts.KeySuffix)
}

// InstallKey imports the key into the rpm database and copies it into the
// trust-store directory under the vendor suffix, replacing any older copy.
func (w *rpmWriter) InstallKey(stagedKey string) error {
	// Captured and reported only; the gpgkey file below is the durable part
	if _, err := w.runner.Run("rpm", "--import", stagedKey); err != nil {
		logrus.Warnf("rpm key import failed: %v", err)
	}

	if err := utils.RemoveIfExists(w.trustPath()); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("removing stale key %s: %w", w.trustPath(), err),
		}
	}
	if err := utils.CopyFile(stagedKey, w.trustPath()); err != nil {
		return &models.SetupError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("installing key to %s: %w", w.trustPath(), err),
		}
	}

	logrus.Infof("Installed signing key to %s", w.trustPath())
	return nil
}

// Artifact returns the .repo file path and its INI content. The stable
// channel gets the fixed yum path suffix appended to the origin; other
// channels use the origin verbatim.
func (w *rpmWriter) Artifact(profile models.RepositoryProfile, ch models.Channel) (string, string) {
	baseURL := stableBaseURL(profile.Origin, "/download/newkey/yum", ch)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s-noarch]\n", profile.Name)
	fmt.Fprintf(&b, "name=%s\n", profile.Description)
	fmt.Fprintf(&b, "baseurl=%s\n", baseURL)
	b.WriteString("enabled=1\n")
	fmt.Fprintf(&b, "gpgkey=file://%s\n", w.trustPath())
	b.WriteString("gpgcheck=1\n")
	if w.dialect.Family == system.FamilySUSE {
		b.WriteString("autorefresh=1\n")
	}

	path := filepath.Join(w.opts.YumRepoDir, profile.Name+".repo")
	return path, b.String()
}

// WriteArtifact writes the .repo file as a full overwrite
func (w *rpmWriter) WriteArtifact(profile models.RepositoryProfile, ch models.Channel) error {
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

// RefreshMetadata cleans the metadata cache and rebuilds it
func (w *rpmWriter) RefreshMetadata() error {
	if _, err := w.runner.Run(w.dialect.PackageManager, w.dialect.CleanArgs...); err != nil {
		logrus.Warnf("Metadata cache clean failed: %v", err)
	}
	if _, err := w.runner.Run(w.dialect.PackageManager, w.dialect.UpdateArgs...); err != nil {
		logrus.Warnf("Metadata refresh failed: %v", err)
		return nil
	}
	logrus.Info("Package metadata refreshed")
	return nil
}
