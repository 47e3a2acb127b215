// Package writer synthesizes the on-disk repository definition for the
// host's package-manager dialect.
package writer

import (
	"fmt"

	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/options"
	"github.com/bctrainers/webmin/internal/system"
)

// Writer provisions a repository definition for one dialect
type Writer interface {
	// InstallKey installs the staged trust key into the dialect's trust
	// store, replacing any previous copy
	InstallKey(stagedKey string) error

	// Artifact returns the repository file path and its full content
	Artifact(profile models.RepositoryProfile, ch models.Channel) (path string, content string)

	// WriteArtifact writes the repository file as a full overwrite,
	// clearing out any conflicting older declarations first
	WriteArtifact(profile models.RepositoryProfile, ch models.Channel) error

	// RefreshMetadata asks the package manager to rebuild its metadata
	// cache; failures here are reported but never fatal
	RefreshMetadata() error
}

// New returns the writer for the host's dialect
func New(dialect *system.Dialect, opts *options.Options, runner system.Runner) (Writer, error) {
	switch dialect.Family {
	case system.FamilyDebian:
		return &debianWriter{dialect: dialect, opts: opts, runner: runner}, nil
	case system.FamilyRHEL, system.FamilySUSE:
		return &rpmWriter{dialect: dialect, opts: opts, runner: runner}, nil
	}
	return nil, &models.SetupError{
		Type: models.ErrUnsupportedPackageManager,
		Err:  fmt.Errorf("no repository writer for package manager family %s", dialect.Family),
	}
}

// stableBaseURL appends the fixed stable-channel path suffix to the origin.
// Non-stable channels use the origin verbatim.
func stableBaseURL(origin, suffix string, ch models.Channel) string {
	if ch == models.ChannelStable {
		return origin + suffix
	}
	return origin
}
