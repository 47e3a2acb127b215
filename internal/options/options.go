package options

import (
	"fmt"
	"os"

	"github.com/bctrainers/webmin/internal/models"
	"gopkg.in/yaml.v3"
)

// Options is the resolved configuration for a setup run. It is constructed
// once by merging built-in defaults, an optional config file and command
// line flags, and treated as read-only by every later stage.
type Options struct {
	Channel models.Channel
	Force   bool
	DryRun  bool

	// Per-channel origin overrides; empty means built-in default
	StableHost     string
	PrereleaseHost string
	UnstableHost   string

	KeyFile   string // filename of the signing key on the origin
	KeySuffix string // namespaces the key among other vendors on the host

	CheckBinary   string // post-check: binary whose absence triggers the hint
	CheckPackages []string

	// Host paths, overridable mainly for tests
	StagingDir     string
	AptRepoDir     string
	AptSourcesFile string
	KeyringDir     string
	YumRepoDir     string
	RPMTrustDir    string
	OSReleaseFile  string
}

// Defaults returns the built-in configuration
func Defaults() *Options {
	return &Options{
		Channel:        models.ChannelStable,
		KeyFile:        "developers-key.asc",
		KeySuffix:      "webmin-developers",
		CheckBinary:    "/usr/libexec/webmin",
		CheckPackages:  []string{"webmin", "usermin"},
		StagingDir:     os.TempDir(),
		AptRepoDir:     "/etc/apt/sources.list.d",
		AptSourcesFile: "/etc/apt/sources.list",
		KeyringDir:     "/usr/share/keyrings",
		YumRepoDir:     "/etc/yum.repos.d",
		RPMTrustDir:    "/etc/pki/rpm-gpg",
		OSReleaseFile:  "/etc/os-release",
	}
}

// FileConfig mirrors the override fields accepted from a YAML config file
type FileConfig struct {
	StableHost     string   `yaml:"stable_host"`
	PrereleaseHost string   `yaml:"prerelease_host"`
	UnstableHost   string   `yaml:"unstable_host"`
	KeyFile        string   `yaml:"key_file"`
	KeySuffix      string   `yaml:"key_suffix"`
	CheckBinary    string   `yaml:"check_binary"`
	CheckPackages  []string `yaml:"check_packages"`
	StagingDir     string   `yaml:"staging_dir"`
}

// LoadFile reads a YAML config file. A missing file is not an error when
// path is empty; an explicitly named file must exist.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Apply overlays the non-empty file values onto the options
func (c *FileConfig) Apply(o *Options) {
	if c.StableHost != "" {
		o.StableHost = c.StableHost
	}
	if c.PrereleaseHost != "" {
		o.PrereleaseHost = c.PrereleaseHost
	}
	if c.UnstableHost != "" {
		o.UnstableHost = c.UnstableHost
	}
	if c.KeyFile != "" {
		o.KeyFile = c.KeyFile
	}
	if c.KeySuffix != "" {
		o.KeySuffix = c.KeySuffix
	}
	if c.CheckBinary != "" {
		o.CheckBinary = c.CheckBinary
	}
	if len(c.CheckPackages) > 0 {
		o.CheckPackages = c.CheckPackages
	}
	if c.StagingDir != "" {
		o.StagingDir = c.StagingDir
	}
}

// Profiles returns the channel profile templates with any host overrides
// applied. The distribution label stays at the generic default here; only
// the channel resolver adjusts it for the active channel.
func (o *Options) Profiles() map[models.Channel]models.RepositoryProfile {
	profiles := map[models.Channel]models.RepositoryProfile{
		models.ChannelStable: {
			Name:         "webmin-stable",
			Description:  "Webmin Releases",
			Origin:       "https://download.webmin.com",
			Distribution: models.DefaultDistribution,
			Component:    "contrib",
			Section:      "contrib",
		},
		models.ChannelPrerelease: {
			Name:         "webmin-prerelease",
			Description:  "Webmin Prereleases",
			Origin:       "https://rc.download.webmin.dev",
			Distribution: models.DefaultDistribution,
			Component:    "main",
			Section:      "main",
		},
		models.ChannelUnstable: {
			Name:         "webmin-unstable",
			Description:  "Webmin Development Builds",
			Origin:       "https://download.webmin.dev",
			Distribution: models.DefaultDistribution,
			Component:    "main",
			Section:      "main",
		},
	}

	overrides := map[models.Channel]string{
		models.ChannelStable:     o.StableHost,
		models.ChannelPrerelease: o.PrereleaseHost,
		models.ChannelUnstable:   o.UnstableHost,
	}
	for ch, host := range overrides {
		if host == "" {
			continue
		}
		p := profiles[ch]
		p.Origin = host
		profiles[ch] = p
	}

	return profiles
}
