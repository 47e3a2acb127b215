package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bctrainers/webmin/internal/models"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()
	if opts.Channel != models.ChannelStable {
		t.Errorf("Channel = %s, want stable", opts.Channel)
	}
	if opts.KeyFile != "developers-key.asc" {
		t.Errorf("KeyFile = %s", opts.KeyFile)
	}
	if opts.AptRepoDir != "/etc/apt/sources.list.d" {
		t.Errorf("AptRepoDir = %s", opts.AptRepoDir)
	}
}

func TestProfiles(t *testing.T) {
	profiles := Defaults().Profiles()
	if len(profiles) != 3 {
		t.Fatalf("Expected three channel profiles, got %d", len(profiles))
	}

	stable := profiles[models.ChannelStable]
	if stable.Origin != "https://download.webmin.com" {
		t.Errorf("Stable origin = %s", stable.Origin)
	}
	if stable.Section != "contrib" {
		t.Errorf("Stable section = %s, want contrib", stable.Section)
	}

	// All profile templates start from the generic distribution default
	for ch, p := range profiles {
		if p.Distribution != models.DefaultDistribution {
			t.Errorf("%s template distribution = %s, want %s", ch, p.Distribution, models.DefaultDistribution)
		}
	}
}

func TestProfilesHostOverride(t *testing.T) {
	opts := Defaults()
	opts.UnstableHost = "https://mirror.example.org"

	profiles := opts.Profiles()
	if got := profiles[models.ChannelUnstable].Origin; got != "https://mirror.example.org" {
		t.Errorf("Unstable origin = %s, want override", got)
	}
	if got := profiles[models.ChannelPrerelease].Origin; got != "https://rc.download.webmin.dev" {
		t.Errorf("Prerelease origin = %s, want default", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	content := `stable_host: https://mirror.example.com
key_suffix: custom-suffix
check_packages:
  - webmin
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	opts := Defaults()
	cfg.Apply(opts)

	if opts.StableHost != "https://mirror.example.com" {
		t.Errorf("StableHost = %s", opts.StableHost)
	}
	if opts.KeySuffix != "custom-suffix" {
		t.Errorf("KeySuffix = %s", opts.KeySuffix)
	}
	if len(opts.CheckPackages) != 1 || opts.CheckPackages[0] != "webmin" {
		t.Errorf("CheckPackages = %v", opts.CheckPackages)
	}
	// Untouched fields keep their defaults
	if opts.KeyFile != "developers-key.asc" {
		t.Errorf("KeyFile = %s, want default", opts.KeyFile)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Expected an error for a missing config file")
	}
}

func TestApplySkipsEmptyValues(t *testing.T) {
	opts := Defaults()
	(&FileConfig{}).Apply(opts)
	if opts.KeySuffix != "webmin-developers" {
		t.Errorf("Empty file config must not clear defaults")
	}
}
