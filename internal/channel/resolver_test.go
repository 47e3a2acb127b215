package channel

import (
	"testing"

	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/options"
)

func TestResolveStableVerbatim(t *testing.T) {
	profiles := options.Defaults().Profiles()

	active := Resolve(models.ChannelStable, profiles)
	if active.Name != "webmin-stable" {
		t.Errorf("Name = %s, want webmin-stable", active.Name)
	}
	if active.Distribution != models.DefaultDistribution {
		t.Errorf("Distribution = %s, want %s", active.Distribution, models.DefaultDistribution)
	}
	if active != profiles[models.ChannelStable] {
		t.Errorf("Stable profile must be used verbatim")
	}
}

func TestResolveNonStableDistributionOverride(t *testing.T) {
	profiles := options.Defaults().Profiles()

	for _, ch := range []models.Channel{models.ChannelPrerelease, models.ChannelUnstable} {
		t.Run(string(ch), func(t *testing.T) {
			active := Resolve(ch, profiles)
			if active.Distribution == models.DefaultDistribution {
				t.Errorf("%s channel kept the stable-only distribution label", ch)
			}
			if active.Distribution != models.NeutralDistribution {
				t.Errorf("Distribution = %s, want %s", active.Distribution, models.NeutralDistribution)
			}
		})
	}
}

func TestResolveKeepsExplicitDistribution(t *testing.T) {
	profiles := options.Defaults().Profiles()
	p := profiles[models.ChannelUnstable]
	p.Distribution = "experimental"
	profiles[models.ChannelUnstable] = p

	active := Resolve(models.ChannelUnstable, profiles)
	if active.Distribution != "experimental" {
		t.Errorf("Distribution = %s, want experimental", active.Distribution)
	}
}

func TestResolveIsPure(t *testing.T) {
	profiles := options.Defaults().Profiles()

	first := Resolve(models.ChannelPrerelease, profiles)
	for i := 0; i < 5; i++ {
		if again := Resolve(models.ChannelPrerelease, profiles); again != first {
			t.Fatalf("Resolve is not pure: %+v vs %+v", first, again)
		}
	}
	// Templates must not be mutated by resolution
	if profiles[models.ChannelPrerelease].Distribution != models.DefaultDistribution {
		t.Errorf("Resolve mutated the profile templates")
	}
}

func TestResolveHostOverride(t *testing.T) {
	opts := options.Defaults()
	opts.PrereleaseHost = "https://mirror.example.com"

	active := Resolve(models.ChannelPrerelease, opts.Profiles())
	if active.Origin != "https://mirror.example.com" {
		t.Errorf("Origin = %s, want override", active.Origin)
	}

	// Other channels keep their defaults
	stable := Resolve(models.ChannelStable, opts.Profiles())
	if stable.Origin != "https://download.webmin.com" {
		t.Errorf("Stable origin = %s, want default", stable.Origin)
	}
}
