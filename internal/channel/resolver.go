// Package channel derives the active repository profile for a run.
package channel

import (
	"github.com/bctrainers/webmin/internal/models"
)

// Resolve returns the active repository profile for the requested channel.
// The stable profile is used verbatim. For prerelease and unstable, a
// distribution label still equal to the generic default is overridden to
// the channel-neutral label, so the non-stable lines never inherit a label
// meant for the stable line. Resolve is pure: same inputs, same profile.
func Resolve(ch models.Channel, profiles map[models.Channel]models.RepositoryProfile) models.RepositoryProfile {
	profile := profiles[ch]
	if ch != models.ChannelStable && profile.Distribution == models.DefaultDistribution {
		profile.Distribution = models.NeutralDistribution
	}
	return profile
}
