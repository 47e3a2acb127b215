package models

// Channel identifies a Webmin release line
type Channel string

const (
	ChannelStable     Channel = "stable"
	ChannelPrerelease Channel = "prerelease"
	ChannelUnstable   Channel = "unstable"
)

// DefaultDistribution is the generic distribution label carried by all
// channel profiles until channel resolution decides otherwise.
const DefaultDistribution = "stable"

// NeutralDistribution replaces DefaultDistribution on the prerelease and
// unstable channels, so that they never advertise the stable line's label.
const NeutralDistribution = "webmin"

// Channels lists all supported release lines
var Channels = []Channel{ChannelStable, ChannelPrerelease, ChannelUnstable}

// Valid reports whether the channel is one of the supported release lines
func (c Channel) Valid() bool {
	switch c {
	case ChannelStable, ChannelPrerelease, ChannelUnstable:
		return true
	}
	return false
}

// RepositoryProfile contains the repository parameters of one release
// channel. Profiles are built once at startup and never mutated afterwards;
// the channel resolver returns a derived copy for the active channel.
type RepositoryProfile struct {
	Name         string // repository/file name, e.g. webmin-stable
	Description  string // human readable description
	Origin       string // download origin URL
	Distribution string // distribution label for apt sources
	Component    string // component label used by non-stable channels
	Section      string // section label used by the stable channel
}
