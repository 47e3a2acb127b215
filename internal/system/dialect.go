package system

import (
	"fmt"
	"strings"

	"github.com/bctrainers/webmin/internal/models"
)

// Family represents a package-manager family
type Family int

const (
	FamilyUnknown Family = iota
	FamilyDebian
	FamilyRHEL
	FamilySUSE
)

// String returns the string representation of Family
func (f Family) String() string {
	switch f {
	case FamilyDebian:
		return "debian"
	case FamilyRHEL:
		return "rhel"
	case FamilySUSE:
		return "suse"
	default:
		return "unknown"
	}
}

// familyKeywords maps each family to the identification keywords that select
// it. Classification is substring membership of a keyword in the match
// corpus, since ID_LIKE may carry several tokens.
var familyKeywords = map[Family][]string{
	FamilyDebian: {"debian", "ubuntu"},
	FamilyRHEL:   {"rhel", "fedora", "centos", "openeuler"},
	FamilySUSE:   {"suse"},
}

// classifyOrder fixes the order families are checked in; the vocabularies
// are disjoint so at most one can match.
var classifyOrder = []Family{FamilyDebian, FamilyRHEL, FamilySUSE}

// Classify maps an os-release identification onto a package-manager family
func Classify(osr *OSRelease) (Family, error) {
	corpus := strings.ToLower(osr.matchCorpus())
	for _, family := range classifyOrder {
		for _, keyword := range familyKeywords[family] {
			if strings.Contains(corpus, keyword) {
				return family, nil
			}
		}
	}
	return FamilyUnknown, &models.SetupError{
		Type: models.ErrUnsupportedOs,
		Err:  fmt.Errorf("unsupported operating system %q", osr.matchCorpus()),
	}
}

// Dialect carries everything downstream steps need to know about the host's
// package manager: the concrete command, its invocation templates and the
// naming conventions for repository files and keys. It is derived once and
// never re-computed.
type Dialect struct {
	Family         Family
	PackageManager string   // apt-get, dnf, yum or zypper
	InstallArgs    []string // arguments preceding the package names
	UpdateArgs     []string // metadata refresh
	CleanArgs      []string // metadata cache clean
	RepoID         string   // identifier used in key and file names
}

// ResolveDialect classifies the host and derives its dialect. On RHEL-like
// systems dnf is preferred over yum by a plain existence check, in that
// order.
func ResolveDialect(osr *OSRelease, runner Runner) (*Dialect, error) {
	family, err := Classify(osr)
	if err != nil {
		return nil, err
	}

	switch family {
	case FamilyDebian:
		return &Dialect{
			Family:         family,
			PackageManager: "apt-get",
			InstallArgs:    []string{"install", "-y"},
			UpdateArgs:     []string{"update"},
			CleanArgs:      []string{"clean"},
			RepoID:         "debian",
		}, nil
	case FamilyRHEL:
		pm := "yum"
		if _, err := runner.LookPath("dnf"); err == nil {
			pm = "dnf"
		}
		return &Dialect{
			Family:         family,
			PackageManager: pm,
			InstallArgs:    []string{"install", "-y"},
			UpdateArgs:     []string{"makecache"},
			CleanArgs:      []string{"clean", "all"},
			RepoID:         "rpm",
		}, nil
	case FamilySUSE:
		return &Dialect{
			Family:         family,
			PackageManager: "zypper",
			InstallArgs:    []string{"install", "-y"},
			UpdateArgs:     []string{"refresh"},
			CleanArgs:      []string{"clean"},
			RepoID:         "rpm",
		}, nil
	}

	return nil, &models.SetupError{
		Type: models.ErrUnsupportedPackageManager,
		Err:  fmt.Errorf("no package manager known for family %s", family),
	}
}

// InstallCommand returns the dialect's install invocation for the given
// packages, for execution or display.
func (d *Dialect) InstallCommand(packages ...string) (string, []string) {
	return d.PackageManager, append(append([]string{}, d.InstallArgs...), packages...)
}
