// Package report prints the post-setup installation hint.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bctrainers/webmin/internal/options"
	"github.com/bctrainers/webmin/internal/system"
)

// PostCheck prints an installation hint when the configured check binary is
// absent from the host. Absence is informational only: the repository's
// purpose is to make future installation possible, so this never fails the
// run. With no check binary configured the reporter stays silent.
func PostCheck(out io.Writer, opts *options.Options, dialect *system.Dialect) {
	if opts.CheckBinary == "" {
		return
	}
	if _, err := os.Stat(opts.CheckBinary); err == nil {
		return
	}

	name, args := dialect.InstallCommand(opts.CheckPackages...)
	fmt.Fprintf(out, "\nWebmin can now be installed with:\n\n  %s %s\n\n", name, strings.Join(args, " "))
}
