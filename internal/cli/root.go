package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "setup-repos",
		Short: "Set up the Webmin package repository on this host",
		Long: `Setup-repos configures this host's package manager to install Webmin
from one of the official release channels.

Supported package managers:
  - Debian/APT (Debian, Ubuntu and derivatives)
  - Yum/DNF (RHEL, Fedora, CentOS, openEuler)
  - Zypper (SUSE)`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(NewSetupCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
