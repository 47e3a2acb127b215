package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bctrainers/webmin/internal/channel"
	"github.com/bctrainers/webmin/internal/fetch"
	"github.com/bctrainers/webmin/internal/keyring"
	"github.com/bctrainers/webmin/internal/models"
	"github.com/bctrainers/webmin/internal/options"
	"github.com/bctrainers/webmin/internal/prompt"
	"github.com/bctrainers/webmin/internal/report"
	"github.com/bctrainers/webmin/internal/system"
	"github.com/bctrainers/webmin/internal/writer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// euid is swapped out in tests so the pipeline can run unprivileged
var euid = os.Geteuid

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	opts := options.Defaults()
	var channelName string
	var configFile string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure the repository and install its signing key",
		Long: `Detects the host's package manager, resolves the requested release
channel and writes the matching repository definition along with the
Webmin signing key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Channel = models.Channel(channelName)
			if !opts.Channel.Valid() {
				return fmt.Errorf("invalid channel %q (expected stable, prerelease or unstable)", channelName)
			}

			if configFile != "" {
				cfg, err := options.LoadFile(configFile)
				if err != nil {
					return err
				}
				applyFileConfig(cmd, cfg, opts)
			}

			logrus.Debugf("Configuration: %+v", opts)

			gate := &prompt.Gate{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			return runSetup(opts, system.NewRunner(), gate, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&channelName, "channel", "c", string(models.ChannelStable), "Release channel (stable, prerelease, unstable)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the repository definition instead of writing it")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML config file with overrides")

	cmd.Flags().StringVar(&opts.StableHost, "stable-host", "", "Override the stable channel origin URL")
	cmd.Flags().StringVar(&opts.PrereleaseHost, "prerelease-host", "", "Override the prerelease channel origin URL")
	cmd.Flags().StringVar(&opts.UnstableHost, "unstable-host", "", "Override the unstable channel origin URL")

	cmd.Flags().StringVar(&opts.KeyFile, "key-file", opts.KeyFile, "Signing key filename on the origin")
	cmd.Flags().StringVar(&opts.KeySuffix, "key-suffix", opts.KeySuffix, "Suffix namespacing the key on this host")

	cmd.Flags().StringVar(&opts.CheckBinary, "check-binary", opts.CheckBinary, "Binary whose absence triggers the install hint (empty disables)")
	cmd.Flags().StringSliceVar(&opts.CheckPackages, "check-packages", opts.CheckPackages, "Packages suggested by the install hint")

	return cmd
}

// applyFileConfig overlays file values, keeping anything set explicitly on
// the command line.
func applyFileConfig(cmd *cobra.Command, cfg *options.FileConfig, opts *options.Options) {
	guard := map[string]*string{
		"stable-host":     &cfg.StableHost,
		"prerelease-host": &cfg.PrereleaseHost,
		"unstable-host":   &cfg.UnstableHost,
		"key-file":        &cfg.KeyFile,
		"key-suffix":      &cfg.KeySuffix,
		"check-binary":    &cfg.CheckBinary,
	}
	for flag, field := range guard {
		if cmd.Flags().Changed(flag) {
			*field = ""
		}
	}
	if cmd.Flags().Changed("check-packages") {
		cfg.CheckPackages = nil
	}
	cfg.Apply(opts)
}

// runSetup drives the provisioning pipeline: resolve the OS dialect and the
// active channel profile, confirm with the operator, stage the signing key,
// write the repository definition and refresh package metadata.
func runSetup(opts *options.Options, runner system.Runner, gate *prompt.Gate, out io.Writer) error {
	if !opts.DryRun && euid() != 0 {
		return &models.SetupError{
			Type: models.ErrPermission,
			Err:  fmt.Errorf("repository setup requires root privileges"),
		}
	}

	osr, err := system.ReadOSRelease(opts.OSReleaseFile)
	if err != nil {
		return err
	}

	dialect, err := system.ResolveDialect(osr, runner)
	if err != nil {
		return err
	}
	logrus.Infof("Detected %s system using %s", dialect.Family, dialect.PackageManager)

	profile := channel.Resolve(opts.Channel, opts.Profiles())
	logrus.Infof("Active repository: %s (%s)", profile.Name, profile.Origin)

	w, err := writer.New(dialect, opts, runner)
	if err != nil {
		return err
	}

	if opts.DryRun {
		path, content := w.Artifact(profile, opts.Channel)
		fmt.Fprintf(out, "Would write %s:\n%s", path, content)
		return nil
	}

	confirmed, err := gate.Confirm(profile, opts.Channel, opts.Force)
	if err != nil {
		return err
	}
	if !confirmed {
		logrus.Info("Repository setup cancelled")
		return nil
	}

	stagedKey := filepath.Join(opts.StagingDir, opts.KeyFile)
	keyURL := profile.Origin + "/" + opts.KeyFile
	logrus.Infof("Fetching signing key from %s", keyURL)
	if err := fetch.NewFetcher(runner).FetchKey(keyURL, stagedKey, dialect); err != nil {
		return err
	}

	armored, err := os.ReadFile(stagedKey)
	if err != nil {
		return &models.SetupError{Type: models.ErrFileOp, Err: err}
	}
	if err := keyring.Validate(armored); err != nil {
		return &models.SetupError{
			Type: models.ErrDownload,
			Err:  fmt.Errorf("%s is not an armored public key: %w", keyURL, err),
		}
	}

	if err := w.InstallKey(stagedKey); err != nil {
		return err
	}
	if err := w.WriteArtifact(profile, opts.Channel); err != nil {
		return err
	}
	if err := w.RefreshMetadata(); err != nil {
		return err
	}

	report.PostCheck(out, opts, dialect)

	logrus.Infof("Repository %s configured successfully", profile.Name)
	return nil
}
