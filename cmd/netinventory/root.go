package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"netinventory/internal/inventory"
	"netinventory/internal/orchestrator"
	"netinventory/internal/remote"
)

const (
	envPrefix            = "NETINVENTORY"
	defaultInventoryPath = "run/config/vars/0101_bootstrap.yml"
	defaultOutputPath    = "run/config/vars/mac_addrs.json"
)

// newRootCmd builds the command tree. Every flag is bound to v so it can also
// come from a NETINVENTORY_* variable or the --config file.
func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netinventory",
		Short: "Record the network interfaces of every machine in the inventory",
		Long: `netinventory connects to each machine listed in the inventory, lists its
network devices with their MAC and first IPv4 address, and rewrites the
JSON output document after every machine.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscovery(cmd, v)
		},
	}

	global := cmd.PersistentFlags()
	global.String("config", "", "Path to a YAML config file holding flag values")
	global.StringP("inventory", "i", defaultInventoryPath, "Path to the inventory (YAML, JSON or HCL)")
	global.StringP("output", "o", defaultOutputPath, "Path to the JSON output document")
	global.String("log-level", "info", "Log level: debug, info, warn or error")
	global.Bool("log-console", false, "Write human-readable log lines instead of JSON")
	global.String("aws-region", "", "AWS region for EC2 and SSM calls")
	global.String("aws-profile", "", "Shared AWS config profile")

	flags := cmd.Flags()
	flags.String("format", "table", "Summary format: table or json")
	flags.Bool("compare", false, "Report interface changes against the existing output document")
	flags.StringSlice("attributes", nil, "Attributes to compare (interface, ipv4, mac); all when empty")
	flags.Bool("require-ipv4", false, "Fail when a device has no IPv4 address")
	flags.BoolP("quiet", "q", false, "Do not print the summary")
	flags.String("executor", executorGCloud, "How to reach machines: gcloud, ssh or ssm")

	flags.String("gcloud-binary", "gcloud", "gcloud executable")
	flags.String("zone", "", "Compute zone passed to gcloud")
	flags.String("project", "", "Project passed to gcloud")
	flags.StringSlice("ssh-flag", nil, "Extra --ssh-flag values passed to gcloud")

	flags.StringP("user", "u", "", "SSH username")
	flags.String("password", "", "SSH password (or set NETINVENTORY_PASSWORD)")
	flags.String("key", "", "Path to SSH private key (PEM, OpenSSH)")
	flags.String("passphrase", "", "Private key passphrase (or set NETINVENTORY_PASSPHRASE)")
	flags.String("known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file")
	flags.Bool("strict-host-key", true, "Require host key verification (disable to accept any host key)")
	flags.Bool("no-agent", false, "Do not use SSH_AUTH_SOCK")
	flags.Int("port", 22, "SSH port")
	flags.Duration("conn-timeout", 15*time.Second, "SSH connection timeout")
	flags.Duration("cmd-timeout", 0, "Per-command timeout (e.g., 30s). 0 disables")
	flags.Bool("resolve-ec2", false, "Resolve machine names to EC2 instance addresses by Name tag")
	flags.Bool("public-ip", false, "Prefer the public address of EC2 instances")

	flags.String("ssm-document", remote.DefaultSSMDocument, "SSM document used to run commands")
	flags.Duration("ssm-wait", remote.DefaultSSMWaitTimeout, "How long to wait for each SSM command")
	flags.Duration("ssm-poll", remote.DefaultSSMPollInterval, "Delay between SSM status polls")
	flags.Bool("ssm-instance-ids", false, "Inventory names are EC2 instance IDs, skip the Name tag lookup")

	bindFlags(v, global)
	bindFlags(v, flags)

	cmd.AddCommand(newVerifyCmd(v), newNetplanCmd(v))
	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// initConfig enables environment overrides and reads the optional config file.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return inventory.NewConfigError(inventory.ErrUnreadable, path, "cannot read config file", err)
		}
	}
	return nil
}

func runDiscovery(cmd *cobra.Command, v *viper.Viper) error {
	s, err := loadSettings(v)
	if err != nil {
		return err
	}
	logger := newLogger(v, cmd.ErrOrStderr())
	defer func() { _ = syncLogger(logger) }()
	ctx := cmd.Context()

	executor, err := buildExecutor(ctx, s, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := executor.Close(); cerr != nil {
			logger.Warn("Closing %s executor: %v", s.Executor, cerr)
		}
	}()

	records, err := orchestrator.NewDefaultService(s.Run, executor, logger).Run(ctx)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		logger.Info("Recorded %d instances in %s", len(records), s.Run.OutputPath)
	}
	return nil
}
