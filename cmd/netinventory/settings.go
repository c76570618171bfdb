package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"netinventory/internal/inventory"
	"netinventory/internal/orchestrator"
	"netinventory/internal/remote"
	"netinventory/pkg/logging"
)

const (
	executorGCloud = "gcloud"
	executorSSH    = "ssh"
	executorSSM    = "ssm"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Run      orchestrator.Config
	Executor string
	GCloud   remote.GCloudConfig
	SSH      remote.SSHConfig
	SSM      remote.SSMConfig
	AWS      awsSettings
}

type awsSettings struct {
	Region      string
	Profile     string
	ResolveEC2  bool // SSH targets come from EC2 instead of the machine name
	UsePublicIP bool
	InstanceIDs bool // SSM targets are instance IDs already
	Port        int
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Run: orchestrator.Config{
			InventoryPath:       v.GetString("inventory"),
			OutputPath:          v.GetString("output"),
			OutputFormat:        v.GetString("format"),
			CompareWithPrevious: v.GetBool("compare"),
			AttributesToCheck:   v.GetStringSlice("attributes"),
			RequireIPv4:         v.GetBool("require-ipv4"),
			Quiet:               v.GetBool("quiet"),
		},
		Executor: strings.ToLower(strings.TrimSpace(v.GetString("executor"))),
		GCloud: remote.GCloudConfig{
			Binary:   v.GetString("gcloud-binary"),
			Zone:     v.GetString("zone"),
			Project:  v.GetString("project"),
			SSHFlags: v.GetStringSlice("ssh-flag"),
		},
		SSH: remote.SSHConfig{
			User:           v.GetString("user"),
			Password:       v.GetString("password"),
			KeyPath:        v.GetString("key"),
			Passphrase:     v.GetString("passphrase"),
			KnownHostsPath: v.GetString("known-hosts"),
			StrictHostKey:  v.GetBool("strict-host-key"),
			DisableAgent:   v.GetBool("no-agent"),
			ConnTimeout:    v.GetDuration("conn-timeout"),
			CommandTimeout: v.GetDuration("cmd-timeout"),
		},
		SSM: remote.SSMConfig{
			DocumentName: v.GetString("ssm-document"),
			WaitTimeout:  v.GetDuration("ssm-wait"),
			PollInterval: v.GetDuration("ssm-poll"),
		},
		AWS: awsSettings{
			Region:      v.GetString("aws-region"),
			Profile:     v.GetString("aws-profile"),
			ResolveEC2:  v.GetBool("resolve-ec2"),
			UsePublicIP: v.GetBool("public-ip"),
			InstanceIDs: v.GetBool("ssm-instance-ids"),
			Port:        v.GetInt("port"),
		},
	}

	switch s.Executor {
	case executorGCloud, executorSSH, executorSSM:
	default:
		return settings{}, inventory.NewConfigError(inventory.ErrMalformed, "",
			fmt.Sprintf("unknown executor %q (want gcloud, ssh or ssm)", s.Executor), nil)
	}
	if s.AWS.Port <= 0 || s.AWS.Port > 65535 {
		return settings{}, inventory.NewConfigError(inventory.ErrMalformed, "",
			fmt.Sprintf("invalid SSH port %d", s.AWS.Port), nil)
	}
	return s, nil
}

// newLogger writes to w at the configured level, JSON unless --log-console.
func newLogger(v *viper.Viper, w io.Writer) logging.Logger {
	level := strings.ToLower(strings.TrimSpace(v.GetString("log-level")))
	return logging.NewLogger(w, logging.StringToLogLevel(level), v.GetBool("log-console"))
}

// syncLogger flushes buffered entries when the logger supports it.
func syncLogger(logger logging.Logger) error {
	if s, ok := logger.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
