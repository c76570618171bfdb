package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"netinventory/internal/netplan"
	"netinventory/internal/report"
)

func newNetplanCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netplan <machine>",
		Short: "Render the netplan configuration of a machine from the output document",
		Long: `netplan reads the JSON output document and renders a netplan v2 file for
one machine: the interface on the management subnet becomes ens5 and the one
on the internal subnet becomes ens6, both matched by MAC address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("output")
			records, err := report.ReadRecords(path)
			if err != nil {
				return err
			}
			if records == nil {
				return fmt.Errorf("no output document at %s, run netinventory first", path)
			}

			record := netplan.FindInstance(records, args[0])
			if record == nil {
				return fmt.Errorf("machine %s is not in %s", args[0], path)
			}

			classifier, err := netplan.NewClassifier(v.GetString("internal-cidr"), v.GetString("management-cidr"))
			if err != nil {
				return err
			}
			data, err := netplan.Render(record, classifier)
			if err != nil {
				return fmt.Errorf("machine %s: %w", args[0], err)
			}

			if dest := v.GetString("write"); dest != "" {
				return os.WriteFile(dest, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().String("internal-cidr", netplan.DefaultInternalCIDR, "Subnet of the internal network")
	cmd.Flags().String("management-cidr", netplan.DefaultManagementCIDR, "Subnet of the management network")
	cmd.Flags().String("write", "", "Write the configuration to this file instead of stdout")
	bindFlags(v, cmd.Flags())
	return cmd
}
