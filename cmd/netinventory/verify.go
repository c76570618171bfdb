package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"netinventory/internal/inventory"
	awsprovider "netinventory/internal/providers/aws"
)

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validate the inventory without contacting any machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(v, cmd.ErrOrStderr())
			path := v.GetString("inventory")
			loader := inventory.NewLoaderWithLogger(logger)

			if !v.GetBool("ec2") {
				count, err := loader.Validate(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inventory OK: %d machines in %s\n", count, path)
				return nil
			}

			names, err := loader.LoadMachineNames(path)
			if err != nil {
				return err
			}
			cfg, err := loadAWSConfig(cmd.Context(), v.GetString("aws-region"), v.GetString("aws-profile"))
			if err != nil {
				return err
			}
			return lookupAll(cmd.Context(), newInstanceService(cfg, awsSettings{}, logger), names, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("ec2", false, "Also look up every machine as a running EC2 instance by Name tag")
	bindFlags(v, cmd.Flags())
	return cmd
}

// lookupAll prints where every machine runs. All names are looked up; the
// error reports how many could not be found.
func lookupAll(ctx context.Context, svc awsprovider.InstanceServiceAPI, names []string, out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MACHINE\tINSTANCE\tPRIVATE IP\tPUBLIC IP\tSTATE")

	missing := 0
	for _, name := range names {
		loc, err := svc.LookupInstance(ctx, name)
		if err != nil {
			missing++
			fmt.Fprintf(w, "%s\t<missing>\t\t\t%s\n", name, errorReason(err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, loc.InstanceID, orNone(loc.PrivateIP), orNone(loc.PublicIP), loc.State)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d machines have no running EC2 instance", missing, len(names))
	}
	fmt.Fprintf(out, "Inventory OK: %d machines found in EC2\n", len(names))
	return nil
}

func errorReason(err error) string {
	for _, category := range []awsprovider.ErrorCategory{
		awsprovider.ErrResourceNotFound,
		awsprovider.ErrPermissionDenied,
		awsprovider.ErrThrottling,
	} {
		if awsprovider.IsErrorCategory(err, category) {
			return string(category)
		}
	}
	return err.Error()
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
