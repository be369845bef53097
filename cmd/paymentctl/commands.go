package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/reconcile"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

type deps struct {
	reconciler reconcile.Service
	channels   gateway.ChannelSource
	ledger     wallet.Service
	close      func()
}

type depsFactory func(ctx context.Context) (*deps, error)

func newRootCmd(build depsFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "paymentctl",
		Short:         "Operator tools for payments and credits",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(reconcileCmd(build))
	rootCmd.AddCommand(channelsCmd(build))
	rootCmd.AddCommand(grantCmd(build))

	return rootCmd
}

// withDeps builds the dependencies for one command run and releases them after.
func withDeps(cmd *cobra.Command, build depsFactory, fn func(d *deps) error) error {
	d, err := build(cmd.Context())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if d.close != nil {
		defer d.close()
	}
	return fn(d)
}

func reconcileCmd(build depsFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <merchantRef>",
		Short: "Apply the gateway's current status for a payment",
		Long: `Fetches the authoritative transaction status from the payment gateway
and applies it through the callback reconciliation path. Use it to follow up
on a payment whose callback failed to persist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, build, func(d *deps) error {
				res, err := d.reconciler.ReconcileRef(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			})
		},
	}
}

func channelsCmd(build depsFactory) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List payment channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, build, func(d *deps) error {
				channels, err := d.channels.PaymentChannels(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CODE\tNAME\tGROUP\tACTIVE")
				for _, ch := range channels {
					if !ch.Active && !all {
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", ch.Code, ch.Name, ch.Group, ch.Active)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include inactive channels")

	return cmd
}

func grantCmd(build depsFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "grant <userID> <amount> <idempotencyKey>",
		Short: "Top up a user's credits",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil || userID <= 0 {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			return withDeps(cmd, build, func(d *deps) error {
				res, err := d.ledger.Grant(cmd.Context(), userID, amount, args[2])
				if err != nil {
					return err
				}
				if res.Replayed {
					fmt.Fprintf(cmd.OutOrStdout(), "already applied, balance %d\n", res.NewBalance)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "granted %d credits to user %d, balance %d\n", amount, userID, res.NewBalance)
				return nil
			})
		},
	}
}
