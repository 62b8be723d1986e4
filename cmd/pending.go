package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPendingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List interns still waiting for a mentor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := buildService(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			interns, err := svc.PendingInterns(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EMAIL\tNAME\tDEPARTMENT\tSKILLS")
			for _, in := range interns {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", in.Email, in.Name, in.Department, strings.Join(in.Skills, ", "))
			}
			return tw.Flush()
		},
	}
}
