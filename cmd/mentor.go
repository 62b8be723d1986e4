package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

func newMentorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Manage mentors",
	}
	cmd.AddCommand(newMentorAddCmd(c), newMentorListCmd(c))
	return cmd
}

func newMentorAddCmd(c *cli) *cobra.Command {
	var m model.Mentor
	var skills []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a mentor",
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

			m.Skills = skills
			stored, err := svc.AddMentor(ctx, m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&m.ID, "id", "", "mentor id (generated when empty)")
	cmd.Flags().StringVar(&m.Name, "name", "", "mentor name")
	cmd.Flags().StringVar(&m.Email, "email", "", "mentor email")
	cmd.Flags().StringVar(&m.Department, "department", "", "mentor department")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "comma-separated skills")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newMentorListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mentors",
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

			mentors, err := svc.Mentors(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSKILLS")
			for _, m := range mentors {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, strings.Join(m.Skills, ", "))
			}
			return tw.Flush()
		},
	}
}
