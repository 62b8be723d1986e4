package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
)

// errNoSuggestions is returned when no mentor shares a skill with the intern.
var errNoSuggestions = errors.New("no mentor matches this intern")

func newAssignCmd(c *cli) *cobra.Command {
	var email, mentorID string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a mentor to an intern; without --mentor pick from ranked suggestions",
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

			if mentorID == "" {
				if mentorID, err = c.pickMentor(ctx, svc, email); err != nil {
					return err
				}
			}

			in, err := svc.OnMentorChosen(ctx, email, mentorID)
			if err != nil {
				return err
			}
			id, _ := in.Assignment.MentorID()
			fmt.Fprintf(cmd.OutOrStdout(), "%s assigned to mentor %s\n", in.Email, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "intern email")
	cmd.Flags().StringVarP(&mentorID, "mentor", "m", "", "mentor id; omit to choose interactively")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// pickMentor ranks mentors for the intern and asks the operator to choose.
func (c *cli) pickMentor(ctx context.Context, svc *service.Service, email string) (string, error) {
	in, err := svc.InternByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	suggestions, err := svc.Suggestions(ctx, in.ID)
	if err != nil {
		return "", err
	}
	if len(suggestions) == 0 {
		return "", fmt.Errorf("%w: %s (skills: %s)", errNoSuggestions, in.Email, strings.Join(in.Skills, ", "))
	}

	items := make([]string, len(suggestions))
	for i, s := range suggestions {
		items[i] = fmt.Sprintf("%3d%%  %s (%s)", s.Score, s.Mentor.Name, s.Mentor.ID)
	}
	i, err := c.choose("Choose a mentor for "+in.Name, items)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(suggestions) {
		return "", fmt.Errorf("choice %d out of range", i)
	}
	return suggestions[i].Mentor.ID, nil
}
