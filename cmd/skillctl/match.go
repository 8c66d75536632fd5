package main

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"skill-match/internal/app"
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/domain/match"
)

var (
	matchRole   string
	matchSkills []string
	matchResume string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score skills or a stored resume against a role",
	Example: `  skillctl match --role "data scientist" --skills python,sql,ml
  skillctl match --resume 6f1c0c3e-8a51-4a4e-9d0e-3f5e2a1b7c90`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchRole, "role", "", "role name")
	matchCmd.Flags().StringSliceVar(&matchSkills, "skills", nil, "comma separated skill tokens")
	matchCmd.Flags().StringVar(&matchResume, "resume", "", "stored resume id, scored against its selected role")
	matchCmd.MarkFlagsMutuallyExclusive("role", "resume")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(matchRole) == "" && strings.TrimSpace(matchResume) == "" {
		return errors.New("provide --role with --skills, or --resume")
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		var (
			out match.Outcome
			err error
		)
		if matchResume != "" {
			id, perr := uuid.Parse(strings.TrimSpace(matchResume))
			if perr != nil {
				return perr
			}
			out, err = c.Matching.ScoreResume(ctx, id)
		} else {
			out, err = c.Matching.ScoreTokens(ctx, matchRole, matchSkills)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.NewMatchResponse(out))
	})
}
