package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skill-match/internal/app"
	"skill-match/internal/domain/discovery"
	"skill-match/internal/domain/skill"
	"skill-match/internal/usecase"
)

const (
	choiceHard = "Add as hard skill"
	choiceSoft = "Add as soft skill"
	choiceSkip = "Skip"
	choiceStop = "Stop reviewing"
)

var (
	discoverJDFile string
	discoverMax    int
	discoverCurate bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List phrases from recent resumes that are not in the dictionary",
	Long: "List phrases from recent resumes that are not in the dictionary. With --curate each candidate " +
		"is offered for review and accepted ones are appended to the dictionary.",
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverJDFile, "jd-file", "", "boost phrases that also appear in this JD")
	discoverCmd.Flags().IntVar(&discoverMax, "max", 0, "cap on candidates (0 uses the configured default)")
	discoverCmd.Flags().BoolVar(&discoverCurate, "curate", false, "review candidates interactively")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	in := usecase.DiscoverInput{Max: discoverMax}
	if discoverJDFile != "" {
		b, err := os.ReadFile(discoverJDFile)
		if err != nil {
			return err
		}
		in.JDText = string(b)
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		candidates, err := c.Discovery.Discover(ctx, in)
		if err != nil {
			return err
		}
		if !discoverCurate {
			return printCandidates(cmd.OutOrStdout(), candidates)
		}

		picked, err := curate(candidates, promptChoice)
		if err != nil {
			return err
		}
		for _, kind := range []skill.Kind{skill.KindHard, skill.KindSoft} {
			if len(picked[kind]) == 0 {
				continue
			}
			added, err := c.Dictionary.Append(ctx, kind, picked[kind])
			if err != nil {
				return err
			}
			c.Logger.Info("dictionary updated", zap.String("kind", string(kind)), zap.Int("added", added))
		}
		return nil
	})
}

func printCandidates(w io.Writer, candidates []discovery.Candidate) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKILL\tDOCS\tIN JD\tSCORE\tEXAMPLE")
	for _, c := range candidates {
		fmt.Fprintf(tw, "%s\t%d\t%t\t%d\t%s\n", c.Skill, c.Docs, c.InJD, c.Score, c.Example)
	}
	return tw.Flush()
}

// curate asks choose about each candidate in order and groups the accepted
// phrases by kind. Choosing stop ends the review and keeps what was picked.
func curate(candidates []discovery.Candidate, choose func(discovery.Candidate) (string, error)) (map[skill.Kind][]string, error) {
	picked := map[skill.Kind][]string{}
	for _, cand := range candidates {
		choice, err := choose(cand)
		if err != nil {
			return nil, err
		}
		switch choice {
		case choiceHard:
			picked[skill.KindHard] = append(picked[skill.KindHard], cand.Skill)
		case choiceSoft:
			picked[skill.KindSoft] = append(picked[skill.KindSoft], cand.Skill)
		case choiceStop:
			return picked, nil
		}
	}
	return picked, nil
}

func promptChoice(c discovery.Candidate) (string, error) {
	p := promptui.Select{
		Label: fmt.Sprintf("%q seen in %d resumes (e.g. %q)", c.Skill, c.Docs, c.Example),
		Items: []string{choiceHard, choiceSoft, choiceSkip, choiceStop},
	}
	_, choice, err := p.Run()
	return choice, err
}
