package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"skill-match/internal/app"
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/usecase"
)

var (
	deriveRole string
	deriveURL  string
	deriveFile string
	deriveMax  int
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive weighted keyword rows from a job description",
	Long:  "Derive weighted keyword rows from JD text in a file, a posting URL, or a stored role's JD. The rows are printed, not saved.",
	RunE:  runDerive,
}

func init() {
	deriveCmd.Flags().StringVar(&deriveRole, "role", "", "use the stored JD of this role")
	deriveCmd.Flags().StringVar(&deriveURL, "url", "", "fetch the posting at this URL")
	deriveCmd.Flags().StringVarP(&deriveFile, "file", "f", "", "read JD text from this file")
	deriveCmd.Flags().IntVar(&deriveMax, "max", 0, "cap on derived rows (0 uses the configured default)")
	deriveCmd.MarkFlagsOneRequired("role", "url", "file")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, _ []string) error {
	in := usecase.DeriveInput{Role: deriveRole, URL: deriveURL, Max: deriveMax}
	if deriveFile != "" {
		b, err := os.ReadFile(deriveFile)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return errors.New("JD file is empty")
		}
		in.Text = string(b)
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		rows, err := c.Keywords.Derive(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.NewKeywordRowResponses(rows))
	})
}
