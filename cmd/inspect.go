package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zalepa/plantio/report"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		full   bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "List the pages of a generated report",
		Example: `  plantio inspect plantio.pdf
  plantio inspect plantio.pdf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := report.Inspect(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(pages)
			}
			for _, p := range pages {
				fmt.Fprintf(w, "%3d  %s\n", p.Number, p.Title)
				if full && len(p.Text) > 1 {
					fmt.Fprintf(w, "     %s\n", strings.Join(p.Text[1:], " | "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print pages as JSON")
	cmd.Flags().BoolVar(&full, "text", false, "print every text block, not just the title")
	return cmd
}
