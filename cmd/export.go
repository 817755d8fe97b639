package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zalepa/plantio/report"
)

func newExportCmd(a *app) *cobra.Command {
	var xlsxPath, csvPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the derived table as an xlsx workbook and/or CSV",
		Example: `  plantio export --xlsx plantio-derivado.xlsx
  plantio export --csv - > plantio.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if xlsxPath == "" && csvPath == "" {
				return errors.New("nothing to do: pass --xlsx and/or --csv")
			}
			tbl, err := a.records()
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				meta := report.ExportMeta{Source: tbl.Source, RunID: a.runID, Generated: a.now()}
				err := writeTo(cmd.OutOrStdout(), xlsxPath, func(w io.Writer) error {
					return report.WriteWorkbook(w, tbl.Records, meta)
				})
				if err != nil {
					return err
				}
				a.logger.Info("workbook written", zap.String("path", xlsxPath), zap.Int("rows", len(tbl.Records)))
			}
			if csvPath != "" {
				err := writeTo(cmd.OutOrStdout(), csvPath, func(w io.Writer) error {
					return report.WriteCSV(w, tbl.Records)
				})
				if err != nil {
					return err
				}
				a.logger.Info("csv written", zap.String("path", csvPath), zap.Int("rows", len(tbl.Records)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "workbook output path (- for stdout)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV output path (- for stdout)")
	return cmd
}

// writeTo runs write against path, or against stdout when path is "-".
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
