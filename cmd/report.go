package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zalepa/plantio/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		out     string
		images  string
		format  string
		selects []string
		noPDF   bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the charts as a PDF report and, optionally, image files",
		Example: `  plantio report --data plantio.xlsx --out plantio.pdf
  plantio report --view home --view devco --images charts --format svg --no-pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Report.Output
			}
			if images == "" {
				images = a.cfg.Report.ImageDir
			}
			if format == "" {
				format = a.cfg.Report.Format
			}
			if noPDF && images == "" {
				return fmt.Errorf("nothing to do: --no-pdf without --images")
			}

			all, tbl, err := a.views()
			if err != nil {
				return err
			}
			views, err := report.Select(all, selects)
			if err != nil {
				return err
			}

			w := cmd.ErrOrStderr()
			if !noPDF {
				meta := report.Meta{Source: tbl.Source, RunID: a.runID, Generated: a.now(), Size: a.pageSize()}
				if err := report.WriteFile(out, views, meta); err != nil {
					return err
				}
				pages := report.PageCount(views, meta.Size)
				a.logger.Info("report written", zap.String("path", out), zap.Int("pages", pages))
				fmt.Fprintf(w, "wrote %s (%d pages)\n", out, pages)
			}

			if images != "" {
				paths, err := report.WriteImages(cmd.Context(), views, report.ImageOptions{
					Dir:     images,
					Format:  format,
					Workers: a.cfg.Report.Workers,
				}, a.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "wrote %d %s images to %s\n", len(paths), format, images)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF output path (default from config)")
	cmd.Flags().StringVar(&images, "images", "", "also write one image per chart into this directory")
	cmd.Flags().StringVar(&format, "format", "", "image format: png, svg, pdf, jpg, eps or tex")
	cmd.Flags().StringSliceVar(&selects, "view", nil, "views to include (default: all), e.g. home, devco, assetco-umari")
	cmd.Flags().BoolVar(&noPDF, "no-pdf", false, "skip the PDF report")
	return cmd
}
