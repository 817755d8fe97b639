package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zalepa/plantio/chart"
)

// ImageOptions configures WriteImages.
type ImageOptions struct {
	Dir    string
	Format string
	// Size overrides the figure size when non-zero.
	Size    chart.Size
	Workers int
}

// ImageName is the file name of the index-th (0-based) figure of a view.
func ImageName(slug string, index int, format string) string {
	return fmt.Sprintf("%s-%02d.%s", slug, index+1, format)
}

// WriteImages renders every figure of views into opts.Dir, at most
// opts.Workers at a time, and returns the written paths in view order.
func WriteImages(ctx context.Context, views []View, opts ImageOptions, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	var paths []string
	type job struct {
		path string
		fig  *chart.Figure
	}
	var jobs []job
	for _, v := range views {
		for i, f := range v.Figures {
			p := filepath.Join(opts.Dir, ImageName(v.Slug, i, opts.Format))
			jobs = append(jobs, job{path: p, fig: f})
			paths = append(paths, p)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderFile(j.path, j.fig, opts); err != nil {
				return err
			}
			logger.Debug("image written", zap.String("path", j.path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func renderFile(path string, fig *chart.Figure, opts ImageOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := chart.Render(f, fig, opts.Size, opts.Format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
