package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/zalepa/plantio/chart"
)

func TestImageName(t *testing.T) {
	assert.Equal(t, "home-01.png", ImageName("home", 0, "png"))
	assert.Equal(t, "devco-12.svg", ImageName("devco", 11, "svg"))
}

func TestWriteImages(t *testing.T) {
	views, err := Select(fixtureViews(t), []string{"assetco", "devco"})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "img")
	paths, err := WriteImages(context.Background(), views, ImageOptions{
		Dir:     dir,
		Format:  "svg",
		Size:    chart.Size{W: 6 * vg.Inch, H: 4 * vg.Inch},
		Workers: 2,
	}, nil)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "assetco-01.svg"),
		filepath.Join(dir, "assetco-02.svg"),
		filepath.Join(dir, "devco-01.svg"),
		filepath.Join(dir, "devco-02.svg"),
	}
	assert.Equal(t, want, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestWriteImagesBadFormat(t *testing.T) {
	views, err := Select(fixtureViews(t), []string{"devco"})
	require.NoError(t, err)
	_, err = WriteImages(context.Background(), views, ImageOptions{Dir: t.TempDir(), Format: "bmp", Workers: 4}, nil)
	assert.Error(t, err)
}

func TestWriteImagesCanceled(t *testing.T) {
	views, err := Select(fixtureViews(t), []string{"devco"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WriteImages(ctx, views, ImageOptions{Dir: t.TempDir(), Format: "png", Workers: 1}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
