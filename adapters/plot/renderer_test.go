package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godist/domain/stats"
	"godist/internal/analysis/descriptive"
	"godist/internal/errors"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func report(t *testing.T, values ...float64) *stats.Report {
	t.Helper()
	rep, err := descriptive.NewComputer(descriptive.DefaultOptions()).ComputeValues("test", values)
	require.NoError(t, err)
	return rep
}

func TestRender_EveryKindAsPNG(t *testing.T) {
	r := NewRenderer(Config{WidthCm: 8, HeightCm: 6, Format: "png"}, nil)
	rep := report(t, 2, 2, 3, 5, 5, 5)

	for _, kind := range stats.ChartKinds {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, kind, rep))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRender_SVG(t *testing.T) {
	r := NewRenderer(Config{WidthCm: 8, HeightCm: 6, Format: "SVG"}, nil)

	var buf bytes.Buffer
	require.NoError(t, r.ECDF(&buf, report(t, 1, 2, 3).ECDF))
	assert.Contains(t, buf.String(), "<svg")
	assert.Equal(t, "svg", r.Format())
}

func TestRender_DegenerateSample(t *testing.T) {
	r := NewRenderer(DefaultConfig(), nil)
	rep := report(t, 7, 7, 7)

	for _, kind := range stats.ChartKinds {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, kind, rep), "kind %s", kind)
		assert.NotZero(t, buf.Len())
	}
}

func TestRender_Errors(t *testing.T) {
	rep := report(t, 1, 2)

	err := NewRenderer(DefaultConfig(), nil).Render(&bytes.Buffer{}, stats.ChartKind("pie"), rep)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	err = NewRenderer(Config{WidthCm: 4, HeightCm: 4, Format: "bmp"}, nil).Render(&bytes.Buffer{}, stats.ChartECDF, rep)
	assert.Equal(t, errors.CodeRenderingFailed, errors.GetCode(err))
}

func TestSaveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	r := NewRenderer(Config{WidthCm: 6, HeightCm: 6, Format: "png"}, nil)

	paths, err := r.SaveAll(report(t, 0, 0.1, 0.2, 10), dir, "gap")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "gap_ecdf.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "gap_histogram.png"), paths[1])
	assert.Equal(t, filepath.Join(dir, "gap_polygon.png"), paths[2])

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), path)
	}
}

func TestCenterCounts_DistinctWhenLabelsCollide(t *testing.T) {
	rep := report(t, 0, 0.0001, 0.0002)
	require.Equal(t, rep.Bins.Bins[1].Boundary, rep.Bins.Bins[2].Boundary)

	xys := centerCounts(rep.Bins)
	require.Len(t, xys, len(rep.Bins.Bins))
	for i := 1; i < len(xys); i++ {
		assert.Greater(t, xys[i].X, xys[i-1].X)
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(Config{WidthCm: 6, HeightCm: 6, Format: "png"}, nil).Histogram(&buf, rep.Bins))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}
