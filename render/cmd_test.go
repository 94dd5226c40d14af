package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixmap/pixel"
	"pixmap/ppm"
)

func defaultCmd(dir string) *CLICmd {
	return &CLICmd{
		Dir:         dir,
		Gray:        "foo.ppm",
		Out:         "bar.ppm",
		Size:        100,
		Background:  "#ff0000",
		Rect:        []int{50, 50, 50, 50},
		RectColor:   "#00ff00",
		Circle:      []int{75, 75, 25},
		CircleColor: "#0000ff",
	}
}

func TestRunDefaultScene(t *testing.T) {
	dir := t.TempDir()
	cmd := defaultCmd(dir)
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	gray, err := ppm.Read(filepath.Join(dir, "foo.ppm"))
	require.NoError(t, err)
	assert.Equal(t, 100, gray.Width)
	assert.NotContains(t, gray.Pix, pixel.Red)

	img, err := ppm.Read(filepath.Join(dir, "bar.ppm"))
	require.NoError(t, err)
	assert.Equal(t, pixel.Red, img.PixelAt(10, 10))
	assert.Equal(t, pixel.Green, img.PixelAt(51, 51))
	assert.Equal(t, pixel.Blue, img.PixelAt(75, 75))
	// the circle never reaches the last column
	assert.Equal(t, pixel.Green, img.PixelAt(99, 75))
}

func TestRunWithTransforms(t *testing.T) {
	dir := t.TempDir()
	cmd := defaultCmd(dir)
	cmd.Gray = ""
	cmd.Op = []string{"scale:0.5"}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	assert.NoFileExists(t, filepath.Join(dir, "foo.ppm"))

	img, err := ppm.Read(filepath.Join(dir, "bar.ppm"))
	require.NoError(t, err)
	// the scene shrinks into the top-left quarter
	assert.Equal(t, pixel.Blue, img.PixelAt(37, 37))
	assert.Equal(t, pixel.Black, img.PixelAt(80, 80))
}

func TestRunSkipShapes(t *testing.T) {
	dir := t.TempDir()
	cmd := defaultCmd(dir)
	cmd.NoRect, cmd.NoCircle = true, true
	cmd.Rect, cmd.Circle = nil, nil
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	img, err := ppm.Read(filepath.Join(dir, "bar.ppm"))
	require.NoError(t, err)
	for _, p := range img.Pix {
		require.Equal(t, pixel.Red, p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CLICmd)
	}{
		{"size", func(c *CLICmd) { c.Size = 0 }},
		{"background", func(c *CLICmd) { c.Background = "red" }},
		{"rect values", func(c *CLICmd) { c.Rect = []int{1, 2} }},
		{"circle values", func(c *CLICmd) { c.Circle = []int{1} }},
		{"op", func(c *CLICmd) { c.Op = []string{"spin:1"} }},
		{"out", func(c *CLICmd) { c.Out = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := defaultCmd(t.TempDir())
			tc.modify(cmd)
			assert.Error(t, cmd.Validate(nil))
		})
	}
}

func TestRunRectOutOfBounds(t *testing.T) {
	cmd := defaultCmd(t.TempDir())
	cmd.Rect = []int{90, 90, 20, 20}
	require.NoError(t, cmd.Validate(nil))
	assert.Error(t, cmd.Run())
}
