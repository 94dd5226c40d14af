package convert

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixmap/parallel"
	"pixmap/pixel"
	"pixmap/ppm"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readImage(t *testing.T, path string) (image.Image, string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, format, err := image.Decode(f)
	require.NoError(t, err)
	return img, format
}

func TestRun(t *testing.T) {
	scan := t.TempDir()

	buf := pixel.New(4, 3, pixel.Blue)
	buf.SetPixel(1, 1, pixel.Red)
	require.NoError(t, ppm.Write(filepath.Join(scan, "scene.ppm"), buf))

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	writePNG(t, filepath.Join(scan, "photo.png"), src)

	require.NoError(t, os.WriteFile(filepath.Join(scan, "notes.txt"), []byte("hello"), 0o644))

	cmd := &CLICmd{Scan: scan, Dest: "out", Format: "png"}
	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, filepath.Join(scan, "out"), cmd.Dest)

	pool := parallel.Start(2)
	require.NoError(t, cmd.Run(pool.Do, pool.Wait))

	img, format := readImage(t, filepath.Join(scan, "out", "scene.png"))
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})

	got, err := ppm.Read(filepath.Join(scan, "out", "photo.ppm"))
	require.NoError(t, err)
	assert.Equal(t, pixel.Pixel{R: 10, G: 20, B: 30}, got.PixelAt(1, 0))
	assert.Equal(t, pixel.Black, got.PixelAt(0, 1))

	assert.NoFileExists(t, filepath.Join(scan, "out", "notes.ppm"))
}

func TestRunFormats(t *testing.T) {
	for _, format := range []string{"gif", "jpeg", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			scan := t.TempDir()
			require.NoError(t, ppm.Write(filepath.Join(scan, "a.ppm"), pixel.New(8, 8, pixel.White)))

			cmd := &CLICmd{Scan: scan, Dest: "out", Format: format}
			require.NoError(t, cmd.Validate(nil))
			pool := parallel.Start(1)
			require.NoError(t, cmd.Run(pool.Do, pool.Wait))

			img, got := readImage(t, filepath.Join(scan, "out", "a."+format))
			assert.Equal(t, format, got)
			assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
		})
	}
}

func TestRunBrokenFile(t *testing.T) {
	scan := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scan, "bad.ppm"), []byte("P6\n1 1 255\n"), 0o644))

	cmd := &CLICmd{Scan: scan, Dest: "out", Format: "png"}
	require.NoError(t, cmd.Validate(nil))
	pool := parallel.Start(1)
	err := cmd.Run(pool.Do, pool.Wait)

	var pe *ppm.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.NoFileExists(t, filepath.Join(scan, "out", "bad.png"))
}

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.Error(t, (&CLICmd{Scan: file}).Validate(nil))
	assert.Error(t, (&CLICmd{Scan: filepath.Join(file, "missing")}).Validate(nil))
}

func TestRunPalette(t *testing.T) {
	scan := t.TempDir()
	buf := pixel.New(6, 6, pixel.Pixel{R: 20, G: 20, B: 20})
	buf.SetPixel(2, 2, pixel.Pixel{R: 240, G: 240, B: 240})
	require.NoError(t, ppm.Write(filepath.Join(scan, "a.ppm"), buf))

	cmd := &CLICmd{Scan: scan, Dest: "out", Format: "png", Palette: "bw"}
	require.NoError(t, cmd.Validate(nil))
	pool := parallel.Start(1)
	require.NoError(t, cmd.Run(pool.Do, pool.Wait))

	img, _ := readImage(t, filepath.Join(scan, "out", "a.png"))
	r, _, _, _ := img.At(2, 2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)

	bad := &CLICmd{Scan: scan, Dest: "out", Format: "png", Palette: "no-such-palette"}
	assert.Error(t, bad.Validate(nil))
}
