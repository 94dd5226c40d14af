package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixmap/pixel"
	"pixmap/ppm"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	out := filepath.Join(dir, "out.ppm")

	src := pixel.New(10, 10, pixel.Black)
	src.SetPixel(2, 2, pixel.Green)
	require.NoError(t, ppm.Write(in, src))

	cmd := &CLICmd{In: in, Out: out, Op: []string{"scale:2", "linear:1,0,0,1"}}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run())

	got, err := ppm.Read(out)
	require.NoError(t, err)
	assert.Equal(t, pixel.Green, got.PixelAt(4, 4))
	assert.Equal(t, pixel.Black, got.PixelAt(2, 2))
}

func TestRunStrict(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "short.ppm")
	require.NoError(t, os.WriteFile(in, []byte("P6\n2 2 255\n\x01\x02\x03"), 0o644))

	cmd := &CLICmd{In: in, Out: filepath.Join(dir, "out.ppm"), Op: []string{"scale:1"}, Strict: true}
	require.NoError(t, cmd.Validate(nil))
	var pe *ppm.ParseError
	assert.ErrorAs(t, cmd.Run(), &pe)

	cmd.Strict = false
	assert.NoError(t, cmd.Run())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&CLICmd{Op: []string{"bogus"}}).Validate(nil))
	assert.Error(t, (&CLICmd{}).Validate(nil))
}
