// Package render implements the command that draws the demo scene.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"seehuhn.de/go/geom/matrix"

	"pixmap/pixel"
	"pixmap/ppm"
	"pixmap/remap"
	"pixmap/shape"
)

type CLICmd struct {
	Dir         string   `help:"Destination folder for the generated images" default:"."`
	Gray        string   `help:"Grayscale image file name, relative to dir. Empty to skip" default:"foo.ppm"`
	GrayLevel   uint8    `help:"Intensity of every grayscale sample" default:"0"`
	Out         string   `help:"Color image file name, relative to dir" default:"bar.ppm"`
	Size        int      `help:"Width and height of the canvas" default:"100"`
	Background  string   `help:"Canvas color as #RGB or #RRGGBB" default:"#ff0000"`
	Rect        []int    `help:"Filled rectangle as x,y,width,height" default:"50,50,50,50"`
	RectColor   string   `help:"Rectangle color" default:"#00ff00"`
	NoRect      bool     `help:"Do not draw the rectangle"`
	Circle      []int    `help:"Filled circle as x,y,radius" default:"75,75,25"`
	CircleColor string   `help:"Circle color" default:"#0000ff"`
	NoCircle    bool     `help:"Do not draw the circle"`
	Op          []string `help:"Transform applied after drawing, in order: rotate:θ, scale:s[,sy], shear:kx,ky, linear:a,b,c,d" sep:"none"`

	background  pixel.Pixel     `kong:"-"`
	rectColor   pixel.Pixel     `kong:"-"`
	circleColor pixel.Pixel     `kong:"-"`
	transforms  []matrix.Matrix `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return fmt.Errorf("invalid destination path %q: %w", c.Dir, err)
	}
	c.Dir = dir

	if c.Out == "" {
		return fmt.Errorf("no output file given")
	}
	if c.Size <= 0 {
		return fmt.Errorf("invalid canvas size: %d", c.Size)
	}

	if c.background, err = pixel.ParseHex(c.Background); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	if c.rectColor, err = pixel.ParseHex(c.RectColor); err != nil {
		return fmt.Errorf("invalid rectangle color: %w", err)
	}
	if c.circleColor, err = pixel.ParseHex(c.CircleColor); err != nil {
		return fmt.Errorf("invalid circle color: %w", err)
	}

	if n := len(c.Rect); !c.NoRect && n != 4 {
		return fmt.Errorf("rectangle needs 4 values, got %d", n)
	}
	if n := len(c.Circle); !c.NoCircle && n != 3 {
		return fmt.Errorf("circle needs 3 values, got %d", n)
	}

	if c.transforms, err = remap.ParseOps(c.Op); err != nil {
		return err
	}

	return nil
}

func (c *CLICmd) Run() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dir, err)
	}
	logger := slog.Default().With("dir", c.Dir)

	if c.Gray != "" {
		name := filepath.Join(c.Dir, c.Gray)
		samples := bytes.Repeat([]byte{c.GrayLevel}, c.Size*c.Size)
		if err := ppm.WriteGrayscale(name, c.Size, c.Size, samples); err != nil {
			return err
		}
		logger.Info("wrote grayscale image", "file", c.Gray, "level", c.GrayLevel)
	}

	buf, err := c.draw(logger)
	if err != nil {
		return err
	}

	if err := ppm.Write(filepath.Join(c.Dir, c.Out), buf); err != nil {
		return err
	}
	logger.Info("wrote image", "file", c.Out, "width", buf.Width, "height", buf.Height)

	return nil
}

func (c *CLICmd) draw(logger *slog.Logger) (*pixel.Buffer, error) {
	buf := pixel.New(c.Size, c.Size, c.background)

	if !c.NoRect {
		r := c.Rect
		logger.Debug("drawing rectangle", "x", r[0], "y", r[1], "width", r[2], "height", r[3],
			"color", c.rectColor.Hex())
		if err := shape.DrawRect(buf, r[0], r[1], r[2], r[3], c.rectColor); err != nil {
			return nil, fmt.Errorf("could not draw rectangle: %w", err)
		}
	}

	if !c.NoCircle {
		ci := c.Circle
		logger.Debug("drawing circle", "x", ci[0], "y", ci[1], "radius", ci[2], "color", c.circleColor.Hex())
		shape.DrawCircle(buf, ci[0], ci[1], ci[2], c.circleColor)
	}

	if len(c.transforms) > 0 {
		logger.Debug("applying transforms", "ops", c.Op)
		buf = remap.Chain(buf, c.transforms...)
	}

	return buf, nil
}
