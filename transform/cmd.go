// Package transform implements the command that remaps an existing image.
package transform

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
	"seehuhn.de/go/geom/matrix"

	"pixmap/ppm"
	"pixmap/remap"
)

type CLICmd struct {
	In  string   `arg:"" help:"Source image" type:"existingfile"`
	Out string   `arg:"" help:"Destination image"`
	Op  []string `help:"Transform to apply, in order: rotate:θ, scale:s[,sy], shear:kx,ky, linear:a,b,c,d" sep:"none" required:""`

	Strict bool `help:"Reject images whose pixel data does not match the header" default:"false"`

	transforms []matrix.Matrix `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.transforms, err = remap.ParseOps(c.Op); err != nil {
		return err
	}
	if len(c.transforms) == 0 {
		return fmt.Errorf("no transform given")
	}
	return nil
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("file", c.In)

	src, err := ppm.ReadWith(ppm.Decoder{Strict: c.Strict}, c.In)
	if err != nil {
		return err
	}
	logger.Info("loaded", "width", src.Width, "height", src.Height)

	dst := remap.Chain(src, c.transforms...)
	if err := ppm.Write(c.Out, dst); err != nil {
		return err
	}

	logger.Info("transformed", "ops", c.Op, "out", c.Out)
	return nil
}
