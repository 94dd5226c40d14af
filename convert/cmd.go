// Package convert implements the command that moves images between the
// pixel-map format and the common compressed formats.
package convert

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixmap/palette"
	"pixmap/parallel"
	_ "pixmap/ppm"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for converted pictures. Relative to scan dir if not absolute" default:"converted"`
	Format  string `help:"Output format for pixel-map sources; every other image is converted to a pixel map" enum:"png,gif,jpeg,bmp,tiff" default:"png"`
	Palette string `help:"Palette name (bw, gray4, gray16, plan9, web) or PAL file in RIFF format to reduce images to" group:"palette"`
	Dither  bool   `help:"Apply dithering when reducing to a palette" default:"false" group:"palette"`

	pal color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Palette != "" {
		if c.pal, err = palette.Load(c.Palette); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processed, skipped atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		fileName := file.Name()
		worker(func() error {
			filePath := filepath.Join(c.Scan, fileName)
			logger := slog.Default().With("file", filePath)

			ok, err := c.convert(logger, filePath, fileName)
			if err != nil {
				logger.Error("could not convert image", "error", err)
				return fmt.Errorf("%s: %w", fileName, err)
			}
			if ok {
				processed.Add(1)
			} else {
				skipped.Add(1)
			}
			return nil
		})
	}

	err = wait()

	errCount := 0
	if err != nil {
		errCount = len(unwrapAll(err))
	}
	slog.Info("stats", "processed", processed.Load(), "skipped", skipped.Load(), "errors", errCount)

	if errCount > 0 {
		return fmt.Errorf("error converting %d files: %w", errCount, err)
	}
	return nil
}

// convert reports false for files that are not images.
func (c *CLICmd) convert(logger *slog.Logger, filePath, fileName string) (bool, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if errors.Is(err, image.ErrFormat) {
		logger.Debug("skipping unknown format")
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("could not decode image: %w", err)
	}

	outType := "ppm"
	if imgType == "ppm" {
		outType = c.Format
	}
	logger.Info("converting", "from", imgType, "to", outType)

	if c.pal != nil {
		logger.Debug("applying palette", "palette", c.Palette, "colors", len(c.pal), "dither", c.Dither)
		img = palette.Apply(img, c.pal, c.Dither)
	}

	if err := save(img, outType, c.Dest, fileName); err != nil {
		return false, err
	}
	return true, nil
}

func unwrapAll(err error) []error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return u.Unwrap()
	}
	return []error{err}
}

func outName(srcName, outType string) string {
	ext := filepath.Ext(srcName)
	return fmt.Sprintf("%s.%s", strings.TrimSuffix(srcName, ext), outType)
}
