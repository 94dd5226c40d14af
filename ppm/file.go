package ppm

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"pixmap/pixel"
)

func init() {
	image.RegisterFormat("ppm", magic, decodeImage, DecodeConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	buf, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Read decodes the image stored at path.
func Read(path string) (*pixel.Buffer, error) {
	return ReadWith(Decoder{}, path)
}

// ReadWith decodes the image stored at path using d.
func ReadWith(d Decoder, path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image file", "name", path, "error", closeErr)
		}
	}()

	buf, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return buf, nil
}

// Write stores buf at path, replacing any existing file.
func Write(path string, buf *pixel.Buffer) error {
	return writeFile(path, func(w io.Writer) error {
		return Encode(w, buf)
	})
}

// WriteGrayscale stores width*height intensity samples at path.
func WriteGrayscale(path string, width, height int, samples []byte) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeGray(w, width, height, samples)
	})
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create image file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close image file %q: %w", path, closeErr)
		}
	}()

	if err = encode(f); err != nil {
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	return nil
}
