package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
RIFF "PAL " files hold one or more "data" chunks, each a LOGPALETTE:

typedef struct tagLOGPALETTE {
  WORD         palVersion;    // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF reads every palette chunk in r and returns their colors
// concatenated.
func ReadRIFF(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readChunks(rd, "PAL")
}

func readChunks(r *riff.Reader, ident string) (color.Palette, error) {
	var res color.Palette

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %s#%d: %w", ident, i, err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list from chunk %s#%d: %w", ident, i, err)
			} else if listType != palType {
				return res, fmt.Errorf("chunk %s#%d has unsupported type %q", ident, i, string(listType[:]))
			}

			sub, err := readChunks(list, fmt.Sprintf("%s#%d", ident, i))
			res = append(res, sub...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readLogPalette(data, fmt.Sprintf("%s#%d", ident, i))
			if err != nil {
				return res, err
			}
			res = append(res, pal...)
		default:
			return res, fmt.Errorf("unsupported chunk type in %s#%d: %q", ident, i, string(id[:]))
		}
	}
}

func readLogPalette(r io.Reader, ident string) (color.Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header from chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(hdr[:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(hdr[2:]))
	entries := make([]byte, 4*count)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors from chunk %s: %w", count, ident, err)
	}

	res := make(color.Palette, count)
	for i := range count {
		e := entries[4*i:]
		res[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return res, nil
}

// WriteRIFF stores pal as a single-chunk RIFF palette.
func WriteRIFF(w io.Writer, pal color.Palette) error {
	if len(pal) > 0xffff {
		return fmt.Errorf("palette too large: %d colors", len(pal))
	}

	chunkSize := 4 + 4*len(pal)
	out := make([]byte, 0, 20+chunkSize)
	out = append(out, riffType[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+8+chunkSize))
	out = append(out, palType[:]...)
	out = append(out, dataType[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(chunkSize))
	out = binary.LittleEndian.AppendUint16(out, palVersion)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(pal)))
	for _, col := range pal {
		c := color.RGBAModel.Convert(col).(color.RGBA)
		out = append(out, c.R, c.G, c.B, 0)
	}

	if n, err := w.Write(out); err != nil {
		return fmt.Errorf("could not write palette: %w", err)
	} else if n != len(out) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(out))
	}
	return nil
}
