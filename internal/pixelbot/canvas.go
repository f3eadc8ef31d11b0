// Package pixelbot renders the shared pixel canvas, a CSV grid of colour
// digits, to PNG images.
package pixelbot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ScaledSize is the edge length of the scaled canvas image.
const ScaledSize = 512

// ErrEmptyCanvas is returned when the CSV holds no cells.
var ErrEmptyCanvas = errors.New("pixelbot: empty canvas")

// ErrMalformedCell is returned for cells that are not a single digit 0-7.
var ErrMalformedCell = errors.New("pixelbot: malformed cell")

// ErrRaggedCanvas is returned when rows have different lengths.
var ErrRaggedCanvas = errors.New("pixelbot: rows differ in length")

// Canvas is a grid of 3-bit colours indexed [row][column].
type Canvas [][]uint8

// Width is the number of columns.
func (c Canvas) Width() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Height is the number of rows.
func (c Canvas) Height() int { return len(c) }

// Colour maps a cell value to opaque RGBA: bit 4 is red, 2 green, 1 blue.
func Colour(v uint8) color.RGBA {
	channel := func(bit uint8) uint8 {
		if v&bit != 0 {
			return 255
		}
		return 0
	}
	return color.RGBA{R: channel(4), G: channel(2), B: channel(1), A: 255}
}

// ParseCSV reads a canvas. Blank lines are skipped.
func ParseCSV(r io.Reader) (Canvas, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var canvas Canvas
	line := 0
	for {
		line++
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pixelbot: read line %d: %w", line, err)
		}
		row := make([]uint8, len(rec))
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			if len(cell) != 1 || cell[0] < '0' || cell[0] > '7' {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrMalformedCell, line, i+1, cell)
			}
			row[i] = cell[0] - '0'
		}
		if len(canvas) > 0 && len(row) != canvas.Width() {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrRaggedCanvas, line, len(row), canvas.Width())
		}
		canvas = append(canvas, row)
	}
	if len(canvas) == 0 {
		return nil, ErrEmptyCanvas
	}
	return canvas, nil
}

// Image renders the canvas at one pixel per cell.
func (c Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	for y, row := range c {
		for x, v := range row {
			img.SetRGBA(x, y, Colour(v))
		}
	}
	return img
}

// Scaled renders the canvas stretched to width x height, nearest neighbour.
func (c Canvas) Scaled(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if c.Width() == 0 {
		return img
	}
	for y := 0; y < height; y++ {
		row := c[y*c.Height()/height]
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Colour(row[x*c.Width()/width]))
		}
	}
	return img
}

// Render reads the canvas CSV and writes the native size PNG and the
// ScaledSize x ScaledSize PNG.
func Render(csvPath, pngPath, scaledPath string) (Canvas, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("pixelbot: open canvas: %w", err)
	}
	defer f.Close()

	canvas, err := ParseCSV(f)
	if err != nil {
		return nil, err
	}
	if err := writePNG(pngPath, canvas.Image()); err != nil {
		return nil, err
	}
	if err := writePNG(scaledPath, canvas.Scaled(ScaledSize, ScaledSize)); err != nil {
		return nil, err
	}
	return canvas, nil
}

func writePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("pixelbot: create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("pixelbot: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pixelbot: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("pixelbot: rename %s: %w", path, err)
	}
	return nil
}
