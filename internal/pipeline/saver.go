package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"bregman-segmenter/internal/grid"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// MaskThreshold separates foreground from background in binary output.
const MaskThreshold = 0.5

type imageSaver struct {
	logger        Logger
	timingTracker TimingTracker
}

func NewSaver(log Logger, tracker TimingTracker) ImageSaver {
	return &imageSaver{logger: log, timingTracker: tracker}
}

func (s *imageSaver) SaveToWriter(writer io.Writer, field *grid.Grid, format string, binary bool) error {
	if field == nil || field.Empty() {
		return fmt.Errorf("no image data to save")
	}

	img := FieldToGray(field, binary)
	if format == "" {
		format = "png"
	}

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": format,
		"width":  field.Cols,
		"height": field.Rows,
		"binary": binary,
	})

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(writer, img, &jpeg.Options{Quality: 95})
	case "png":
		err = png.Encode(writer, img)
	case "tiff":
		err = tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		err = bmp.Encode(writer, img)
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": strings.ToUpper(format),
		})
		err = png.Encode(writer, img)
	}

	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": format,
		})
		return err
	}
	return nil
}

func (s *imageSaver) SaveToPath(ctx context.Context, path string, field *grid.Grid, binary bool) error {
	ctx = s.timingTracker.StartTiming(ctx, "save")
	defer s.timingTracker.EndTiming(ctx)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := s.SaveToWriter(f, field, FormatForPath(path), binary); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path": path,
	})
	return nil
}

// FormatForPath picks an encoder from the file extension, defaulting to PNG.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	case ".bmp":
		return "bmp"
	default:
		return "png"
	}
}

// FieldToGray renders a field in [0,1] as 8-bit gray. Values outside the
// interval are clamped.
func FieldToGray(field *grid.Grid, binary bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, field.Cols, field.Rows))
	for r := 0; r < field.Rows; r++ {
		for c, v := range field.Row(r) {
			var y uint8
			switch {
			case binary:
				if v > MaskThreshold {
					y = 255
				}
			default:
				y = uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
			}
			img.SetGray(c, r, color.Gray{Y: y})
		}
	}
	return img
}

// OutputPath derives the result path for input: <stem>_<suffix><ext> in
// outDir, or next to the input when outDir is empty. Unknown extensions
// become .png.
func OutputPath(input, outDir, suffix string) string {
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
	default:
		ext = ".png"
	}
	return filepath.Join(dir, stem+"_"+suffix+ext)
}
