package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/models"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// opencvRead is set when the opencv build tag is enabled.
var opencvRead func(path string) (*grid.Grid, error)

type imageLoader struct {
	logger        Logger
	timingTracker TimingTracker
	useOpenCV     bool
}

func NewLoader(log Logger, tracker TimingTracker, useOpenCV bool) ImageLoader {
	return &imageLoader{logger: log, timingTracker: tracker, useOpenCV: useOpenCV}
}

func (l *imageLoader) LoadFile(ctx context.Context, path string) (*models.ImageData, error) {
	ctx = l.timingTracker.StartTiming(ctx, "load_file")
	defer l.timingTracker.EndTiming(ctx)

	ext := strings.ToLower(filepath.Ext(path))
	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path":      path,
		"extension": ext,
	})

	if l.useOpenCV && opencvRead != nil {
		pixels, err := opencvRead(path)
		if err != nil {
			return nil, err
		}
		return l.finish(path, determineActualFormat(ext, ""), pixels), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, err := l.LoadFromReader(ctx, bytes.NewReader(data), ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.Path = path
	return img, nil
}

func (l *imageLoader) LoadFromReader(ctx context.Context, r io.Reader, format string) (*models.ImageData, error) {
	decodeCtx := l.timingTracker.StartTiming(ctx, "decode")
	img, stdFormat, err := image.Decode(r)
	l.timingTracker.EndTiming(decodeCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return l.finish("", determineActualFormat(format, stdFormat), ToGrid(img)), nil
}

func (l *imageLoader) finish(path, format string, pixels *grid.Grid) *models.ImageData {
	data := &models.ImageData{
		Path:     path,
		Format:   format,
		Width:    pixels.Cols,
		Height:   pixels.Rows,
		Pixels:   pixels,
		LoadTime: time.Now(),
	}

	l.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"width":  data.Width,
		"height": data.Height,
		"format": format,
	})
	return data
}

// ToGrid converts any image to luminance values in [0,255], one grid row
// per image row.
func ToGrid(img image.Image) *grid.Grid {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	out := grid.New(b.Dy(), b.Dx())
	for r := 0; r < out.Rows; r++ {
		row := out.Row(r)
		off := r * gray.Stride
		for c := range row {
			row[c] = float64(gray.Pix[off+4*c])
		}
	}
	return out
}

func determineActualFormat(extension, stdLibFormat string) string {
	switch extension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	default:
		if stdLibFormat != "" {
			return stdLibFormat
		}
		return "unknown"
	}
}
