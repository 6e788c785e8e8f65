package pipeline

import (
	"context"
	"io"

	"bregman-segmenter/internal/edges"
	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/models"
)

// ImageLoader decodes files into grayscale pixel grids.
type ImageLoader interface {
	LoadFile(ctx context.Context, path string) (*models.ImageData, error)
	LoadFromReader(ctx context.Context, r io.Reader, format string) (*models.ImageData, error)
}

// ImageSaver encodes fields in [0,1] as 8-bit grayscale images.
type ImageSaver interface {
	SaveToWriter(w io.Writer, field *grid.Grid, format string, binary bool) error
	SaveToPath(ctx context.Context, path string, field *grid.Grid, binary bool) error
}

// Settings selects the edge detector and algorithm for a run.
type Settings struct {
	EdgeBackend string
	Edges       edges.Options
	Algorithm   string
	// Parameters override the algorithm defaults key by key.
	Parameters map[string]interface{}
	// Binary writes a 0/255 mask instead of the scaled field.
	Binary bool
	// OpenCVDecode reads inputs through OpenCV when it is compiled in.
	OpenCVDecode bool
}
