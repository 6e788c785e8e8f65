//go:build opencv

package filters

import (
	"fmt"
	"image"

	"bregman-segmenter/internal/edges"
	"bregman-segmenter/internal/grid"
	"bregman-segmenter/internal/opencv/conversion"
	"bregman-segmenter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func init() {
	edges.Register(edges.BackendOpenCV, func(opts edges.Options) edges.Detector {
		return NewEdgeDetector(opts)
	})
}

// EdgeDetector smooths with cv::GaussianBlur and differentiates with a
// first-order Sobel kernel scaled to a central difference. Borders are
// replicated, so border derivatives are half the one-sided difference.
type EdgeDetector struct {
	opts edges.Options
}

func NewEdgeDetector(opts edges.Options) *EdgeDetector {
	return &EdgeDetector{opts: opts}
}

func (d *EdgeDetector) Name() string { return edges.BackendOpenCV }

func (d *EdgeDetector) EdgeMap(img *grid.Grid) (*grid.Grid, error) {
	if img.Empty() {
		return grid.New(img.Rows, img.Cols), nil
	}

	src, err := conversion.GridToMat(edges.Normalize(img), "edges_src")
	if err != nil {
		return nil, fmt.Errorf("edge input conversion failed: %w", err)
	}
	defer src.Close()

	smooth := src
	if d.opts.Sigma > 0 {
		smooth, err = GaussianFilter(src, d.opts.Sigma)
		if err != nil {
			return nil, err
		}
		defer smooth.Close()
	}

	dx, err := derivative(smooth, 1, 0)
	if err != nil {
		return nil, err
	}
	dy, err := derivative(smooth, 0, 1)
	if err != nil {
		return nil, err
	}

	grad2 := grid.New(img.Rows, img.Cols)
	for i := range grad2.Data {
		grad2.Data[i] = dx.Data[i]*dx.Data[i] + dy.Data[i]*dy.Data[i]
	}
	return edges.Weights(grad2, d.opts.Beta), nil
}

// GaussianFilter blurs src with a kernel sized from sigma.
func GaussianFilter(src *safe.Mat, sigma float64) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "GaussianBlur"); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	gocv.GaussianBlur(src.GetMat(), &dst, image.Point{}, sigma, sigma, gocv.BorderReplicate)
	out, err := safe.Adopt(dst, "edges_blur")
	if err != nil {
		return nil, fmt.Errorf("GaussianBlur failed: %w", err)
	}
	return out, nil
}

func derivative(src *safe.Mat, dx, dy int) (*grid.Grid, error) {
	dst := gocv.NewMat()
	gocv.Sobel(src.GetMat(), &dst, gocv.MatTypeCV32F, dx, dy, 1, 0.5, 0, gocv.BorderReplicate)
	out, err := safe.Adopt(dst, "edges_sobel")
	if err != nil {
		return nil, fmt.Errorf("Sobel failed: %w", err)
	}
	defer out.Close()

	return conversion.MatToGrid(out)
}
