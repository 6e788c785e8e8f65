// Package conversion moves pixel data between grid.Grid and OpenCV matrices.
// It is compiled only with the opencv build tag.
package conversion
