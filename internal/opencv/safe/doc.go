// Package safe wraps gocv.Mat with validity tracking and reference counting
// so native memory is released exactly once. It is compiled only with the
// opencv build tag.
package safe
