//go:build opencv

package pipeline

import "bregman-segmenter/internal/opencv/conversion"

func init() {
	opencvRead = conversion.ReadGray
}
