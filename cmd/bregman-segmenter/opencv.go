//go:build opencv

package main

// Registers the OpenCV edge backend and image reader.
import _ "bregman-segmenter/internal/opencv/filters"
