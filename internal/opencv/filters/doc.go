// Package filters provides the OpenCV edge-weight backend. Importing it
// registers the "opencv" backend with internal/edges; it is compiled only
// with the opencv build tag.
package filters
