// Package imaging writes composited rasters to disk, selecting the encoder
// from the destination file extension.
package imaging
