// Package strips implements the strip-combining core: classifying source
// text, extracting ordered base64 payloads, decoding each payload to a
// raster strip, and compositing the survivors into a single image.
//
// The package never touches the filesystem; reading sources and writing
// composites belongs to the batch driver and imaging packages. Errors are
// explicit: a malformed JSON source is a *ParseError, a bad strip is a
// *StripError recorded on the Composite, and a batch with nothing decodable
// yields ErrNoStrips rather than a partial result.
package strips
