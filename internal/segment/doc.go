// Package segment folds scanner tokens into the final segment sequence.
//
// A Document is an ordered list of segments whose texts concatenate back to
// the scanned input. Comment tokens become one segment each; every maximal run
// of Any tokens becomes a single Code segment, so two Code segments are never
// adjacent.
//
// Consumers either pull segments (Document.Segments, Document.All) and switch
// over Kind, or push them through a Handler with Walk.
package segment
