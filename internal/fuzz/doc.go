// Package fuzztests houses Go fuzz harnesses for the scanner and segmenter.
// They feed arbitrary bytes through a virtual FileSet and check that the
// token stream and the document keep their invariants (tiling, round trip,
// segment shapes, stable reclassification).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
