// Package connectors groups the document source implementations.
// LocalLens ships a single connector, filesystem, which lists, reads
// and watches folders of plain-text files.
package connectors
