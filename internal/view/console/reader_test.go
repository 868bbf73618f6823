package console

import "io"

// newBlockingReader - a reader whose Read blocks until the writer side is closed.
func newBlockingReader() (io.Reader, io.Closer) {
	reader, writer := io.Pipe()

	return reader, writer
}
