package output

import "io"

// Buffered or streaming writers are flushed after every NDJSON line and
// after the table.
type flusher interface {
	Flush() error
}

type plainFlusher interface {
	Flush()
}

func flushIfPossible(w io.Writer) error {
	switch f := w.(type) {
	case flusher:
		return f.Flush()
	case plainFlusher:
		f.Flush()
	}
	return nil
}
