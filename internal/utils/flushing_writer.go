package utils

import (
	"io"
	"sync"
)

type flushableWriter interface {
	Flush() error
}

// FlushingWriter serializes writes to a destination writer and drains any
// buffering layer after each write so output appears immediately.
type FlushingWriter struct {
	destination io.Writer
	flusher     flushableWriter
	writeMutex  sync.Mutex
}

// NewFlushingWriter wraps the destination writer. Writers that are already
// wrapped are returned unchanged, and a nil destination yields a nil writer.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return nil
	}
	if _, alreadyWrapped := destination.(*FlushingWriter); alreadyWrapped {
		return destination
	}

	wrappedWriter := &FlushingWriter{destination: destination}
	if flusher, supportsFlushing := destination.(flushableWriter); supportsFlushing {
		wrappedWriter.flusher = flusher
	}
	return wrappedWriter
}

// Write forwards data to the destination and flushes it when supported.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.destination == nil {
		return 0, nil
	}

	flushingWriter.writeMutex.Lock()
	defer flushingWriter.writeMutex.Unlock()

	writtenByteCount, writeError := flushingWriter.destination.Write(data)
	if writeError != nil {
		return writtenByteCount, writeError
	}
	if flushingWriter.flusher != nil {
		if flushError := flushingWriter.flusher.Flush(); flushError != nil {
			return writtenByteCount, flushError
		}
	}

	return writtenByteCount, nil
}
