package edata

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FlushBatchSize is how many records Writer buffers before flushing to the
// underlying stream ("flush the original-edge-data
// buffer to disk every 100,000 records and clear").
const FlushBatchSize = 100_000

// Writer streams Records to an underlying file, buffering up to
// FlushBatchSize records at a time so pass 2 of the edge-based factory
// never holds the whole sidecar in memory. The leading 4-byte record count
// is reserved on construction and rewritten once, on Close, with the
// final total.
type Writer struct {
	w      io.WriteSeeker
	batch  []byte
	batchN int
	total  uint32
}

// NewWriter reserves the 4-byte count header at the front of w and returns
// a Writer ready to accept records.
func NewWriter(w io.WriteSeeker) (*Writer, error) {
	var hdr [4]byte
	if _, err := w.Write(hdr[:]); err != nil {
		return nil, fmt.Errorf("edata: reserving header: %w", err)
	}

	return &Writer{w: w}, nil
}

// Append buffers r, flushing to the underlying stream once the batch
// reaches FlushBatchSize.
func (wtr *Writer) Append(r Record) error {
	wtr.batch = r.encode(wtr.batch)
	wtr.batchN++
	wtr.total++

	if wtr.batchN >= FlushBatchSize {
		return wtr.flush()
	}

	return nil
}

func (wtr *Writer) flush() error {
	if wtr.batchN == 0 {
		return nil
	}

	if _, err := wtr.w.Write(wtr.batch); err != nil {
		return fmt.Errorf("edata: flushing batch: %w", err)
	}

	wtr.batch = wtr.batch[:0]
	wtr.batchN = 0

	return nil
}

// Count reports how many records have been appended so far.
func (wtr *Writer) Count() uint32 { return wtr.total }

// Close flushes any buffered records and rewrites the header count at
// offset 0 with the final total.
func (wtr *Writer) Close() error {
	if err := wtr.flush(); err != nil {
		return err
	}

	if _, err := wtr.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("edata: seeking to header: %w", err)
	}

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], wtr.total)

	if _, err := wtr.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("edata: rewriting header: %w", err)
	}

	return nil
}
