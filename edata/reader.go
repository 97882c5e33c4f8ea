package edata

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadAll decodes the full original-edge-data stream from r: the leading
// 4-byte count header followed by that many fixed-width records.
func ReadAll(r io.Reader) ([]Record, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("edata: reading header: %w", err)
	}

	count := binary.LittleEndian.Uint32(hdr[:])

	return readRecords(r, count)
}
