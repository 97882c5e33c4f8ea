package edata

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/waygraph/waygraph/guidance"
	"github.com/waygraph/waygraph/nodegraph"
)

// RecordSize is the fixed on-disk size of one Record, in bytes:
// 4 (via) + 4 (name id) + 1 (instruction type) + 1 (direction) +
// 4 (lane data id) + 1 (mode) + 4 (entry class id) + 4 + 4 (bearings).
const RecordSize = 27

// instructionAccessBit is OR'd into the on-disk instruction-type byte when
// the turn crosses an access-restriction boundary.
const instructionAccessBit byte = 0x80

// Record is one per-turn-id entry of the original-edge-data sidecar:
// the via-node, the onward edge's name id, the assigned turn
// instruction, a lane-data id, the travel mode, an entry-class id, and the
// pre/post turn bearings.
type Record struct {
	Via             nodegraph.NodeID
	NameID          uint32
	Instruction     guidance.Instruction
	LaneDataID      uint32
	Mode            nodegraph.TravelMode
	EntryClassID    uint32
	PreTurnBearing  float32
	PostTurnBearing float32
}

// encode appends r's fixed-width binary form to buf.
func (r Record) encode(buf []byte) []byte {
	var tmp [RecordSize]byte

	binary.LittleEndian.PutUint32(tmp[0:4], uint32(r.Via))
	binary.LittleEndian.PutUint32(tmp[4:8], r.NameID)
	instrType := byte(r.Instruction.Type)
	if r.Instruction.AccessRestricted {
		instrType |= instructionAccessBit
	}
	tmp[8] = instrType
	tmp[9] = byte(r.Instruction.Direction)
	binary.LittleEndian.PutUint32(tmp[10:14], r.LaneDataID)
	tmp[14] = byte(r.Mode)
	binary.LittleEndian.PutUint32(tmp[15:19], r.EntryClassID)
	binary.LittleEndian.PutUint32(tmp[19:23], float32bits(r.PreTurnBearing))
	binary.LittleEndian.PutUint32(tmp[23:27], float32bits(r.PostTurnBearing))

	return append(buf, tmp[:]...)
}

// decode reads one Record from the front of buf, returning the remainder.
func decode(buf []byte) (Record, []byte, error) {
	if len(buf) < RecordSize {
		return Record{}, nil, fmt.Errorf("edata: truncated record: %d bytes remain", len(buf))
	}

	r := Record{
		Via:    nodegraph.NodeID(binary.LittleEndian.Uint32(buf[0:4])),
		NameID: binary.LittleEndian.Uint32(buf[4:8]),
		Instruction: guidance.Instruction{
			Type:             guidance.InstructionType(buf[8] &^ instructionAccessBit),
			Direction:        guidance.Direction(buf[9]),
			AccessRestricted: buf[8]&instructionAccessBit != 0,
		},
		LaneDataID:      binary.LittleEndian.Uint32(buf[10:14]),
		Mode:            nodegraph.TravelMode(buf[14]),
		EntryClassID:    binary.LittleEndian.Uint32(buf[15:19]),
		PreTurnBearing:  float32frombits(binary.LittleEndian.Uint32(buf[19:23])),
		PostTurnBearing: float32frombits(binary.LittleEndian.Uint32(buf[23:27])),
	}

	return r, buf[RecordSize:], nil
}

// readRecords decodes count records from r, given the leading uint32 count
// header has already been consumed by the caller (see ReadAll).
func readRecords(r io.Reader, count uint32) ([]Record, error) {
	records := make([]Record, 0, count)
	buf := make([]byte, RecordSize)

	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("edata: reading record %d: %w", i, err)
		}

		rec, _, err := decode(buf)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}
