package ebgraph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/waygraph/waygraph/fingerprint"
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/pipeline"
)

// Format version of the serialized edge-based graph. Bump Minor on any
// layout change; readers accept files whose major/minor match.
const (
	FormatMajor = 1
	FormatMinor = 0
	FormatPatch = 0
)

// Packed record sizes of the serialized edge-based graph.
const (
	nodeRecordSize = 32
	edgeRecordSize = 24
)

// Bit layout of the packed per-edge word: the low 30 bits carry the
// weight, the top two bits the direction flags.
const (
	edgeWeightMask  uint32 = (1 << 30) - 1
	edgeForwardBit  uint32 = 1 << 30
	edgeBackwardBit uint32 = 1 << 31
)

// WriteGraph serializes a completed edge-based graph: fingerprint header,
// then (checksum, node count, edge count), then the packed node and edge
// arrays. The checksum is a CRC-32 over the packed payload so a reader can
// detect truncation without re-deriving the graph.
func WriteGraph(w io.Writer, res *Result) error {
	var hdr [fingerprint.HeaderSize]byte
	if err := fingerprint.Write(hdr[:], fingerprint.Header{Major: FormatMajor, Minor: FormatMinor, Patch: FormatPatch}); err != nil {
		return err
	}

	payload := make([]byte, 0, len(res.Nodes)*nodeRecordSize+len(res.Edges)*edgeRecordSize)
	for _, n := range res.Nodes {
		payload = appendNode(payload, n)
	}
	for _, e := range res.Edges {
		payload = appendEdge(payload, e)
	}

	var counts [12]byte
	binary.LittleEndian.PutUint32(counts[0:4], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint32(counts[4:8], uint32(len(res.Nodes)))
	binary.LittleEndian.PutUint32(counts[8:12], uint32(len(res.Edges)))

	for _, chunk := range [][]byte{hdr[:], counts[:], payload} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("%w: writing edge-based graph: %v", pipeline.ErrResourceExhausted, err)
		}
	}

	return nil
}

// ReadGraph decodes a serialized edge-based graph, validating the
// fingerprint and the payload checksum.
func ReadGraph(r io.Reader) (*Result, error) {
	var hdr [fingerprint.HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: reading fingerprint: %v", pipeline.ErrInputInvalid, err)
	}

	h, err := fingerprint.Read(hdr[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrInputInvalid, err)
	}
	if !h.Compatible(fingerprint.Header{Major: FormatMajor, Minor: FormatMinor}) {
		return nil, fmt.Errorf("%w: file version %d.%d, reader version %d.%d", pipeline.ErrInputIncompatible, h.Major, h.Minor, FormatMajor, FormatMinor)
	}

	var counts [12]byte
	if _, err = io.ReadFull(r, counts[:]); err != nil {
		return nil, fmt.Errorf("%w: reading counts: %v", pipeline.ErrInputInvalid, err)
	}

	checksum := binary.LittleEndian.Uint32(counts[0:4])
	nodeCount := binary.LittleEndian.Uint32(counts[4:8])
	edgeCount := binary.LittleEndian.Uint32(counts[8:12])

	payload := make([]byte, int(nodeCount)*nodeRecordSize+int(edgeCount)*edgeRecordSize)
	if _, err = io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: reading payload: %v", pipeline.ErrInputInvalid, err)
	}

	if got := crc32.ChecksumIEEE(payload); got != checksum {
		return nil, fmt.Errorf("%w: payload checksum %08x, header says %08x", pipeline.ErrIntegrityViolation, got, checksum)
	}

	res := &Result{
		Nodes: make([]EBNode, nodeCount),
		Edges: make([]EBEdge, edgeCount),
	}

	off := 0
	for i := range res.Nodes {
		res.Nodes[i] = decodeNode(payload[off : off+nodeRecordSize])
		off += nodeRecordSize
	}
	for i := range res.Edges {
		res.Edges[i] = decodeEdge(payload[off : off+edgeRecordSize])
		off += edgeRecordSize
	}

	return res, nil
}

func appendNode(buf []byte, n EBNode) []byte {
	var rec [nodeRecordSize]byte

	binary.LittleEndian.PutUint32(rec[0:4], uint32(n.From.Lon))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(n.From.Lat))
	binary.LittleEndian.PutUint32(rec[8:12], uint32(n.To.Lon))
	binary.LittleEndian.PutUint32(rec[12:16], uint32(n.To.Lat))
	binary.LittleEndian.PutUint32(rec[16:20], n.NameID)

	packed := uint32(n.Weight) & (1<<31 - 1)
	if n.IgnoreInGrid {
		packed |= 1 << 31
	}
	binary.LittleEndian.PutUint32(rec[20:24], packed)

	binary.LittleEndian.PutUint32(rec[24:28], n.ComponentID<<4|uint32(n.Mode)&0x0F)
	binary.LittleEndian.PutUint32(rec[28:32], uint32(n.ID))

	return append(buf, rec[:]...)
}

func decodeNode(rec []byte) EBNode {
	packed := binary.LittleEndian.Uint32(rec[20:24])
	compMode := binary.LittleEndian.Uint32(rec[24:28])

	return EBNode{
		From: geometry.Coordinate{
			Lon: int32(binary.LittleEndian.Uint32(rec[0:4])),
			Lat: int32(binary.LittleEndian.Uint32(rec[4:8])),
		},
		To: geometry.Coordinate{
			Lon: int32(binary.LittleEndian.Uint32(rec[8:12])),
			Lat: int32(binary.LittleEndian.Uint32(rec[12:16])),
		},
		NameID:       binary.LittleEndian.Uint32(rec[16:20]),
		Weight:       int32(packed & (1<<31 - 1)),
		IgnoreInGrid: packed&(1<<31) != 0,
		Mode:         nodegraph.TravelMode(compMode & 0x0F),
		ComponentID:  compMode >> 4,
		ID:           NodeID(binary.LittleEndian.Uint32(rec[28:32])),
	}
}

func appendEdge(buf []byte, e EBEdge) []byte {
	var rec [edgeRecordSize]byte

	binary.LittleEndian.PutUint32(rec[0:4], uint32(e.Source))
	binary.LittleEndian.PutUint32(rec[4:8], uint32(e.Target))
	binary.LittleEndian.PutUint32(rec[8:12], uint32(e.Data.TurnID))

	packed := uint32(e.Data.Weight) & edgeWeightMask
	if e.Data.Forward {
		packed |= edgeForwardBit
	}
	if e.Data.Backward {
		packed |= edgeBackwardBit
	}
	binary.LittleEndian.PutUint32(rec[12:16], packed)

	binary.LittleEndian.PutUint32(rec[16:20], uint32(e.Data.Duration))
	binary.LittleEndian.PutUint32(rec[20:24], uint32(e.Data.Distance))

	return append(buf, rec[:]...)
}

func decodeEdge(rec []byte) EBEdge {
	packed := binary.LittleEndian.Uint32(rec[12:16])

	return EBEdge{
		Source: NodeID(binary.LittleEndian.Uint32(rec[0:4])),
		Target: NodeID(binary.LittleEndian.Uint32(rec[4:8])),
		Data: EdgeData{
			TurnID:   TurnID(binary.LittleEndian.Uint32(rec[8:12])),
			Weight:   int32(packed & edgeWeightMask),
			Forward:  packed&edgeForwardBit != 0,
			Backward: packed&edgeBackwardBit != 0,
			Duration: int32(binary.LittleEndian.Uint32(rec[16:20])),
			Distance: int32(binary.LittleEndian.Uint32(rec[20:24])),
		},
	}
}
