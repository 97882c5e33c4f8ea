package osrmfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/waygraph/waygraph/fingerprint"
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/pipeline"
	"github.com/waygraph/waygraph/restriction"
)

// Contents is the full payload of one extracted-network file.
type Contents struct {
	Nodes []nodegraph.InputNode
	Edges []nodegraph.InputEdge

	Restrictions    []restriction.Record
	WayRestrictions []restriction.WayRecord
}

// Per-record fixed sizes.
const (
	nodeRecordSize = 21 // id + lon + lat + flags + osm id
	edgeRecordSize = 26 // source + target + name + weight + duration + distance + flags
)

// Node flag bits.
const (
	nodeFlagBarrier      = 1 << 0
	nodeFlagTrafficLight = 1 << 1
)

// Edge flag bits; the travel mode occupies the high nibble.
const (
	edgeFlagForward    = 1 << 0
	edgeFlagBackward   = 1 << 1
	edgeFlagRoundabout = 1 << 2
	edgeFlagAccess     = 1 << 3
	edgeFlagStartpoint = 1 << 4
	edgeFlagIsSplit    = 1 << 5
	edgeModeShift      = 12
)

// Restriction record kinds.
const (
	restrictionSimple byte = 0
	restrictionViaWay byte = 1
)

// Write serializes c: fingerprint, node stream, edge stream, restriction
// stream.
func Write(w io.Writer, c *Contents) error {
	bw := bufio.NewWriter(w)

	if err := writeFingerprint(bw); err != nil {
		return err
	}
	if err := writeNodes(bw, c.Nodes); err != nil {
		return err
	}
	if err := writeEdges(bw, c.Edges); err != nil {
		return err
	}
	if err := writeRestrictions(bw, c.Restrictions, c.WayRestrictions); err != nil {
		return err
	}

	return bw.Flush()
}

// Read decodes a file produced by Write, validating the fingerprint.
func Read(r io.Reader) (*Contents, error) {
	br := bufio.NewReader(r)

	if err := readFingerprint(br); err != nil {
		return nil, err
	}

	nodes, err := readNodes(br)
	if err != nil {
		return nil, err
	}

	edges, err := readEdges(br)
	if err != nil {
		return nil, err
	}

	simple, viaWay, err := readRestrictions(br)
	if err != nil {
		return nil, err
	}

	return &Contents{Nodes: nodes, Edges: edges, Restrictions: simple, WayRestrictions: viaWay}, nil
}

// WriteRestrictions serializes a standalone restrictions file: fingerprint
// plus the restriction stream only.
func WriteRestrictions(w io.Writer, simple []restriction.Record, viaWay []restriction.WayRecord) error {
	bw := bufio.NewWriter(w)

	if err := writeFingerprint(bw); err != nil {
		return err
	}
	if err := writeRestrictions(bw, simple, viaWay); err != nil {
		return err
	}

	return bw.Flush()
}

// ReadRestrictions decodes a standalone restrictions file.
func ReadRestrictions(r io.Reader) ([]restriction.Record, []restriction.WayRecord, error) {
	br := bufio.NewReader(r)

	if err := readFingerprint(br); err != nil {
		return nil, nil, err
	}

	return readRestrictions(br)
}

func writeFingerprint(w io.Writer) error {
	var hdr [fingerprint.HeaderSize]byte
	h := fingerprint.Header{Major: FormatMajor, Minor: FormatMinor, Patch: FormatPatch}
	if err := fingerprint.Write(hdr[:], h); err != nil {
		return err
	}

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: writing fingerprint: %v", pipeline.ErrResourceExhausted, err)
	}

	return nil
}

// Format version of the extracted-network container.
const (
	FormatMajor = 1
	FormatMinor = 0
	FormatPatch = 0
)

func readFingerprint(r io.Reader) error {
	var hdr [fingerprint.HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("%w: reading fingerprint: %v", pipeline.ErrInputInvalid, err)
	}

	h, err := fingerprint.Read(hdr[:])
	if err != nil {
		return fmt.Errorf("%w: %v", pipeline.ErrInputInvalid, err)
	}

	if !h.Compatible(fingerprint.Header{Major: FormatMajor, Minor: FormatMinor}) {
		return fmt.Errorf("%w: file version %d.%d, reader version %d.%d", pipeline.ErrInputIncompatible, h.Major, h.Minor, FormatMajor, FormatMinor)
	}

	return nil
}

func writeCount(w io.Writer, n int) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%w: %d records overflow the count field", pipeline.ErrInputInvalid, n)
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	_, err := w.Write(buf[:])

	return err
}

func readCount(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading count: %v", pipeline.ErrInputInvalid, err)
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeNodes(w io.Writer, nodes []nodegraph.InputNode) error {
	if err := writeCount(w, len(nodes)); err != nil {
		return err
	}

	var rec [nodeRecordSize]byte
	for _, n := range nodes {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(n.ID))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(n.Coordinate.Lon))
		binary.LittleEndian.PutUint32(rec[8:12], uint32(n.Coordinate.Lat))

		var flags byte
		if n.Barrier {
			flags |= nodeFlagBarrier
		}
		if n.TrafficLight {
			flags |= nodeFlagTrafficLight
		}
		rec[12] = flags

		binary.LittleEndian.PutUint64(rec[13:21], uint64(n.OSMID))

		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}

	return nil
}

func readNodes(r io.Reader) ([]nodegraph.InputNode, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}

	nodes := make([]nodegraph.InputNode, count)

	var rec [nodeRecordSize]byte
	for i := range nodes {
		if _, err = io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: node record %d: %v", pipeline.ErrInputInvalid, i, err)
		}

		nodes[i] = nodegraph.InputNode{
			ID: nodegraph.NodeID(binary.LittleEndian.Uint32(rec[0:4])),
			Coordinate: geometry.Coordinate{
				Lon: int32(binary.LittleEndian.Uint32(rec[4:8])),
				Lat: int32(binary.LittleEndian.Uint32(rec[8:12])),
			},
			Barrier:      rec[12]&nodeFlagBarrier != 0,
			TrafficLight: rec[12]&nodeFlagTrafficLight != 0,
			OSMID:        int64(binary.LittleEndian.Uint64(rec[13:21])),
		}
	}

	return nodes, nil
}

func writeEdges(w io.Writer, edges []nodegraph.InputEdge) error {
	if err := writeCount(w, len(edges)); err != nil {
		return err
	}

	var rec [edgeRecordSize]byte
	for _, e := range edges {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(e.Source))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(e.Target))
		binary.LittleEndian.PutUint32(rec[8:12], e.NameID)
		binary.LittleEndian.PutUint32(rec[12:16], uint32(e.Weight))
		binary.LittleEndian.PutUint32(rec[16:20], uint32(e.Duration))
		binary.LittleEndian.PutUint32(rec[20:24], uint32(e.Distance))

		var flags uint16
		if e.Forward {
			flags |= edgeFlagForward
		}
		if e.Backward {
			flags |= edgeFlagBackward
		}
		if e.Roundabout {
			flags |= edgeFlagRoundabout
		}
		if e.Access {
			flags |= edgeFlagAccess
		}
		if e.Startpoint {
			flags |= edgeFlagStartpoint
		}
		if e.IsSplit {
			flags |= edgeFlagIsSplit
		}
		flags |= uint16(e.Mode) << edgeModeShift
		binary.LittleEndian.PutUint16(rec[24:26], flags)

		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}

	return nil
}

func readEdges(r io.Reader) ([]nodegraph.InputEdge, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}

	edges := make([]nodegraph.InputEdge, count)

	var rec [edgeRecordSize]byte
	for i := range edges {
		if _, err = io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: edge record %d: %v", pipeline.ErrInputInvalid, i, err)
		}

		flags := binary.LittleEndian.Uint16(rec[24:26])

		edges[i] = nodegraph.InputEdge{
			Source:     nodegraph.NodeID(binary.LittleEndian.Uint32(rec[0:4])),
			Target:     nodegraph.NodeID(binary.LittleEndian.Uint32(rec[4:8])),
			NameID:     binary.LittleEndian.Uint32(rec[8:12]),
			Weight:     int32(binary.LittleEndian.Uint32(rec[12:16])),
			Duration:   int32(binary.LittleEndian.Uint32(rec[16:20])),
			Distance:   int32(binary.LittleEndian.Uint32(rec[20:24])),
			Forward:    flags&edgeFlagForward != 0,
			Backward:   flags&edgeFlagBackward != 0,
			Roundabout: flags&edgeFlagRoundabout != 0,
			Access:     flags&edgeFlagAccess != 0,
			Startpoint: flags&edgeFlagStartpoint != 0,
			IsSplit:    flags&edgeFlagIsSplit != 0,
			Mode:       nodegraph.TravelMode(flags >> edgeModeShift),
		}
	}

	return edges, nil
}

func writeRestrictions(w io.Writer, simple []restriction.Record, viaWay []restriction.WayRecord) error {
	if err := writeCount(w, len(simple)+len(viaWay)); err != nil {
		return err
	}

	for _, r := range simple {
		if err := writeRestrictionRecord(w, restrictionSimple, []nodegraph.NodeID{r.From, r.Via, r.To}, r.IsOnly, r.Condition); err != nil {
			return err
		}
	}

	for _, r := range viaWay {
		if err := writeRestrictionRecord(w, restrictionViaWay, []nodegraph.NodeID{r.InFrom, r.InVia, r.OutVia, r.OutTo}, r.IsOnly, r.Condition); err != nil {
			return err
		}
	}

	return nil
}

func writeRestrictionRecord(w io.Writer, kind byte, ids []nodegraph.NodeID, isOnly bool, condition string) error {
	if len(condition) > math.MaxUint16 {
		return fmt.Errorf("%w: condition exceeds %d bytes", pipeline.ErrInputInvalid, math.MaxUint16)
	}

	buf := make([]byte, 0, 2+4*len(ids)+2+len(condition))
	buf = append(buf, kind)

	var only byte
	if isOnly {
		only = 1
	}
	buf = append(buf, only)

	var id [4]byte
	for _, n := range ids {
		binary.LittleEndian.PutUint32(id[:], uint32(n))
		buf = append(buf, id[:]...)
	}

	var clen [2]byte
	binary.LittleEndian.PutUint16(clen[:], uint16(len(condition)))
	buf = append(buf, clen[:]...)
	buf = append(buf, condition...)

	_, err := w.Write(buf)

	return err
}

func readRestrictions(r io.Reader) ([]restriction.Record, []restriction.WayRecord, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, nil, err
	}

	var (
		simple []restriction.Record
		viaWay []restriction.WayRecord
	)

	for i := uint32(0); i < count; i++ {
		var head [2]byte
		if _, err = io.ReadFull(r, head[:]); err != nil {
			return nil, nil, fmt.Errorf("%w: restriction record %d: %v", pipeline.ErrInputInvalid, i, err)
		}

		kind := head[0]
		isOnly := head[1] != 0

		idCount := 3
		if kind == restrictionViaWay {
			idCount = 4
		} else if kind != restrictionSimple {
			return nil, nil, fmt.Errorf("%w: restriction record %d: unknown kind %d", pipeline.ErrInputInvalid, i, kind)
		}

		ids := make([]nodegraph.NodeID, idCount)
		var id [4]byte
		for j := range ids {
			if _, err = io.ReadFull(r, id[:]); err != nil {
				return nil, nil, fmt.Errorf("%w: restriction record %d: %v", pipeline.ErrInputInvalid, i, err)
			}
			ids[j] = nodegraph.NodeID(binary.LittleEndian.Uint32(id[:]))
		}

		var clen [2]byte
		if _, err = io.ReadFull(r, clen[:]); err != nil {
			return nil, nil, fmt.Errorf("%w: restriction record %d: %v", pipeline.ErrInputInvalid, i, err)
		}

		condition := make([]byte, binary.LittleEndian.Uint16(clen[:]))
		if _, err = io.ReadFull(r, condition); err != nil {
			return nil, nil, fmt.Errorf("%w: restriction record %d: %v", pipeline.ErrInputInvalid, i, err)
		}

		if kind == restrictionSimple {
			simple = append(simple, restriction.Record{
				From: ids[0], Via: ids[1], To: ids[2],
				IsOnly: isOnly, Condition: string(condition),
			})
		} else {
			viaWay = append(viaWay, restriction.WayRecord{
				InFrom: ids[0], InVia: ids[1], OutVia: ids[2], OutTo: ids[3],
				IsOnly: isOnly, Condition: string(condition),
			})
		}
	}

	return simple, viaWay, nil
}
