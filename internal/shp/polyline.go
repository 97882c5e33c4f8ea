package shp

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/waygraph/waygraph/geometry"
)

const (
	fileCode       = 9994
	formatVersion  = 1000
	shapePolyline  = 3
	mainHeaderSize = 100
)

// PolylineWriter accumulates single-part polylines and writes the
// .shp/.shx/.dbf triple on Close.
type PolylineWriter struct {
	base  string
	lines [][]geometry.Coordinate
}

// NewPolylineWriter prepares a writer for base + ".shp", ".shx" and
// ".dbf". Nothing is written until Close.
func NewPolylineWriter(base string) *PolylineWriter {
	return &PolylineWriter{base: base}
}

// Add appends one polyline. Lines with fewer than two points are dropped.
func (w *PolylineWriter) Add(points []geometry.Coordinate) {
	if len(points) < 2 {
		return
	}

	w.lines = append(w.lines, points)
}

// Count returns the number of polylines added so far.
func (w *PolylineWriter) Count() int { return len(w.lines) }

// Close writes all three files.
func (w *PolylineWriter) Close() error {
	if err := w.writeShp(); err != nil {
		return err
	}
	if err := w.writeShx(); err != nil {
		return err
	}

	return w.writeDbf()
}

// contentWords is the record content length of a single-part polyline, in
// 16-bit words: shape type + box + part/point counts + one part offset +
// the points themselves.
func contentWords(points int) int {
	return (4 + 32 + 4 + 4 + 4 + 16*points) / 2
}

func (w *PolylineWriter) bounds() (xmin, ymin, xmax, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	for _, line := range w.lines {
		for _, p := range line {
			x, y := p.Lond(), p.Latd()
			xmin = math.Min(xmin, x)
			ymin = math.Min(ymin, y)
			xmax = math.Max(xmax, x)
			ymax = math.Max(ymax, y)
		}
	}

	if len(w.lines) == 0 {
		xmin, ymin, xmax, ymax = 0, 0, 0, 0
	}

	return xmin, ymin, xmax, ymax
}

func (w *PolylineWriter) mainHeader(fileWords int) []byte {
	buf := make([]byte, mainHeaderSize)
	binary.BigEndian.PutUint32(buf[0:4], fileCode)
	binary.BigEndian.PutUint32(buf[24:28], uint32(fileWords))
	binary.LittleEndian.PutUint32(buf[28:32], formatVersion)
	binary.LittleEndian.PutUint32(buf[32:36], shapePolyline)

	xmin, ymin, xmax, ymax := w.bounds()
	putFloat(buf[36:], xmin)
	putFloat(buf[44:], ymin)
	putFloat(buf[52:], xmax)
	putFloat(buf[60:], ymax)

	return buf
}

func (w *PolylineWriter) writeShp() error {
	words := mainHeaderSize / 2
	for _, line := range w.lines {
		words += 4 + contentWords(len(line))
	}

	f, err := os.Create(w.base + ".shp")
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(w.mainHeader(words)); err != nil {
		return err
	}

	for i, line := range w.lines {
		if _, err = f.Write(w.record(i, line)); err != nil {
			return err
		}
	}

	return f.Close()
}

func (w *PolylineWriter) record(index int, line []geometry.Coordinate) []byte {
	content := contentWords(len(line))
	buf := make([]byte, 8+content*2)

	binary.BigEndian.PutUint32(buf[0:4], uint32(index+1))
	binary.BigEndian.PutUint32(buf[4:8], uint32(content))

	body := buf[8:]
	binary.LittleEndian.PutUint32(body[0:4], shapePolyline)

	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, p := range line {
		x, y := p.Lond(), p.Latd()
		xmin = math.Min(xmin, x)
		ymin = math.Min(ymin, y)
		xmax = math.Max(xmax, x)
		ymax = math.Max(ymax, y)
	}
	putFloat(body[4:], xmin)
	putFloat(body[12:], ymin)
	putFloat(body[20:], xmax)
	putFloat(body[28:], ymax)

	binary.LittleEndian.PutUint32(body[36:40], 1) // single part
	binary.LittleEndian.PutUint32(body[40:44], uint32(len(line)))
	binary.LittleEndian.PutUint32(body[44:48], 0) // part start offset

	off := 48
	for _, p := range line {
		putFloat(body[off:], p.Lond())
		putFloat(body[off+8:], p.Latd())
		off += 16
	}

	return buf
}

func (w *PolylineWriter) writeShx() error {
	words := (mainHeaderSize + 8*len(w.lines)) / 2

	f, err := os.Create(w.base + ".shx")
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(w.mainHeader(words)); err != nil {
		return err
	}

	offset := mainHeaderSize / 2
	var rec [8]byte
	for _, line := range w.lines {
		content := contentWords(len(line))
		binary.BigEndian.PutUint32(rec[0:4], uint32(offset))
		binary.BigEndian.PutUint32(rec[4:8], uint32(content))

		if _, err = f.Write(rec[:]); err != nil {
			return err
		}

		offset += 4 + content
	}

	return f.Close()
}

// writeDbf emits the minimal dBase III companion: a single numeric ID
// column, one row per polyline.
func (w *PolylineWriter) writeDbf() error {
	const (
		fieldLen   = 10
		headerSize = 32 + 32 + 1 // file header + one field descriptor + terminator
		recordSize = 1 + fieldLen
	)

	f, err := os.Create(w.base + ".dbf")
	if err != nil {
		return err
	}
	defer f.Close()

	now := time.Now()

	header := make([]byte, headerSize)
	header[0] = 0x03
	header[1] = byte(now.Year() - 1900)
	header[2] = byte(now.Month())
	header[3] = byte(now.Day())
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(w.lines)))
	binary.LittleEndian.PutUint16(header[8:10], headerSize)
	binary.LittleEndian.PutUint16(header[10:12], recordSize)

	field := header[32:64]
	copy(field, "ID")
	field[11] = 'N'
	field[16] = fieldLen

	header[64] = 0x0D

	if _, err = f.Write(header); err != nil {
		return err
	}

	for i := range w.lines {
		rec := fmt.Sprintf(" %*d", fieldLen, i+1)
		if _, err = f.Write([]byte(rec)); err != nil {
			return err
		}
	}

	if _, err = f.Write([]byte{0x1A}); err != nil {
		return err
	}

	return f.Close()
}

func putFloat(buf []byte, v float64) {
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(v))
}
