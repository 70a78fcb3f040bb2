package lorio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/lor"
	"github.com/petalo-go/petalo/units"
)

// ParseError reports a malformed input file: wrong size, truncated
// record, or unreadable header. It is fatal and carries the file path so
// the CLI can surface it directly to the user.
type ParseError struct {
	Path string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("petalo: %s: %s", e.Path, e.Msg)
}

// tabularFieldCount is the number of float32 fields in one record:
// dt, x1,y1,z1, x2,y2,z2, q1,q2, E1,E2.
const tabularFieldCount = 11

// TabularReader reads the columnar float32 LOR format: a stream of
// fixed-size records, one per event, each laid out as
// {dt, x1,y1,z1, x2,y2,z2, q1,q2, E1,E2} in that order, little-endian.
// Times are stored in nanoseconds; positions in millimetres.
type TabularReader struct {
	Path string
}

// ReadLORs reads every record from the file, applies filter, and returns
// the accepted LORs plus a rejected count.
func (r TabularReader) ReadLORs(filter Filter) (Result, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return Result{}, &ParseError{Path: r.Path, Msg: err.Error()}
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	info, err := f.Stat()
	if err != nil {
		return Result{}, &ParseError{Path: r.Path, Msg: err.Error()}
	}
	recordBytes := int64(tabularFieldCount * 4)
	if info.Size()%recordBytes != 0 {
		return Result{}, &ParseError{Path: r.Path, Msg: fmt.Sprintf("file size %d is not a multiple of record size %d", info.Size(), recordBytes)}
	}
	n := int(info.Size() / recordBytes)

	lo, hi := 0, n
	if filter.hasRange() {
		lo, hi = filter.EventRange[0], filter.EventRange[1]
		if lo < 0 {
			lo = 0
		}
		if hi > n {
			hi = n
		}
	}
	if lo > 0 {
		if _, err := f.Seek(int64(lo)*recordBytes, io.SeekStart); err != nil {
			return Result{}, &ParseError{Path: r.Path, Msg: err.Error()}
		}
	}

	buf := make([]byte, recordBytes)
	var result Result
	for i := lo; i < hi; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return Result{}, &ParseError{Path: r.Path, Msg: fmt.Sprintf("reading record %d: %v", i, err)}
		}
		fields := decodeFloat32s(buf)
		dt, x1, y1, z1, x2, y2, z2, q1, q2, e1, e2 :=
			fields[0], fields[1], fields[2], fields[3], fields[4],
			fields[5], fields[6], fields[7], fields[8], fields[9], fields[10]

		if !filter.eCutOK(e1, e2) || !filter.qCutOK(q1, q2) {
			result.Rejected++
			continue
		}

		l := lor.New(
			geom.NewPoint(units.Length(x1), units.Length(y1), units.Length(z1)),
			geom.NewPoint(units.Length(x2), units.Length(y2), units.Length(z2)),
			units.Time(dt),
		)
		result.Records = append(result.Records, Record{LOR: l, E1: e1, E2: e2, Q1: q1, Q2: q2})
	}
	return result, nil
}

func decodeFloat32s(buf []byte) [tabularFieldCount]float32 {
	var out [tabularFieldCount]float32
	for i := range out {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
