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

// legacyFieldCount is the number of float32 fields in one legacy record:
// event_id, true_energy,
// true_r1,true_phi1,true_z1,true_t1, true_r2,true_phi2,true_z2,true_t2,
// phot_like1,phot_like2,
// reco_r1,reco_phi1,reco_z1,reco_t1, reco_r2,reco_phi2,reco_z2,reco_t2,
// not_sel.
const legacyFieldCount = 21

// LegacyCylindricalReader reads the fixed-schema legacy binary: a
// uint32 record count followed by that many fixed-size records, each
// carrying both a "true" and a "reco" role in cylindrical coordinates
// (r, phi, z, t) per endpoint. UseTrue selects which role is converted
// to the Cartesian LOR.
type LegacyCylindricalReader struct {
	Path    string
	UseTrue bool
}

type legacyRecord struct {
	eventID, trueEnergy               float32
	trueR1, truePhi1, trueZ1, trueT1  float32
	trueR2, truePhi2, trueZ2, trueT2  float32
	photLike1, photLike2              float32
	recoR1, recoPhi1, recoZ1, recoT1  float32
	recoR2, recoPhi2, recoZ2, recoT2  float32
	notSel                            float32
}

func (r LegacyCylindricalReader) ReadLORs(filter Filter) (Result, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return Result{}, &ParseError{Path: r.Path, Msg: err.Error()}
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return Result{}, &ParseError{Path: r.Path, Msg: fmt.Sprintf("reading record count: %v", err)}
	}

	n := int(count)
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

	recordBytes := int64(legacyFieldCount * 4)
	if lo > 0 {
		if _, err := f.Seek(recordBytes*int64(lo), io.SeekCurrent); err != nil {
			return Result{}, &ParseError{Path: r.Path, Msg: err.Error()}
		}
	}

	buf := make([]byte, recordBytes)
	var result Result
	for i := lo; i < hi; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return Result{}, &ParseError{Path: r.Path, Msg: fmt.Sprintf("reading record %d: %v", i, err)}
		}
		rec := decodeLegacy(buf)

		var radius1, phi1, z1, t1, radius2, phi2, z2, t2 float32
		if r.UseTrue {
			radius1, phi1, z1, t1 = rec.trueR1, rec.truePhi1, rec.trueZ1, rec.trueT1
			radius2, phi2, z2, t2 = rec.trueR2, rec.truePhi2, rec.trueZ2, rec.trueT2
		} else {
			radius1, phi1, z1, t1 = rec.recoR1, rec.recoPhi1, rec.recoZ1, rec.recoT1
			radius2, phi2, z2, t2 = rec.recoR2, rec.recoPhi2, rec.recoZ2, rec.recoT2
		}

		// q1/q2 have no legacy analogue; only the energy cut applies.
		if !filter.eCutOK(rec.trueEnergy, rec.trueEnergy) {
			result.Rejected++
			continue
		}

		x1 := radius1 * float32(math.Cos(float64(phi1)))
		y1 := radius1 * float32(math.Sin(float64(phi1)))
		x2 := radius2 * float32(math.Cos(float64(phi2)))
		y2 := radius2 * float32(math.Sin(float64(phi2)))

		dtNs := t1 - t2

		l := lor.New(
			geom.NewPoint(units.Length(x1), units.Length(y1), units.Length(z1)),
			geom.NewPoint(units.Length(x2), units.Length(y2), units.Length(z2)),
			units.Time(dtNs),
		)
		result.Records = append(result.Records, Record{LOR: l, E1: rec.trueEnergy, E2: rec.trueEnergy})
	}
	return result, nil
}

func decodeLegacy(buf []byte) legacyRecord {
	var f [legacyFieldCount]float32
	for i := range f {
		bits := binary.LittleEndian.Uint32(buf[i*4:])
		f[i] = math.Float32frombits(bits)
	}
	return legacyRecord{
		eventID: f[0], trueEnergy: f[1],
		trueR1: f[2], truePhi1: f[3], trueZ1: f[4], trueT1: f[5],
		trueR2: f[6], truePhi2: f[7], trueZ2: f[8], trueT2: f[9],
		photLike1: f[10], photLike2: f[11],
		recoR1: f[12], recoPhi1: f[13], recoZ1: f[14], recoT1: f[15],
		recoR2: f[16], recoPhi2: f[17], recoZ2: f[18], recoT2: f[19],
		notSel: f[20],
	}
}
