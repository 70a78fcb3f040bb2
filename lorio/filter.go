// Package lorio reads measured LORs from the two on-disk formats the
// reconstruction pipeline has to support: a tabular columnar float32
// record, and a legacy fixed-schema binary using cylindrical coordinates.
// Both are exposed behind the same Filter/Reader shape so the CLI layer
// does not need to know which one it is driving.
package lorio

import "github.com/petalo-go/petalo/lor"

// Filter restricts which records a Reader turns into LORs: a half-open
// event-index range, and inclusive bound-pair cuts on energy and charge.
type Filter struct {
	// EventRange is [Lo, Hi); a zero value (Hi<=Lo) means "no range limit".
	EventRange [2]int
	// ECut bounds both E1 and E2 (keV); a zero value means "no cut".
	ECut [2]float32
	// QCut bounds both q1 and q2; a zero value means "no cut".
	QCut [2]float32
}

// hasRange reports whether f restricts the event range.
func (f Filter) hasRange() bool { return f.EventRange[1] > f.EventRange[0] }

// hasECut reports whether f restricts energy.
func (f Filter) hasECut() bool { return f.ECut[1] > f.ECut[0] }

// hasQCut reports whether f restricts charge.
func (f Filter) hasQCut() bool { return f.QCut[1] > f.QCut[0] }

func (f Filter) eCutOK(e1, e2 float32) bool {
	if !f.hasECut() {
		return true
	}
	return e1 >= f.ECut[0] && e1 <= f.ECut[1] && e2 >= f.ECut[0] && e2 <= f.ECut[1]
}

func (f Filter) qCutOK(q1, q2 float32) bool {
	if !f.hasQCut() {
		return true
	}
	return q1 >= f.QCut[0] && q1 <= f.QCut[1] && q2 >= f.QCut[0] && q2 <= f.QCut[1]
}

// Record pairs a geometric LOR with the energy/charge metadata needed to
// classify it for scattergram filling; MLEM itself only ever looks at
// the embedded lor.LOR.
type Record struct {
	LOR    lor.LOR
	E1, E2 float32
	Q1, Q2 float32
}

// Result is what every Reader returns: the accepted records plus a count
// of records rejected by range or cuts, reported rather than silently
// dropped.
type Result struct {
	Records  []Record
	Rejected int
}

// Reader reads LORs from one on-disk format.
type Reader interface {
	ReadLORs(filter Filter) (Result, error)
}
