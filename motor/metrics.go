package motor

import (
	"math"
	"sort"

	"github.com/pb33f/reqgrid/motor/model"
)

// Phase identifies one of the five timing phases of a request.
type Phase int

const (
	PhaseTransfer Phase = iota
	PhaseDNS
	PhaseConnection
	PhaseTTFB
	PhaseTLS
)

// PhaseCount is the number of timing phases.
const PhaseCount = 5

// PhaseOrder is the fixed display order of the phases, shared by bars, pies and detail rows.
var PhaseOrder = [PhaseCount]Phase{PhaseTransfer, PhaseDNS, PhaseConnection, PhaseTTFB, PhaseTLS}

// Label returns the human-readable phase name.
func (p Phase) Label() string {
	switch p {
	case PhaseTransfer:
		return "Transfer"
	case PhaseDNS:
		return "DNS"
	case PhaseConnection:
		return "Connection"
	case PhaseTTFB:
		return "TTFB"
	case PhaseTLS:
		return "TLS"
	default:
		return "Unknown"
	}
}

// Token returns the identity token of the phase, used to pick its colour.
func (p Phase) Token() string {
	switch p {
	case PhaseTransfer:
		return "transfer"
	case PhaseDNS:
		return "dns"
	case PhaseConnection:
		return "connection"
	case PhaseTTFB:
		return "ttfb"
	case PhaseTLS:
		return "tls"
	default:
		return "unknown"
	}
}

// PhaseValue extracts a single phase from t.
func PhaseValue(t model.TimingPhases, p Phase) float64 {
	switch p {
	case PhaseTransfer:
		return t.Transfer
	case PhaseDNS:
		return t.DNS
	case PhaseConnection:
		return t.Connection
	case PhaseTTFB:
		return t.TTFB
	case PhaseTLS:
		return t.TLS
	default:
		return 0
	}
}

// PhaseShare is one phase's slice of the total.
type PhaseShare struct {
	Phase   Phase
	Value   float64
	Percent float64
}

// Breakdown holds the derived percentages of a request's timing phases, in PhaseOrder.
type Breakdown struct {
	Total  float64
	Shares [PhaseCount]PhaseShare
}

// Arc is a pie slice, in degrees.
type Arc struct {
	Phase Phase
	Start float64
	End   float64
}

// ComputeBreakdown derives per-phase percentages relative to the sum of all phases.
// Negative and NaN phases count as zero. When the sum is zero every percentage is zero.
func ComputeBreakdown(t model.TimingPhases) Breakdown {
	var b Breakdown

	for i, p := range PhaseOrder {
		v := clampPhase(PhaseValue(t, p))
		b.Shares[i] = PhaseShare{Phase: p, Value: v}
		b.Total += v
	}

	if b.Total == 0 || math.IsInf(b.Total, 0) {
		return b
	}

	for i := range b.Shares {
		b.Shares[i].Percent = b.Shares[i].Value / b.Total * 100
	}

	return b
}

func clampPhase(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Percentages returns the five percentages in PhaseOrder.
func (b Breakdown) Percentages() [PhaseCount]float64 {
	var out [PhaseCount]float64
	for i, s := range b.Shares {
		out[i] = s.Percent
	}
	return out
}

// Share returns the share of a single phase.
func (b Breakdown) Share(p Phase) PhaseShare {
	for _, s := range b.Shares {
		if s.Phase == p {
			return s
		}
	}
	return PhaseShare{Phase: p}
}

// Widths splits total cells between the phases using the largest remainder method,
// so a stacked bar is always exactly total cells wide. A zero breakdown gets no cells.
func (b Breakdown) Widths(total int) [PhaseCount]int {
	var widths [PhaseCount]int
	if total <= 0 || b.Total == 0 {
		return widths
	}

	type remainder struct {
		idx  int
		frac float64
	}

	remainders := make([]remainder, 0, PhaseCount)
	used := 0
	for i, s := range b.Shares {
		exact := s.Percent / 100 * float64(total)
		whole := int(math.Floor(exact))
		widths[i] = whole
		used += whole
		remainders = append(remainders, remainder{idx: i, frac: exact - float64(whole)})
	}

	// ties keep phase order
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})

	for i := 0; used < total && i < len(remainders); i++ {
		widths[remainders[i].idx]++
		used++
	}

	return widths
}

// Arcs lays the phases out as pie slices sweeping from startDeg to endDeg.
// The sweep may run in either direction; zero-share phases get empty arcs.
func (b Breakdown) Arcs(startDeg, endDeg float64) []Arc {
	arcs := make([]Arc, 0, PhaseCount)
	sweep := endDeg - startDeg
	cursor := startDeg

	last := -1
	for i, s := range b.Shares {
		next := cursor + sweep*s.Percent/100
		arcs = append(arcs, Arc{Phase: s.Phase, Start: cursor, End: next})
		cursor = next
		if s.Percent > 0 {
			last = i
		}
	}

	// rounding must not leave a sliver uncovered at the end of the sweep
	if last >= 0 {
		arcs[last].End = endDeg
		for i := last + 1; i < len(arcs); i++ {
			arcs[i].Start, arcs[i].End = endDeg, endDeg
		}
	}

	return arcs
}

// Contains reports whether deg falls inside the arc, regardless of sweep direction.
func (a Arc) Contains(deg float64) bool {
	lo, hi := a.Start, a.End
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return false
	}
	return deg >= lo && deg <= hi
}
