package channel

import (
	"fmt"
	"math"

	"github.com/roadm-network/roadmctl/pkg/util"
)

// PlanEntry is one channel definition from the device's channel plan.
type PlanEntry struct {
	Name     string
	LowerMHz int64
	UpperMHz int64
}

// SpanGHz returns the entry's width on the grid.
func (e PlanEntry) SpanGHz() float64 {
	return float64(e.UpperMHz-e.LowerMHz) / spanExp
}

// CenterTHz returns the entry's center frequency.
func (e PlanEntry) CenterTHz() float64 {
	return (float64(e.LowerMHz) + float64(e.UpperMHz-e.LowerMHz)/2) / centerExp
}

// edges keys a plan entry by its exact grid position.
type edges struct {
	lower int64
	upper int64
}

// Plan is a device's channel plan, indexed for resolution by name and by
// grid position.
type Plan struct {
	entries []PlanEntry
	byName  map[string]PlanEntry
	byEdges map[edges]PlanEntry
}

// NewPlan builds a plan from its entries.
func NewPlan(entries []PlanEntry) *Plan {
	p := &Plan{
		entries: entries,
		byName:  make(map[string]PlanEntry, len(entries)),
		byEdges: make(map[edges]PlanEntry, len(entries)),
	}
	for _, e := range entries {
		p.byName[e.Name] = e
		p.byEdges[edges{e.LowerMHz, e.UpperMHz}] = e
	}
	return p
}

// Len returns the number of plan entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns the plan entries in document order.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// Lookup finds a plan entry by name.
func (p *Plan) Lookup(name string) (PlanEntry, bool) {
	e, ok := p.byName[name]
	return e, ok
}

// Resolve locates ch on the plan grid by its center/span and returns a copy
// with Name, LowerMHz and UpperMHz filled in. The match is exact: the
// channel's computed edge frequencies must equal a plan entry's edges.
func (p *Plan) Resolve(ch Channel) (Channel, error) {
	lower := int64(math.Round(ch.CenterTHz*centerExp - ch.SpanGHz*spanExp/2))
	upper := int64(math.Round(ch.CenterTHz*centerExp + ch.SpanGHz*spanExp/2))

	e, ok := p.byEdges[edges{lower, upper}]
	if !ok {
		return Channel{}, &util.PlanError{
			Channel: fmt.Sprintf("with frequency center %g THz and span %g GHz", ch.CenterTHz, ch.SpanGHz),
		}
	}

	ch.Name = e.Name
	ch.LowerMHz = e.LowerMHz
	ch.UpperMHz = e.UpperMHz
	return ch, nil
}

// ResolveName locates ch on the plan grid by its plan name and returns a
// copy with CenterTHz, SpanGHz, LowerMHz and UpperMHz derived from the
// plan entry.
func (p *Plan) ResolveName(ch Channel) (Channel, error) {
	e, ok := p.byName[ch.Name]
	if !ok {
		return Channel{}, &util.PlanError{Channel: ch.Name}
	}

	ch.LowerMHz = e.LowerMHz
	ch.UpperMHz = e.UpperMHz
	ch.SpanGHz = e.SpanGHz()
	ch.CenterTHz = e.CenterTHz()
	return ch, nil
}
