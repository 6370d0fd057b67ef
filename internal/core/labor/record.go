// Package labor attributes job item quantities and parts revenue to technicians
package labor

import (
	"sort"
	"strings"

	perr "laborreport/internal/platform/errors"
)

// LaborTag marks a job item as labor; the technician's full name follows it
const LaborTag = "labor:"

// ServiceFeeMarker identifies service call fee lines, which are not parts revenue
const ServiceFeeMarker = "Service Call"

// Kind is the semantic type of a job item, decided once when the item is parsed
type Kind uint8

const (
	// KindUnknown is an item with an empty name or a misplaced tag; it is skipped
	KindUnknown Kind = iota
	// KindLabor is attributed to the technician named after the tag
	KindLabor
	// KindParts is a parts or materials line contributing revenue
	KindParts
	// KindServiceFee is a service call fee, excluded from parts revenue
	KindServiceFee
)

func (k Kind) String() string {
	switch k {
	case KindLabor:
		return "labor"
	case KindParts:
		return "parts"
	case KindServiceFee:
		return "service_fee"
	default:
		return "unknown"
	}
}

// Item is one job item row as returned by the API. Pointer fields tell a
// missing column apart from a zero value
type Item struct {
	Name   *string  `json:"Item"`
	Qty    *float64 `json:"Qty"`
	Amount *float64 `json:"Amount"`
}

// Record is a classified job item
type Record struct {
	Kind       Kind
	Technician string
	Qty        float64
	Amount     float64
	HasAmount  bool
}

// Classify types an item name. The tag must be an exact prefix; the remainder
// is the technician name, trimmed of surrounding spaces only. A name carrying
// the tag anywhere else is neither labor nor parts
func Classify(name, tag string) (Kind, string) {
	switch {
	case name == "":
		return KindUnknown, ""
	case tag != "" && strings.HasPrefix(name, tag):
		return KindLabor, strings.TrimSpace(strings.TrimPrefix(name, tag))
	case tag != "" && strings.Contains(name, tag):
		return KindUnknown, ""
	case strings.Contains(name, ServiceFeeMarker):
		return KindServiceFee, ""
	default:
		return KindParts, ""
	}
}

// Parse classifies it against tag. A missing name, or a labor line without a
// quantity, is malformed
func (it Item) Parse(tag string) (Record, error) {
	if it.Name == nil {
		return Record{}, perr.JSONErrf("job item has no Item name")
	}
	kind, tech := Classify(*it.Name, tag)
	r := Record{Kind: kind, Technician: tech}
	if it.Qty != nil {
		r.Qty = *it.Qty
	} else if kind == KindLabor {
		return r, perr.JSONErrf("labor item %q has no Qty", *it.Name)
	}
	if it.Amount != nil {
		r.Amount, r.HasAmount = *it.Amount, true
	}
	return r, nil
}

// Roster is the set of known technician full names; only roster members receive attribution
type Roster map[string]struct{}

// NewRoster builds a roster, ignoring blank names
func NewRoster(names ...string) Roster {
	r := make(Roster, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			r[n] = struct{}{}
		}
	}
	return r
}

// Has reports roster membership
func (r Roster) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Names returns the roster sorted
func (r Roster) Names() []string {
	out := make([]string, 0, len(r))
	for n := range r {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Metrics maps technician name to hours or allocated currency
type Metrics map[string]float64

// Zero returns a mapping with every roster technician at zero
func (r Roster) Zero() Metrics {
	m := make(Metrics, len(r))
	for n := range r {
		m[n] = 0
	}
	return m
}

// Technicians returns the metric keys sorted
func (m Metrics) Technicians() []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Values returns the values in Technicians order
func (m Metrics) Values() []float64 {
	names := m.Technicians()
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = m[n]
	}
	return out
}
