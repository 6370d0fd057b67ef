// Package domain holds the report types, specs and ports of the reports service
package domain

import (
	"sort"
	"strings"
	"sync"
	"time"

	"laborreport/internal/core/labor"
	perr "laborreport/internal/platform/errors"
	"laborreport/internal/platform/validate"
)

// DateLayout is the layout of report start and end dates
const DateLayout = "2006-01-02"

// ReportType is one of the fixed report kinds
type ReportType string

// Report types
const (
	LostTime           ReportType = "lost-time"
	Rental             ReportType = "rental"
	ServiceWarranty    ReportType = "service-warranty"
	VehicleMaintenance ReportType = "vehicle-maintenance"
	AllInternals       ReportType = "all-internals"
	ServiceCalls       ReportType = "service-calls"
	PartsPerLaborHour  ReportType = "pplh"
)

// TypeParams is what a report type resolves to
type TypeParams struct {
	Label        string   `json:"label"`
	Customers    []string `json:"customers,omitempty"`
	ItemTag      string   `json:"item_tag"`
	Exclude      bool     `json:"exclude,omitempty"`
	Proportional bool     `json:"proportional,omitempty"`
}

var internalCustomers = []string{
	"Accurate - Lost Time",
	"Accurate Rental",
	"Accurate Service Warranty",
	"Accurate Vehicle Maintenance",
}

var typeOrder = []ReportType{
	LostTime, Rental, ServiceWarranty, VehicleMaintenance, AllInternals, ServiceCalls, PartsPerLaborHour,
}

var typeParams = map[ReportType]TypeParams{
	LostTime:           {Label: "Lost Time", Customers: internalCustomers[0:1], ItemTag: labor.LaborTag},
	Rental:             {Label: "Rental", Customers: internalCustomers[1:2], ItemTag: labor.LaborTag},
	ServiceWarranty:    {Label: "Service Warranty", Customers: internalCustomers[2:3], ItemTag: labor.LaborTag},
	VehicleMaintenance: {Label: "Vehicle Maintenance", Customers: internalCustomers[3:4], ItemTag: labor.LaborTag},
	// every work order except the internal accounts above
	AllInternals:      {Label: "All Internals", Customers: internalCustomers, ItemTag: labor.LaborTag, Exclude: true},
	ServiceCalls:      {Label: "Service Calls", ItemTag: "Service call:"},
	PartsPerLaborHour: {Label: "Parts per labor hour", ItemTag: labor.LaborTag, Proportional: true},
}

// Types lists every report type in menu order
func Types() []ReportType { return append([]ReportType(nil), typeOrder...) }

// Params resolves t. The returned customer slice is a copy
func (t ReportType) Params() (TypeParams, bool) {
	p, ok := typeParams[t]
	if ok {
		p.Customers = append([]string(nil), p.Customers...)
	}
	return p, ok
}

// Label is the display name used inside report names; unknown types return their key
func (t ReportType) Label() string {
	if p, ok := typeParams[t]; ok {
		return p.Label
	}
	return string(t)
}

// Valid reports whether t is a known type
func (t ReportType) Valid() bool {
	_, ok := typeParams[t]
	return ok
}

// ParseType accepts a type key or its label, case-insensitively
func ParseType(s string) (ReportType, error) {
	s = strings.TrimSpace(s)
	for _, t := range typeOrder {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, typeParams[t].Label) {
			return t, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown report type %q", s), "type")
}

// TypeByLabel finds the type whose label is label
func TypeByLabel(label string) (ReportType, bool) {
	for _, t := range typeOrder {
		if typeParams[t].Label == label {
			return t, true
		}
	}
	return "", false
}

// Spec identifies one report computation
type Spec struct {
	Start string     `json:"start" validate:"required,datetime=2006-01-02"`
	End   string     `json:"end" validate:"required,datetime=2006-01-02"`
	Type  ReportType `json:"type" validate:"required,reporttype"`
}

var registerOnce sync.Once

func registerTags() {
	registerOnce.Do(func() {
		_ = validate.RegisterValidation("reporttype", "must be a known report type", func(fl validate.FieldLevel) bool {
			return ReportType(fl.Field().String()).Valid()
		})
	})
}

// Validate checks date formats, the type and that End is after Start
func (s Spec) Validate() error {
	registerTags()
	if err := validate.Struct(s); err != nil {
		return err
	}
	start, _ := time.Parse(DateLayout, s.Start)
	end, _ := time.Parse(DateLayout, s.End)
	if !end.After(start) {
		return perr.WithField(perr.Validationf("end must be after start"), "end")
	}
	return nil
}

// Name is the key the report is stored under
func (s Spec) Name() string { return ReportName(s.Start, s.End, s.Type.Label()) }

// ReportName builds "{start}:{end}::{label}"
func ReportName(start, end, label string) string {
	return start + ":" + end + "::" + label
}

// NameParts is a report name split into its parts
type NameParts struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"type"`
}

// ParseName splits a report name built by ReportName
func ParseName(name string) (NameParts, bool) {
	dates, label, ok := strings.Cut(name, "::")
	if !ok {
		return NameParts{}, false
	}
	start, end, ok := strings.Cut(dates, ":")
	if !ok {
		return NameParts{}, false
	}
	return NameParts{Start: start, End: end, Label: label}, true
}

// Metrics maps technician to hours or allocated currency
type Metrics = labor.Metrics

// Document is the whole report store
type Document map[string]Metrics

// Names returns the document keys sorted
func (d Document) Names() []string {
	out := make([]string, 0, len(d))
	for n := range d {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Result is the outcome of one report computation
type Result struct {
	RunID    string  `json:"run_id"`
	Name     string  `json:"name"`
	Spec     Spec    `json:"spec"`
	Metrics  Metrics `json:"metrics"`
	Orders   int     `json:"orders"`
	Items    int     `json:"items"`
	Failures int     `json:"failures"`
	Saved    bool    `json:"saved"`
}

// Summary describes one stored report for listings and the HTTP view
type Summary struct {
	Name string `json:"name"`
	NameParts
	Technicians int     `json:"technicians"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
}
