// Package odata builds OData style $filter fragments for the field-service tables
package odata

import "strings"

// DefaultChunkSize caps the number of disjuncts per request; longer filters
// run into upstream query-string length limits
const DefaultChunkSize = 10

// Field names used by the work order and job item tables
const (
	FieldCompleted = "ActualCompletedDate"
	FieldCompany   = "EntityCompanyName"
	FieldContact   = "ContactsName"
	FieldOrderNo   = "ActivityNo"
	FieldItem      = "Item"
)

// Quote renders s as an OData string literal, doubling embedded single quotes
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Eq renders field eq 'value'
func Eq(field, value string) string { return field + " eq " + Quote(value) }

// Ne renders field ne 'value'
func Ne(field, value string) string { return field + " ne " + Quote(value) }

// Contains renders contains(field,'needle')
func Contains(field, needle string) string {
	return "contains(" + field + "," + Quote(needle) + ")"
}

// DateRange selects records completed on or after start and before end (YYYY-MM-DD, midnight bounds)
func DateRange(start, end string) string {
	return FieldCompleted + " ge " + Quote(start+"T00:00:00") +
		" and " + FieldCompleted + " lt " + Quote(end+"T00:00:00")
}

// CustomerFilter matches work orders by company or contact name.
// Inclusion ORs one (company or contact) group per customer; exclusion ANDs
// the negated groups so only orders matching none of the customers survive.
// An empty or all-blank list yields "" (no constraint)
func CustomerFilter(customers []string, exclude bool) string {
	groups := make([]string, 0, len(customers))
	for _, c := range customers {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if exclude {
			groups = append(groups, "("+Ne(FieldCompany, c)+" and "+Ne(FieldContact, c)+")")
		} else {
			groups = append(groups, "("+Eq(FieldCompany, c)+" or "+Eq(FieldContact, c)+")")
		}
	}
	if exclude {
		return strings.Join(groups, " and ")
	}
	return strings.Join(groups, " or ")
}

// ChunkIDs maps each id to field eq 'id' and ORs them in groups of size.
// Order is preserved, nothing is dropped or duplicated and the result has
// ceil(len(ids)/size) entries. size <= 0 uses DefaultChunkSize
func ChunkIDs(field string, ids []string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	out := make([]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		j := min(i+size, len(ids))
		preds := make([]string, 0, j-i)
		for _, id := range ids[i:j] {
			preds = append(preds, Eq(field, id))
		}
		out = append(out, strings.Join(preds, " or "))
	}
	return out
}

// And joins the non-empty fragments with " and ". A fragment with a top-level
// "or" is parenthesised so the conjunction keeps its meaning
func And(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if hasTopLevelOr(f) {
			f = "(" + f + ")"
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " and ")
}

// hasTopLevelOr reports whether f contains " or " outside parentheses and string literals
func hasTopLevelOr(f string) bool {
	depth := 0
	inQuote := false
	for i := 0; i < len(f); i++ {
		switch c := f[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.HasPrefix(f[i:], " or "):
			return true
		}
	}
	return false
}
