package odata

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
)

func TestCustomerFilter(t *testing.T) {
	cases := []struct {
		name      string
		customers []string
		exclude   bool
		want      string
	}{
		{name: "empty", want: ""},
		{name: "blank only", customers: []string{"", "  "}, want: ""},
		{
			name:      "single include",
			customers: []string{"Accurate Rental"},
			want:      "(EntityCompanyName eq 'Accurate Rental' or ContactsName eq 'Accurate Rental')",
		},
		{
			name:      "two include",
			customers: []string{"A", "B"},
			want:      "(EntityCompanyName eq 'A' or ContactsName eq 'A') or (EntityCompanyName eq 'B' or ContactsName eq 'B')",
		},
		{
			name:      "exclude",
			customers: []string{"A", "B"},
			exclude:   true,
			want:      "(EntityCompanyName ne 'A' and ContactsName ne 'A') and (EntityCompanyName ne 'B' and ContactsName ne 'B')",
		},
		{
			name:      "quote escaping",
			customers: []string{"Bob's Garage"},
			want:      "(EntityCompanyName eq 'Bob''s Garage' or ContactsName eq 'Bob''s Garage')",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CustomerFilter(tc.customers, tc.exclude); got != tc.want {
				t.Fatalf("CustomerFilter =\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	want := "ActualCompletedDate ge '2024-01-01T00:00:00' and ActualCompletedDate lt '2024-02-01T00:00:00'"
	if got := DateRange("2024-01-01", "2024-02-01"); got != want {
		t.Fatalf("DateRange = %q", got)
	}
}

var idRE = regexp.MustCompile(`^ActivityNo eq '(.*)'$`)

func TestChunkIDsRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100, 101} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("WO-%03d", n-i)
			}
			chunks := ChunkIDs(FieldOrderNo, ids, DefaultChunkSize)
			if want := (n + 9) / 10; len(chunks) != want {
				t.Fatalf("chunks = %d, want %d", len(chunks), want)
			}
			var back []string
			for _, c := range chunks {
				for _, pred := range strings.Split(c, " or ") {
					m := idRE.FindStringSubmatch(pred)
					if m == nil {
						t.Fatalf("unexpected predicate %q", pred)
					}
					back = append(back, m[1])
				}
			}
			if strings.Join(back, ",") != strings.Join(ids, ",") {
				t.Fatalf("round trip mismatch:\n%v\n%v", back, ids)
			}
		})
	}
}

func TestChunkIDsSizeFallback(t *testing.T) {
	ids := []string{"1", "2", "3"}
	if got := ChunkIDs(FieldOrderNo, ids, 0); len(got) != 1 {
		t.Fatalf("size 0 should fall back to default, got %d chunks", len(got))
	}
	if got := ChunkIDs(FieldOrderNo, ids, 2); len(got) != 2 || got[1] != "ActivityNo eq '3'" {
		t.Fatalf("size 2 chunks = %#v", got)
	}
}

func TestAnd(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{in: []string{"", "  "}, want: ""},
		{in: []string{"a eq '1'"}, want: "a eq '1'"},
		{in: []string{"a eq '1'", "", "b eq '2'"}, want: "a eq '1' and b eq '2'"},
		{in: []string{"x", "a eq '1' or b eq '2'"}, want: "x and (a eq '1' or b eq '2')"},
		{in: []string{"x", "(a eq '1' or b eq '2')"}, want: "x and (a eq '1' or b eq '2')"},
		{in: []string{"x", "a eq ' or '"}, want: "x and a eq ' or '"},
	}
	for _, tc := range cases {
		if got := And(tc.in...); got != tc.want {
			t.Fatalf("And(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	if got := Contains(FieldItem, "labor:"); got != "contains(Item,'labor:')" {
		t.Fatalf("Contains = %q", got)
	}
}
