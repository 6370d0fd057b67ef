package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " info ")
	log := New().Prefix("LOG_")

	if got := log.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get(LEVEL) = %q, want info", got)
	}
	if got := log.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get(FORMAT) default = %q, want console", got)
	}
}

func TestGetBool(t *testing.T) {
	log := New().Prefix("LOG_")
	cases := []struct {
		env  string
		def  bool
		want bool
	}{
		{env: "true", want: true},
		{env: "1", want: true},
		{env: " YES ", want: true},
		{env: "no", def: true, want: false},
		{env: "", def: true, want: true},
	}
	for _, tc := range cases {
		t.Setenv("LOG_CALLER", tc.env)
		if got := log.GetBool("CALLER", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.env, tc.def, got, tc.want)
		}
	}
}
