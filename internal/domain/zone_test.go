package domain

import "testing"

func TestParseZone(t *testing.T) {
	cases := []struct {
		input   string
		want    Zone
		wantErr bool
	}{
		{"close", ZoneClose, false},
		{"near", ZoneNear, false},
		{"far", ZoneFar, false},
		{"distant", ZoneDistant, false},
		{"Close", "", true},
		{"NEAR", "", true},
		{" near", "", true},
		{"adjacent", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseZone(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseZone(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseZone(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseZone(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestZoneValid(t *testing.T) {
	for _, z := range []Zone{ZoneClose, ZoneNear, ZoneFar, ZoneDistant} {
		if !z.Valid() {
			t.Errorf("expected %q to be valid", z)
		}
	}
	if Zone("medium").Valid() {
		t.Errorf("expected medium to be invalid")
	}
}

func TestDefaultZone(t *testing.T) {
	if DefaultZone != ZoneNear {
		t.Fatalf("expected default zone near, got %s", DefaultZone)
	}
}
