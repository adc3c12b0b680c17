package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_normalizes(t *testing.T) {
	// Day 32 of January must roll over to February 1st.
	d := New(2025, time.January, 32)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("New(2025, January, 32) = %s, want %s", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-01-10", want: "2025-01-10"},
		{in: "2025-1-2", want: "2025-01-02"},
		{in: "10-01-2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.March, 9)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", b, err)
	}
	if got != d {
		t.Errorf("round trip got %s, want %s", got, d)
	}
}

func TestAdd(t *testing.T) {
	d := MustParse("2025-02-28")
	if got, want := d.Add(1).String(), "2025-03-01"; got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
	if got, want := d.Add(-28).String(), "2025-01-31"; got != want {
		t.Errorf("Add(-28) = %s, want %s", got, want)
	}
}
