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
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2024-02-29", want: New(2024, time.February, 29)},
		{in: "not a date", wantErr: true},
		{in: "2025/07/01", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNew_Normalizes(t *testing.T) {
	got := New(2025, time.January, 32)
	if want := MustParse("2025-02-01"); got != want {
		t.Errorf("New(2025, 1, 32) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	a, b := MustParse("2025-01-10"), MustParse("2025-02-01")
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is not consistent for %v and %v", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After are not consistent for %v and %v", a, b)
	}
	if !(Date{}).Before(a) {
		t.Errorf("zero Date should sort first")
	}
}

func TestDate_JSON(t *testing.T) {
	type holder struct {
		On Date `json:"on"`
	}
	data, err := json.Marshal(holder{On: MustParse("2025-03-04")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"on":"2025-03-04"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var h holder
	if err := json.Unmarshal([]byte(`{"on":""}`), &h); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !h.On.IsZero() {
		t.Errorf("empty string should decode to the zero Date, got %v", h.On)
	}
	if err := json.Unmarshal([]byte(`{"on":"2025-13-01"}`), &h); err == nil {
		t.Errorf("Unmarshal() of an invalid month should fail")
	}
}

func TestStartEndOf(t *testing.T) {
	d := MustParse("2025-05-14") // a Wednesday
	testCases := []struct {
		period     Period
		start, end string
	}{
		{Daily, "2025-05-14", "2025-05-14"},
		{Weekly, "2025-05-12", "2025-05-18"},
		{Monthly, "2025-05-01", "2025-05-31"},
		{Quarterly, "2025-04-01", "2025-06-30"},
		{Yearly, "2025-01-01", "2025-12-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != MustParse(tc.start) {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.start)
			}
			if got := d.EndOf(tc.period); got != MustParse(tc.end) {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.end)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	testCases := []struct {
		in       string
		from, to string
		id       string
		wantErr  bool
	}{
		{in: "2025", from: "2025-01-01", to: "2025-12-31", id: "2025"},
		{in: "2025-02", from: "2025-02-01", to: "2025-02-28", id: "2025-02"},
		{in: "2025-Q2", from: "2025-04-01", to: "2025-06-30", id: "2025-Q2"},
		{in: "2025-02-03", from: "2025-02-03", to: "2025-02-03", id: "2025-02-03"},
		{in: "2025-01-05..2025-01-20", from: "2025-01-05", to: "2025-01-20", id: "2025-01-05_2025-01-20"},
		{in: "2025-01-20..2025-01-05", wantErr: true},
		{in: "2025-13", wantErr: true},
		{in: "yesterday", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := ParseRange(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseRange(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if r.From != MustParse(tc.from) || r.To != MustParse(tc.to) {
				t.Errorf("ParseRange(%q) = %v..%v, want %s..%s", tc.in, r.From, r.To, tc.from, tc.to)
			}
			if got := r.Identifier(); got != tc.id {
				t.Errorf("Identifier() = %q, want %q", got, tc.id)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(MustParse("2025-03-10"), Monthly)
	for _, in := range []string{"2025-03-01", "2025-03-31"} {
		if !r.Contains(MustParse(in)) {
			t.Errorf("%v should contain %s", r, in)
		}
	}
	for _, out := range []string{"2025-02-28", "2025-04-01"} {
		if r.Contains(MustParse(out)) {
			t.Errorf("%v should not contain %s", r, out)
		}
	}
}

func TestRange_WeeklyIdentifier(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2025-03-12", "2025-W11"},
		// the week of 2024-12-30 is the first week of 2025.
		{"2025-01-01", "2025-W01"},
		{"2024-12-31", "2025-W01"},
		// 2027-01-01 still belongs to the last week of 2026.
		{"2027-01-01", "2026-W53"},
	}
	for _, tt := range tests {
		r := NewRange(MustParse(tt.day), Weekly)
		if got := r.Identifier(); got != tt.want {
			t.Errorf("NewRange(%s, Weekly).Identifier() = %q, want %q", tt.day, got, tt.want)
		}
	}
}
