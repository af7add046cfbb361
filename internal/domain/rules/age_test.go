package rules

import (
	"testing"
	"time"
)

func TestAgeYearsBoundaries(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "day_before_18th_birthday", dob: time.Date(2008, time.June, 16, 0, 0, 0, 0, time.UTC), want: 17},
		{name: "18th_birthday", dob: time.Date(2008, time.June, 15, 0, 0, 0, 0, time.UTC), want: 18},
		{name: "100th_birthday", dob: time.Date(1926, time.June, 15, 0, 0, 0, 0, time.UTC), want: 100},
		{name: "101_years", dob: time.Date(1925, time.June, 14, 0, 0, 0, 0, time.UTC), want: 101},
		{name: "later_month_same_year_count", dob: time.Date(2000, time.December, 1, 0, 0, 0, 0, time.UTC), want: 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AgeYears(tc.dob, now)
			if got != tc.want {
				t.Fatalf("unexpected age: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestLifeStage(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{age: 18, want: "Emerging Sophisticate"},
		{age: 24, want: "Emerging Sophisticate"},
		{age: 25, want: "Established Professional"},
		{age: 34, want: "Established Professional"},
		{age: 35, want: "Seasoned Connoisseur"},
		{age: 49, want: "Seasoned Connoisseur"},
		{age: 50, want: "Distinguished Elite"},
	}

	for _, tc := range cases {
		got := LifeStage(tc.age)
		if got != tc.want {
			t.Fatalf("age %d: unexpected life stage: got %q want %q", tc.age, got, tc.want)
		}
	}
}
