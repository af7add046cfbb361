package rules

import "time"

// AgeYears returns completed years between birthdate and now, both in UTC.
func AgeYears(birthdate time.Time, now time.Time) int {
	b := birthdate.UTC()
	n := now.UTC()

	years := n.Year() - b.Year()
	if n.Month() < b.Month() || (n.Month() == b.Month() && n.Day() < b.Day()) {
		years--
	}

	return years
}

// LifeStage buckets an age into the display labels the portfolio grid uses.
func LifeStage(age int) string {
	switch {
	case age < 25:
		return "Emerging Sophisticate"
	case age < 35:
		return "Established Professional"
	case age < 50:
		return "Seasoned Connoisseur"
	default:
		return "Distinguished Elite"
	}
}
