package sim

import (
	"time"
)

// Seasonal demand multipliers and promo discount contributions. Demand
// factors compound multiplicatively across overlapping windows; discounts
// accumulate additively and are clamped to maxDiscount.
const (
	springLift     = 1.10
	summerLift     = 1.15
	backToSchool   = 1.12
	holidayLift    = 1.25
	newsletterLift = 1.05

	midYearLift     = 1.35
	midYearDiscount = 0.20

	laborDayLift     = 1.25
	laborDayDiscount = 0.15

	blackFridayLift     = 1.8
	blackFridayDiscount = 0.35

	giftingLift     = 1.35
	giftingDiscount = 0.10

	clearanceLift     = 1.30
	clearanceDiscount = 0.25

	maxDiscount = 0.60
)

// IsBlackFriday reports whether d is the Friday after the fourth Thursday
// of November of d's year.
func IsBlackFriday(d time.Time) bool {
	if d.Month() != time.November {
		return false
	}
	first := time.Date(d.Year(), time.November, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	fourthThursday := first.AddDate(0, 0, offset+21)
	blackFriday := fourthThursday.AddDate(0, 0, 1)
	return d.Day() == blackFriday.Day()
}

// isCyberMondayWindow covers any Monday in the first seven days of
// December. Together with Black Friday itself this forms the BF/CM promo
// window.
func isCyberMondayWindow(d time.Time) bool {
	return d.Month() == time.December && d.Weekday() == time.Monday && d.Day() <= 7
}

// Season maps a calendar date to its demand factor and promotional
// discount rate. Pure and deterministic: no randomness, no state.
func Season(d time.Time) (demand, discount float64) {
	demand = 1.0
	discount = 0.0

	month := d.Month()
	day := d.Day()

	// Broad seasonal lifts.
	if month == time.March || month == time.April {
		demand *= springLift
	}
	if month == time.June || month == time.July {
		demand *= summerLift
	}
	if month == time.August {
		demand *= backToSchool
	}
	if month == time.November || month == time.December {
		demand *= holidayLift
	}

	// Mid-year sale, June 10-30.
	if month == time.June && day >= 10 && day <= 30 {
		discount += midYearDiscount
		demand *= midYearLift
	}

	// Labor Day: the three days before through the first Monday of
	// September.
	if month == time.September {
		first := time.Date(d.Year(), time.September, 1, 0, 0, 0, 0, time.UTC)
		firstMonday := first.AddDate(0, 0, (int(time.Monday)-int(first.Weekday())+7)%7)
		if day >= firstMonday.Day()-3 && day <= firstMonday.Day() {
			discount += laborDayDiscount
			demand *= laborDayLift
		}
	}

	// Black Friday through Cyber Monday.
	if IsBlackFriday(d) || isCyberMondayWindow(d) {
		discount += blackFridayDiscount
		demand *= blackFridayLift
	}

	// Holiday gifting, December 10-24.
	if month == time.December && day >= 10 && day <= 24 {
		discount += giftingDiscount
		demand *= giftingLift
	}

	// Post-holiday clearance, December 26-31.
	if month == time.December && day >= 26 {
		discount += clearanceDiscount
		demand *= clearanceLift
	}

	// Newsletter pulses on the 1st and 15th.
	if day == 1 || day == 15 {
		demand *= newsletterLift
	}

	return demand, clamp(discount, 0.0, maxDiscount)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isHolidaySeason(d time.Time) bool {
	return d.Month() == time.November || d.Month() == time.December
}

func isSummer(d time.Time) bool {
	return d.Month() == time.June || d.Month() == time.July
}
