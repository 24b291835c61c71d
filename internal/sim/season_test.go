package sim

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlackFriday2024(t *testing.T) {
	want := day(2024, time.November, 29)

	for d := day(2024, time.January, 1); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		got := IsBlackFriday(d)
		if d.Equal(want) && !got {
			t.Errorf("expected %s to be Black Friday", d.Format("2006-01-02"))
		}
		if !d.Equal(want) && got {
			t.Errorf("did not expect %s to be Black Friday", d.Format("2006-01-02"))
		}
	}
}

func TestBlackFriday2025(t *testing.T) {
	// Fourth Thursday of November 2025 is the 27th.
	if !IsBlackFriday(day(2025, time.November, 28)) {
		t.Error("expected 2025-11-28 to be Black Friday")
	}
	if IsBlackFriday(day(2025, time.November, 29)) {
		t.Error("did not expect 2025-11-29 to be Black Friday")
	}
}

func TestSeasonBaselineDay(t *testing.T) {
	demand, discount := Season(day(2024, time.February, 6))
	if demand != 1.0 {
		t.Errorf("baseline demand = %v, want 1.0", demand)
	}
	if discount != 0.0 {
		t.Errorf("baseline discount = %v, want 0.0", discount)
	}
}

func TestSeasonMidYearPulseCompounds(t *testing.T) {
	// June 15 stacks the summer lift, the mid-year sale and the
	// newsletter pulse multiplicatively.
	demand, discount := Season(day(2024, time.June, 15))

	want := 1.15 * 1.35 * 1.05
	if math.Abs(demand-want) > 1e-9 {
		t.Errorf("demand = %v, want %v", demand, want)
	}
	if math.Abs(discount-0.20) > 1e-9 {
		t.Errorf("discount = %v, want 0.20", discount)
	}
}

func TestSeasonBlackFriday(t *testing.T) {
	demand, discount := Season(day(2024, time.November, 29))

	want := 1.25 * 1.8
	if math.Abs(demand-want) > 1e-9 {
		t.Errorf("demand = %v, want %v", demand, want)
	}
	if math.Abs(discount-0.35) > 1e-9 {
		t.Errorf("discount = %v, want 0.35", discount)
	}
}

func TestSeasonCyberMonday(t *testing.T) {
	// 2024-12-02 is the first Monday of December.
	demand, discount := Season(day(2024, time.December, 2))

	want := 1.25 * 1.8
	if math.Abs(demand-want) > 1e-9 {
		t.Errorf("demand = %v, want %v", demand, want)
	}
	if math.Abs(discount-0.35) > 1e-9 {
		t.Errorf("discount = %v, want 0.35", discount)
	}
}

func TestSeasonLaborDay(t *testing.T) {
	// First Monday of September 2024 is the 2nd; the window reaches back
	// three days but never into August.
	_, discount := Season(day(2024, time.September, 2))
	if math.Abs(discount-0.15) > 1e-9 {
		t.Errorf("Labor Day discount = %v, want 0.15", discount)
	}

	_, discount = Season(day(2024, time.September, 5))
	if discount != 0.0 {
		t.Errorf("post-window discount = %v, want 0.0", discount)
	}
	_, discount = Season(day(2024, time.August, 31))
	if discount != 0.0 {
		t.Errorf("August discount = %v, want 0.0", discount)
	}
}

func TestSeasonHolidayClearance(t *testing.T) {
	demand, discount := Season(day(2024, time.December, 28))

	want := 1.25 * 1.30
	if math.Abs(demand-want) > 1e-9 {
		t.Errorf("demand = %v, want %v", demand, want)
	}
	if math.Abs(discount-0.25) > 1e-9 {
		t.Errorf("discount = %v, want 0.25", discount)
	}
}

func TestSeasonDiscountAlwaysInBounds(t *testing.T) {
	for d := day(2024, time.January, 1); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		demand, discount := Season(d)
		if discount < 0 || discount > 0.60 {
			t.Errorf("%s: discount %v out of [0, 0.60]", d.Format("2006-01-02"), discount)
		}
		if demand < 1.0 {
			t.Errorf("%s: demand %v below baseline", d.Format("2006-01-02"), demand)
		}
	}
}
