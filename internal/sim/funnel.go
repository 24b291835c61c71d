package sim

import (
	"time"

	"github.com/jogardn/shopsim/pkg/models"
)

const (
	// Spend scales gently with demand; organic impressions scale harder
	// since they carry the whole seasonal signal for zero-spend channels.
	spendDemandBase    = 0.8
	spendDemandSlope   = 0.4
	organicDemandBase  = 0.6
	organicDemandSlope = 0.8

	promoCTRBoost   = 1.15
	promoCTRMinDisc = 0.15
	ctrFloor        = 0.001
	ctrCeil         = 0.60
	campaignMinDisc = 0.25
)

// SimulateMarketingDay produces one MarketingSpend record per channel for a
// single date, in config channel order. demand and discount come from
// Season(date).
func SimulateMarketingDay(cfg *Config, rng *Rand, date time.Time, demand, discount float64) []models.MarketingSpend {
	records := make([]models.MarketingSpend, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		var spend float64
		if ch.SpendMax > 0 {
			spend = rng.Uniform(ch.SpendMin, ch.SpendMax) * (spendDemandBase + spendDemandSlope*demand)
		}

		// Organic channels generate impressions without spend; paid
		// channels buy them at a per-dollar rate.
		var impressions int
		if spend == 0 {
			impressions = int(rng.Uniform(ch.ImpMin, ch.ImpMax) * (organicDemandBase + organicDemandSlope*demand))
		} else {
			impressions = int(spend * rng.Uniform(ch.ImpMin, ch.ImpMax))
		}

		ctr := rng.Uniform(ch.CTRMin, ch.CTRMax)
		if ch.PromoSensitive && discount >= promoCTRMinDisc {
			ctr *= promoCTRBoost
		}
		// Round to reported precision before deriving clicks, so the
		// emitted record satisfies clicks == floor(impressions * ctr)
		// exactly.
		ctr = round4(clamp(ctr, ctrFloor, ctrCeil))
		clicks := int(float64(impressions) * ctr)

		records = append(records, models.MarketingSpend{
			Date:        date,
			Channel:     ch.Name,
			Campaign:    pickCampaign(ch, date, discount),
			SpendAmount: round2(spend),
			Impressions: impressions,
			Clicks:      clicks,
			CTR:         ctr,
		})
	}
	return records
}

// pickCampaign applies the campaign selection policy: deep-discount days
// prefer the matching promo campaign when the channel runs it, everything
// else falls through to the channel's always-on default.
func pickCampaign(ch ChannelParams, d time.Time, discount float64) string {
	if discount >= campaignMinDisc {
		month := d.Month()
		switch {
		case hasCampaign(ch, "black_friday") && (isHolidaySeason(d) || IsBlackFriday(d)):
			return "black_friday"
		case month == time.December && hasCampaign(ch, "holiday_push"):
			return "holiday_push"
		case month == time.June && hasCampaign(ch, "mid_year_sale"):
			return "mid_year_sale"
		case (month == time.June || month == time.July || month == time.August) && hasCampaign(ch, "summer_sale"):
			return "summer_sale"
		}
	}
	return ch.Campaigns[0]
}

func hasCampaign(ch ChannelParams, name string) bool {
	for _, c := range ch.Campaigns {
		if c == name {
			return true
		}
	}
	return false
}
