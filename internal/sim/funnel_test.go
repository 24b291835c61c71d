package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateMarketingDayInvariants(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(22)

	dates := []time.Time{
		day(2024, time.February, 6),   // baseline
		day(2024, time.June, 15),      // mid-year sale + pulse
		day(2024, time.November, 29),  // Black Friday
		day(2024, time.December, 28),  // clearance
	}

	for _, d := range dates {
		demand, discount := Season(d)
		records := SimulateMarketingDay(cfg, rng, d, demand, discount)
		require.Len(t, records, len(cfg.Channels))

		for i, rec := range records {
			assert.Equal(t, cfg.Channels[i].Name, rec.Channel, "records must follow channel config order")
			assert.Equal(t, d, rec.Date)

			assert.GreaterOrEqual(t, rec.CTR, ctrFloor)
			assert.LessOrEqual(t, rec.CTR, ctrCeil)
			assert.Equal(t, int(float64(rec.Impressions)*rec.CTR), rec.Clicks,
				"clicks must be floor(impressions * ctr)")
			assert.LessOrEqual(t, rec.Clicks, rec.Impressions)
			assert.GreaterOrEqual(t, rec.SpendAmount, 0.0)
		}
	}
}

func TestOrganicChannelsGetImpressionsWithoutSpend(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(1)

	// Lowest-demand day of the year: no lift, no discount. Organic
	// impressions must still come from the fallback range.
	d := day(2024, time.February, 6)
	demand, discount := Season(d)
	require.Equal(t, 1.0, demand)

	records := SimulateMarketingDay(cfg, rng, d, demand, discount)
	for _, rec := range records {
		switch rec.Channel {
		case "email", "seo":
			assert.Zero(t, rec.SpendAmount, "%s is an organic channel", rec.Channel)
			assert.Positive(t, rec.Impressions, "%s must draw impressions without spend", rec.Channel)
		default:
			assert.Positive(t, rec.SpendAmount, "%s is a paid channel", rec.Channel)
		}
	}
}

func TestPickCampaign(t *testing.T) {
	cfg := DefaultConfig()
	google := cfg.Channels[0]
	seo := cfg.Channels[3]
	require.Equal(t, "google_ads", google.Name)
	require.Equal(t, "seo", seo.Name)

	tests := []struct {
		name     string
		channel  ChannelParams
		date     time.Time
		discount float64
		want     string
	}{
		{"black friday", google, day(2024, time.November, 29), 0.35, "black_friday"},
		{"cyber monday", google, day(2024, time.December, 2), 0.35, "black_friday"},
		{"clearance prefers black friday in december", google, day(2024, time.December, 28), 0.25, "black_friday"},
		{"mid-year discount below threshold falls back", google, day(2024, time.June, 15), 0.20, "always_on_search"},
		{"no discount falls back", google, day(2024, time.March, 5), 0.0, "always_on_search"},
		{"seo never runs promos", seo, day(2024, time.November, 29), 0.35, "organic_brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickCampaign(tt.channel, tt.date, tt.discount))
		})
	}
}

func TestPromoCTRBoostOnlyForPromoSensitiveChannels(t *testing.T) {
	cfg := DefaultConfig()

	// On a deep-discount day, promo-sensitive channels may exceed their
	// base CTR ceiling; SEO and influencer never do.
	d := day(2024, time.November, 29)
	demand, discount := Season(d)
	require.GreaterOrEqual(t, discount, promoCTRMinDisc)

	rng := NewRand(4)
	for i := 0; i < 200; i++ {
		records := SimulateMarketingDay(cfg, rng, d, demand, discount)
		for j, rec := range records {
			ch := cfg.Channels[j]
			if !ch.PromoSensitive {
				assert.LessOrEqual(t, rec.CTR, round4(ch.CTRMax),
					"%s must not get the promo CTR boost", ch.Name)
			} else {
				assert.LessOrEqual(t, rec.CTR, round4(ch.CTRMax*promoCTRBoost))
			}
		}
	}
}
