package sim

import (
	"fmt"
)

// CategoryParams holds the pricing parameters for one product category.
type CategoryParams struct {
	Name      string
	PriceMin  float64
	PriceMax  float64
	MarginMin float64
	MarginMax float64
}

// ChannelParams holds the funnel parameters for one marketing channel.
// Channels with SpendMax == 0 are organic: they spend nothing but still
// generate impressions from their ImpMin/ImpMax range directly. For paid
// channels the same range is impressions-per-dollar.
type ChannelParams struct {
	Name      string
	UTMSource string
	// Campaigns the channel can run. The first entry is the always-on
	// default used outside promo windows.
	Campaigns []string
	SpendMin  float64
	SpendMax  float64
	CTRMin    float64
	CTRMax    float64
	ImpMin    float64
	ImpMax    float64
	BaseCVR   float64
	// PromoSensitive channels (paid ads, owned email audience) get a CTR
	// boost when a meaningful discount is running. SEO and influencer
	// traffic does not react to discounts.
	PromoSensitive bool
}

// CategoryWeight is one entry of an ordered discrete distribution over
// categories. Kept as a slice rather than a map so the sampling order is
// fixed and runs stay reproducible.
type CategoryWeight struct {
	Name   string
	Weight float64
}

// Config is the full immutable parameter set for a simulation run. All
// tables are fixed at construction; Validate is the only place malformed
// parameters can surface.
type Config struct {
	ProductsPerCategory int
	ProductIDBase       int
	OrderIDBase         int
	OrderItemIDBase     int

	Categories []CategoryParams
	Channels   []ChannelParams

	// Direct traffic is synthetic: it has no marketing spend record but
	// converts like any channel.
	DirectCVR      float64
	DirectCampaign string

	PaymentMethods []string
	ShippingStates []string

	// Category preference weights by season: holiday gifting skews to
	// outerwear and shoes, summer to dresses and tops.
	HolidayWeights []CategoryWeight
	SummerWeights  []CategoryWeight
	DefaultWeights []CategoryWeight
}

// DefaultConfig returns the reference parameterization: 6 categories of 14
// products each, 5 marketing channels plus direct.
func DefaultConfig() *Config {
	return &Config{
		ProductsPerCategory: 14,
		ProductIDBase:       10001,
		OrderIDBase:         500000,
		OrderItemIDBase:     800000,

		Categories: []CategoryParams{
			{Name: "Tops", PriceMin: 20, PriceMax: 45, MarginMin: 0.45, MarginMax: 0.60},
			{Name: "Bottoms", PriceMin: 30, PriceMax: 70, MarginMin: 0.45, MarginMax: 0.60},
			{Name: "Dresses", PriceMin: 35, PriceMax: 120, MarginMin: 0.45, MarginMax: 0.60},
			{Name: "Outerwear", PriceMin: 60, PriceMax: 220, MarginMin: 0.45, MarginMax: 0.60},
			{Name: "Shoes", PriceMin: 40, PriceMax: 180, MarginMin: 0.45, MarginMax: 0.60},
			{Name: "Accessories", PriceMin: 8, PriceMax: 60, MarginMin: 0.45, MarginMax: 0.60},
		},

		Channels: []ChannelParams{
			{
				Name:      "google_ads",
				UTMSource: "google",
				Campaigns: []string{"always_on_search", "summer_sale", "black_friday", "mid_year_sale", "holiday_push"},
				SpendMin: 700, SpendMax: 1600,
				CTRMin: 0.02, CTRMax: 0.05,
				ImpMin: 70, ImpMax: 120,
				BaseCVR:        0.012,
				PromoSensitive: true,
			},
			{
				Name:      "facebook_ads",
				UTMSource: "facebook",
				Campaigns: []string{"always_on_social", "summer_sale", "black_friday", "mid_year_sale", "holiday_push"},
				SpendMin: 400, SpendMax: 1200,
				CTRMin: 0.006, CTRMax: 0.02,
				ImpMin: 100, ImpMax: 180,
				BaseCVR:        0.007,
				PromoSensitive: true,
			},
			{
				Name:      "email",
				UTMSource: "email",
				Campaigns: []string{"newsletter", "summer_sale", "black_friday", "mid_year_sale", "holiday_push"},
				SpendMin: 0, SpendMax: 0,
				CTRMin: 0.03, CTRMax: 0.09,
				ImpMin: 3000, ImpMax: 7000,
				BaseCVR:        0.020,
				PromoSensitive: true,
			},
			{
				Name:      "seo",
				UTMSource: "seo",
				Campaigns: []string{"organic_brand", "evergreen_content"},
				SpendMin: 0, SpendMax: 0,
				CTRMin: 0.12, CTRMax: 0.22,
				ImpMin: 1800, ImpMax: 4000,
				BaseCVR: 0.018,
			},
			{
				Name:      "influencer",
				UTMSource: "influencer",
				Campaigns: []string{"seasonal_collab", "evergreen_affiliate"},
				SpendMin: 180, SpendMax: 600,
				CTRMin: 0.01, CTRMax: 0.03,
				ImpMin: 450, ImpMax: 1000,
				BaseCVR: 0.006,
			},
		},

		DirectCVR:      0.018,
		DirectCampaign: "type_in_return",

		PaymentMethods: []string{"credit_card", "paypal", "apple_pay", "klarna"},
		ShippingStates: []string{
			"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA",
			"ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK",
			"OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY", "DC",
		},

		HolidayWeights: []CategoryWeight{
			{Name: "Outerwear", Weight: 1.6},
			{Name: "Dresses", Weight: 1.1},
			{Name: "Tops", Weight: 1.2},
			{Name: "Bottoms", Weight: 1.1},
			{Name: "Shoes", Weight: 1.3},
			{Name: "Accessories", Weight: 0.9},
		},
		SummerWeights: []CategoryWeight{
			{Name: "Outerwear", Weight: 0.6},
			{Name: "Dresses", Weight: 1.4},
			{Name: "Tops", Weight: 1.3},
			{Name: "Bottoms", Weight: 1.2},
			{Name: "Shoes", Weight: 1.1},
			{Name: "Accessories", Weight: 1.0},
		},
		DefaultWeights: []CategoryWeight{
			{Name: "Outerwear", Weight: 1.0},
			{Name: "Dresses", Weight: 1.1},
			{Name: "Tops", Weight: 1.2},
			{Name: "Bottoms", Weight: 1.1},
			{Name: "Shoes", Weight: 1.0},
			{Name: "Accessories", Weight: 1.0},
		},
	}
}

// Validate checks the parameter tables once, at construction time. A config
// that passes Validate cannot fail at runtime.
func (c *Config) Validate() error {
	if c.ProductsPerCategory <= 0 {
		return fmt.Errorf("products per category must be positive, got %d", c.ProductsPerCategory)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("no product categories configured")
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("no marketing channels configured")
	}
	if len(c.PaymentMethods) == 0 || len(c.ShippingStates) == 0 {
		return fmt.Errorf("payment methods and shipping states must be non-empty")
	}

	catNames := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if cat.PriceMin <= 0 || cat.PriceMax < cat.PriceMin {
			return fmt.Errorf("category %s: invalid price range [%v, %v]", cat.Name, cat.PriceMin, cat.PriceMax)
		}
		// Margins strictly inside (0, 1) keep cost_price below
		// current_price after rounding.
		if cat.MarginMin <= 0 || cat.MarginMax >= 1 || cat.MarginMax < cat.MarginMin {
			return fmt.Errorf("category %s: invalid margin range [%v, %v]", cat.Name, cat.MarginMin, cat.MarginMax)
		}
		catNames[cat.Name] = true
	}

	for _, ch := range c.Channels {
		if ch.Name == "" || ch.UTMSource == "" {
			return fmt.Errorf("channel with empty name or utm source")
		}
		if len(ch.Campaigns) == 0 {
			return fmt.Errorf("channel %s: no campaigns configured", ch.Name)
		}
		if ch.SpendMin < 0 || ch.SpendMax < ch.SpendMin {
			return fmt.Errorf("channel %s: invalid spend range [%v, %v]", ch.Name, ch.SpendMin, ch.SpendMax)
		}
		if ch.CTRMin <= 0 || ch.CTRMax < ch.CTRMin {
			return fmt.Errorf("channel %s: invalid ctr range [%v, %v]", ch.Name, ch.CTRMin, ch.CTRMax)
		}
		if ch.ImpMin <= 0 || ch.ImpMax < ch.ImpMin {
			return fmt.Errorf("channel %s: invalid impression range [%v, %v]", ch.Name, ch.ImpMin, ch.ImpMax)
		}
		if ch.BaseCVR <= 0 || ch.BaseCVR >= 1 {
			return fmt.Errorf("channel %s: base conversion rate %v out of (0, 1)", ch.Name, ch.BaseCVR)
		}
	}
	if c.DirectCVR <= 0 || c.DirectCVR >= 1 {
		return fmt.Errorf("direct conversion rate %v out of (0, 1)", c.DirectCVR)
	}
	if c.DirectCampaign == "" {
		return fmt.Errorf("direct campaign label must be non-empty")
	}

	for _, table := range [][]CategoryWeight{c.HolidayWeights, c.SummerWeights, c.DefaultWeights} {
		if err := validateWeights(table, catNames); err != nil {
			return err
		}
	}
	return nil
}

func validateWeights(weights []CategoryWeight, known map[string]bool) error {
	sum := 0.0
	for _, w := range weights {
		if !known[w.Name] {
			return fmt.Errorf("weight references unknown category %q", w.Name)
		}
		if w.Weight < 0 {
			return fmt.Errorf("category %s: negative weight %v", w.Name, w.Weight)
		}
		sum += w.Weight
	}
	if sum <= 0 {
		return fmt.Errorf("category weights sum to %v, must be positive", sum)
	}
	return nil
}
