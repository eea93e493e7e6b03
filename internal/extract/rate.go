package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// RateRange is the outcome of rate extraction. Nil bounds mean no number was
// found; an empty currency means no rate was found at all.
type RateRange struct {
	Min      *float64
	Max      *float64
	Currency types.Currency
}

// Found reports whether any rate signal was extracted.
func (r RateRange) Found() bool { return r.Min != nil || r.Max != nil }

var (
	rateRangeRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|–|—|to)\s*\$?(\d+(?:\.\d+)?)`)
	rateSingleRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	rateContextRe = regexp.MustCompile(`(?i)\b(rate|rates|hourly|hour|hr|charge|charges|charging|bill|budget)\b`)
	// A message that is nothing but numbers and range punctuation, such as
	// "75" or "40 to 60", is treated as a rate answer on its own.
	rateBareRe = regexp.MustCompile(`^[\s\d.,$€£/+–—-]+(?:to[\s\d.,$€£/]+)?$`)
)

// Rate extracts an hourly rate from the message. The currency symbol is read
// first ($, €, £); a numeric range pattern ("N - M", "N to M") is tried
// before falling back to a single number. When a number is present but no
// symbol, the currency defaults to USD.
func Rate(message string) RateRange {
	if TooThin(message) || IsSkipCue(message) {
		return RateRange{}
	}

	// Numbers in prose that carries no rate context are ignored so that
	// answers like "Engineer at Acme for 3 years" do not read as a rate.
	if !strings.ContainsAny(message, "$€£") &&
		!rateContextRe.MatchString(message) &&
		!rateBareRe.MatchString(strings.TrimSpace(message)) {
		return RateRange{}
	}

	var currency types.Currency
	switch {
	case strings.Contains(message, "$"):
		currency = types.CurrencyUSD
	case strings.Contains(message, "€"):
		currency = types.CurrencyEUR
	case strings.Contains(message, "£"):
		currency = types.CurrencyGBP
	}

	if m := rateRangeRe.FindStringSubmatch(message); m != nil {
		low := mustParseFloat(m[1])
		high := mustParseFloat(m[2])
		if currency == "" {
			currency = types.CurrencyUSD
		}
		return RateRange{Min: &low, Max: &high, Currency: currency}
	}

	if m := rateSingleRe.FindStringSubmatch(message); m != nil {
		single := mustParseFloat(m[1])
		if currency == "" {
			currency = types.CurrencyUSD
		}
		return RateRange{Min: &single, Currency: currency}
	}

	return RateRange{}
}

func mustParseFloat(s string) float64 {
	// The regexp only matches digits with an optional fraction, so this
	// cannot fail.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
