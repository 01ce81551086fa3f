package goldprice

import (
	"math"
	"time"

	"khazina/internal/models"
)

// Currency and unit conversion constants.
const (
	// USDToQAR is the pegged exchange rate.
	USDToQAR = 3.64
	// GramsPerTroyOunce converts ounce quotes to per-gram prices.
	GramsPerTroyOunce = 31.1035
)

// round2 rounds a monetary value to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Derive computes the per-karat QAR gram prices from a USD/oz spot quote.
// previous maps karat to the previously stored price; change fields are zero
// for karats with no prior price. Pure function, no I/O.
func Derive(usdPerOz float64, previous map[int]float64, now time.Time) []models.GoldPrice {
	qarPerGram24K := usdPerOz * USDToQAR / GramsPerTroyOunce

	prices := make([]models.GoldPrice, 0, len(models.SupportedKarats))
	for _, karat := range models.SupportedKarats {
		newPrice := round2(qarPerGram24K * float64(karat) / 24)

		var changeAmount, changePercent float64
		if prev, ok := previous[karat]; ok {
			changeAmount = round2(newPrice - prev)
			if prev != 0 {
				changePercent = round2((newPrice - prev) / prev * 100)
			}
		}

		prices = append(prices, models.GoldPrice{
			Karat:           karat,
			PricePerGramQAR: newPrice,
			ChangeAmount:    changeAmount,
			ChangePercent:   changePercent,
			SourceUSDPerOz:  usdPerOz,
			UpdatedAt:       now,
		})
	}
	return prices
}
