package account

// Static conversion table. Pairs absent from the table convert 1:1 so a
// transfer between exotic currencies degrades to a plain amount copy
// instead of failing.
var conversionRates = map[string]float64{
	"EUR_USD": 1.10,
	"USD_EUR": 0.91,
	"EUR_CHF": 0.95,
	"CHF_EUR": 1.05,
	"USD_CHF": 0.86,
	"CHF_USD": 1.16,
	"BTC_USD": 45000.0,
	"USD_BTC": 1.0 / 45000.0,
	"BTC_EUR": 41000.0,
	"EUR_BTC": 1.0 / 41000.0,
}

// ConvertAmount converts between currencies using the static table.
func ConvertAmount(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	rate, ok := conversionRates[from+"_"+to]
	if !ok {
		return amount
	}
	return amount * rate
}

// Reference rates quoted against EUR, used to rebase the public table.
var eurRates = map[string]float64{
	"EUR": 1.0,
	"USD": 1.10,
	"CHF": 0.95,
	"GBP": 0.86,
	"BTC": 0.000024,
	"ETH": 0.00044,
}

// Rates returns the quote table rebased on the given currency. An unknown
// base yields the EUR table unchanged.
func Rates(base string) map[string]float64 {
	baseRate, ok := eurRates[base]
	if !ok || baseRate == 0 {
		baseRate = 1.0
	}
	out := make(map[string]float64, len(eurRates))
	for code, rate := range eurRates {
		out[code] = rate / baseRate
	}
	return out
}
