package exchange

// fiatCurrencies is the set of fiat currencies a terminal may be configured
// with. Individual providers cover different subsets of these pairs; a
// provider that does not trade a pair fails the live fetch at configuration
// time, which is surfaced to the operator before the terminal is saved.
var fiatCurrencies = map[string]string{
	"AUD": "Australian Dollar",
	"BRL": "Brazilian Real",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CZK": "Czech Koruna",
	"DKK": "Danish Krone",
	"EUR": "Euro",
	"GBP": "Pound Sterling",
	"HKD": "Hong Kong Dollar",
	"HUF": "Hungarian Forint",
	"ILS": "Israeli New Shekel",
	"INR": "Indian Rupee",
	"JPY": "Japanese Yen",
	"MXN": "Mexican Peso",
	"NOK": "Norwegian Krone",
	"NZD": "New Zealand Dollar",
	"PLN": "Polish Zloty",
	"RON": "Romanian Leu",
	"SEK": "Swedish Krona",
	"SGD": "Singapore Dollar",
	"THB": "Thai Baht",
	"TRY": "Turkish Lira",
	"USD": "United States Dollar",
	"ZAR": "South African Rand",
}
