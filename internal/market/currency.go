// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package market

import "sort"

// Currency is one entry of the Steam ECurrencyCode table.
type Currency struct {
	Code string
	Name string
	ID   int
}

// currencies is the ECurrencyCode table as published by Steam. Gaps are
// retired codes.
var currencies = map[int]Currency{
	1:  {ID: 1, Code: "USD", Name: "United States Dollar"},
	2:  {ID: 2, Code: "GBP", Name: "United Kingdom Pound"},
	3:  {ID: 3, Code: "EUR", Name: "European Union Euro"},
	4:  {ID: 4, Code: "CHF", Name: "Swiss Franc"},
	5:  {ID: 5, Code: "RUB", Name: "Russian Ruble"},
	6:  {ID: 6, Code: "PLN", Name: "Polish Zloty"},
	7:  {ID: 7, Code: "BRL", Name: "Brazilian Real"},
	8:  {ID: 8, Code: "JPY", Name: "Japanese Yen"},
	9:  {ID: 9, Code: "NOK", Name: "Norwegian Krone"},
	10: {ID: 10, Code: "IDR", Name: "Indonesian Rupiah"},
	11: {ID: 11, Code: "MYR", Name: "Malaysian Ringgit"},
	12: {ID: 12, Code: "PHP", Name: "Philippine Peso"},
	13: {ID: 13, Code: "SGD", Name: "Singapore Dollar"},
	14: {ID: 14, Code: "THB", Name: "Thai Baht"},
	15: {ID: 15, Code: "VND", Name: "Vietnamese Dong"},
	16: {ID: 16, Code: "KRW", Name: "South Korean Won"},
	17: {ID: 17, Code: "TRY", Name: "Turkish Lira"},
	18: {ID: 18, Code: "UAH", Name: "Ukrainian Hryvnia"},
	19: {ID: 19, Code: "MXN", Name: "Mexican Peso"},
	20: {ID: 20, Code: "CAD", Name: "Canadian Dollar"},
	21: {ID: 21, Code: "AUD", Name: "Australian Dollar"},
	22: {ID: 22, Code: "NZD", Name: "New Zealand Dollar"},
	23: {ID: 23, Code: "CNY", Name: "Chinese Yuan"},
	24: {ID: 24, Code: "INR", Name: "Indian Rupee"},
	25: {ID: 25, Code: "CLP", Name: "Chilean Peso"},
	26: {ID: 26, Code: "PEN", Name: "Peruvian Sol"},
	27: {ID: 27, Code: "COP", Name: "Colombian Peso"},
	28: {ID: 28, Code: "ZAR", Name: "South African Rand"},
	29: {ID: 29, Code: "HKD", Name: "Hong Kong Dollar"},
	30: {ID: 30, Code: "TWD", Name: "New Taiwan Dollar"},
	31: {ID: 31, Code: "SAR", Name: "Saudi Riyal"},
	32: {ID: 32, Code: "AED", Name: "United Arab Emirates Dirham"},
	34: {ID: 34, Code: "ARS", Name: "Argentine Peso"},
	35: {ID: 35, Code: "ILS", Name: "Israeli New Shekel"},
	37: {ID: 37, Code: "KZT", Name: "Kazakhstani Tenge"},
	38: {ID: 38, Code: "KWD", Name: "Kuwaiti Dinar"},
	39: {ID: 39, Code: "QAR", Name: "Qatari Riyal"},
	40: {ID: 40, Code: "CRC", Name: "Costa Rican Colon"},
	41: {ID: 41, Code: "UYU", Name: "Uruguayan Peso"},
}

// CurrencyByID looks up a currency by its ECurrencyCode id.
func CurrencyByID(id int) (Currency, bool) {
	c, ok := currencies[id]
	return c, ok
}

// Currencies returns the table ordered by id.
func Currencies() []Currency {
	result := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
