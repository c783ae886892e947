package models

import "github.com/shopspring/decimal"

func init() {
	// amounts travel as JSON numbers; decimal still accepts quoted input
	decimal.MarshalJSONWithoutQuotes = true
}
