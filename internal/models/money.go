package models

import "github.com/shopspring/decimal"

// SPA складывает суммы в JS, поэтому в JSON они должны быть числами, а не строками.
// Настройка глобальная для decimal и ставится до первого ответа любого сервера.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
