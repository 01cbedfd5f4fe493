package domain

// DefaultCompanyName substitutes a missing company field on incoming
// records; kept in the source language of the spreadsheet data.
const DefaultCompanyName = "Без названия"

// A single delivery destination as received from the data source.
// Records are immutable; the optimizer consumes them and discards them.
type AddressRecord struct {
	Company      string
	Address      string
	Weight       float64
	DeliveryDate string
	Manager      string
}
