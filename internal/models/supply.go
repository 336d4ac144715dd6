package models

// Supply describes a medical consumable type. Metadata lives exactly once,
// in the hospital's supply catalog; quantities are tracked separately by the
// warehouse ledger and per-ward stock records so the two never drift.
type Supply struct {
	ID       int
	Name     string
	Category string // "Medication", "Instrument", ...
	Unit     string // "units", "boxes", "doses"
	Expiry   string // YYYY-MM-DD, empty when not applicable
	Location string // ward name the roster stocked it in
}

// StockEntry is the warehouse ledger record for one supply id.
type StockEntry struct {
	SupplyID       int
	TotalOnHand    int
	WithdrawnToday int
}

// WardStock is the quantity of one supply held locally by a clinical ward.
// A record is removed from the ward the moment its quantity reaches zero.
type WardStock struct {
	SupplyID int
	Quantity int
}
