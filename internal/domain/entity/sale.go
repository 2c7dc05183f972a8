package entity

import "time"

// Sale is a ledger entry written once per successful purchase. It is
// never updated afterwards.
type Sale struct {
	ID       string
	BikeID   string
	BuyerID  string
	SellerID string
	Price    float64
	Notes    string
	SoldDate time.Time
}
