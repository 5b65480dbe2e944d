package domain

import "github.com/shopspring/decimal"

// TransactionID identifies one deposit within an account.
type TransactionID uint32

// Transfer records a deposit that may later be disputed.
type Transfer struct {
	Amount   decimal.Decimal `json:"amount"`
	Disputed bool            `json:"disputed"`
}
