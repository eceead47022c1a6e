package models

import "time"

// TransactionAttributes is the attribute set shared by all transaction types. Amounts are in cents.
type TransactionAttributes struct {
	CreatedAt   time.Time `json:"createdAt"`
	Direction   Direction `json:"direction"`
	Amount      int64     `json:"amount"`
	Balance     int64     `json:"balance"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Tags        Tags      `json:"tags,omitempty"`
}

// Transaction is a ledger entry on an account; Type holds the transaction kind
// (e.g. originatedAchTransaction, bookTransaction)
type Transaction = Resource[TransactionAttributes]

// NewPatchTransactionRequest builds a tag update for a transaction
func NewPatchTransactionRequest(tags Tags) *CreateRequest[TagsAttributes] {
	return &CreateRequest[TagsAttributes]{Type: "transaction", Attributes: TagsAttributes{Tags: tags}}
}
