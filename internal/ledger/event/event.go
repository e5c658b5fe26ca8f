// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package event defines the tagged-union event record the reducer
// consumes: deposits/withdrawals, disputes, resolves and chargebacks,
// each scoped to a client.
package event

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind discriminates the closed set of event variants. The set never
// grows at runtime, so this is a small enum rather than an interface
// hierarchy.
type Kind uint8

const (
	// Transaction is a deposit (Amount >= 0) or withdrawal (Amount < 0).
	Transaction Kind = iota
	// Dispute opens a dispute against a prior Transaction.
	Dispute
	// Resolve closes an open dispute, returning funds.
	Resolve
	// Chargeback closes an open dispute, reversing funds.
	Chargeback
)

func (k Kind) String() string {
	switch k {
	case Transaction:
		return "transaction"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is a single line of the input stream, already parsed and
// type-checked. Client is informational on Dispute/Resolve/Chargeback:
// transaction lookup is keyed by TxID alone within the owning client's
// ledger (spec: a tx id is scoped to its originating client).
type Event struct {
	Kind   Kind
	Client uint16
	TxID   uint32
	// Amount is only meaningful when Kind == Transaction.
	Amount decimal.Decimal
}

// ClientID returns the event's owning client, the routing key for the
// shard dispatcher.
func (e Event) ClientID() uint16 { return e.Client }

// NewTransaction builds a deposit (amount >= 0) or withdrawal (amount < 0).
func NewTransaction(client uint16, tx uint32, amount decimal.Decimal) Event {
	return Event{Kind: Transaction, Client: client, TxID: tx, Amount: amount}
}

// NewDispute builds a Dispute event against tx.
func NewDispute(client uint16, tx uint32) Event {
	return Event{Kind: Dispute, Client: client, TxID: tx}
}

// NewResolve builds a Resolve event against tx.
func NewResolve(client uint16, tx uint32) Event {
	return Event{Kind: Resolve, Client: client, TxID: tx}
}

// NewChargeback builds a Chargeback event against tx.
func NewChargeback(client uint16, tx uint32) Event {
	return Event{Kind: Chargeback, Client: client, TxID: tx}
}

// IsWithdrawal reports whether a Transaction event moves funds out.
func (e Event) IsWithdrawal() bool {
	return e.Kind == Transaction && e.Amount.IsNegative()
}
