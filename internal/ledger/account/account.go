// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package account holds the per-client balance record the reducer
// produces, and the reducer-private ledger bookkeeping (known
// transactions, open disputes) that backs it.
package account

import "github.com/shopspring/decimal"

// Account is the externally visible per-client balance record. total is
// expected to equal available+held at every event boundary; it is
// carried as its own field (rather than computed) because a chargeback
// mutates it directly and independently of available, per the reducer's
// accounting (spec §4.1).
type Account struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Ledger is the reducer-private state for one client: the live Account
// plus the bookkeeping needed to process disputes/resolves/chargebacks
// and reject duplicate transaction ids. It is never serialized; only
// Account is.
type Ledger struct {
	Account Account

	// known holds every Transaction accepted for this client, keyed by
	// tx id, for amount recovery and duplicate-id rejection. A
	// successful chargeback removes its entry (spec §3 lifecycle).
	known map[uint32]decimal.Decimal

	// open is the set of tx ids currently under dispute.
	open map[uint32]struct{}
}

// New creates an empty ledger for client, balances at zero, unlocked.
func New(client uint16) *Ledger {
	return &Ledger{
		Account: Account{Client: client},
		known:   make(map[uint32]decimal.Decimal),
		open:    make(map[uint32]struct{}),
	}
}

// KnownAmount returns the recorded amount for tx and whether it is known.
func (l *Ledger) KnownAmount(tx uint32) (decimal.Decimal, bool) {
	a, ok := l.known[tx]
	return a, ok
}

// IsDisputed reports whether tx currently has an open dispute.
func (l *Ledger) IsDisputed(tx uint32) bool {
	_, ok := l.open[tx]
	return ok
}

// RecordTransaction stores a newly accepted transaction's amount.
func (l *Ledger) RecordTransaction(tx uint32, amount decimal.Decimal) {
	l.known[tx] = amount
}

// OpenDispute marks tx as disputed.
func (l *Ledger) OpenDispute(tx uint32) {
	l.open[tx] = struct{}{}
}

// CloseDispute removes tx's open-dispute marker (used by both Resolve
// and Chargeback).
func (l *Ledger) CloseDispute(tx uint32) {
	delete(l.open, tx)
}

// ForgetTransaction removes tx from the known set; only a successful
// chargeback does this (spec §3 lifecycle: "transaction entry is
// removed on successful chargeback").
func (l *Ledger) ForgetTransaction(tx uint32) {
	delete(l.known, tx)
}

// Lock sets the sticky locked flag. One-way: callers never unlock.
func (l *Ledger) Lock() {
	l.Account.Locked = true
}
