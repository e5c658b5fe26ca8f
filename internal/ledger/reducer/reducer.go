// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reducer implements the per-client account state machine: a
// pure function of an ordered event sequence to a set of final
// accounts. It is the algorithmic core of ledgerengine.
package reducer

import (
	"github.com/luxfi/ledgerengine/internal/ledger/account"
	"github.com/luxfi/ledgerengine/internal/ledger/event"
	"github.com/luxfi/ledgerengine/internal/ledger/metrics"
)

// Reducer folds an ordered event stream into per-client ledgers. It is
// not safe for concurrent use; the dispatcher gives each worker its own
// Reducer so that sharding by client id is sufficient for correctness.
type Reducer struct {
	ledgers map[uint16]*account.Ledger
}

// New returns an empty Reducer.
func New() *Reducer {
	return &Reducer{ledgers: make(map[uint16]*account.Ledger)}
}

// Apply processes a single event against its client's ledger, creating
// the ledger lazily on first sight (spec §3 lifecycle: no deletion).
func (r *Reducer) Apply(e event.Event) {
	l, ok := r.ledgers[e.Client]
	if !ok {
		l = account.New(e.Client)
		r.ledgers[e.Client] = l
	}

	if l.Account.Locked {
		metrics.EventsDroppedLocked.Inc(1)
		return
	}

	switch e.Kind {
	case event.Transaction:
		r.applyTransaction(l, e)
	case event.Dispute:
		r.applyDispute(l, e)
	case event.Resolve:
		r.applyResolve(l, e)
	case event.Chargeback:
		r.applyChargeback(l, e)
	}
}

func (r *Reducer) applyTransaction(l *account.Ledger, e event.Event) {
	if _, dup := l.KnownAmount(e.TxID); dup {
		metrics.EventsDroppedDup.Inc(1)
		return
	}

	if e.Amount.IsNegative() {
		if l.Account.Available.Add(e.Amount).IsNegative() {
			metrics.EventsDroppedFunds.Inc(1)
			return
		}
	}

	l.Account.Available = l.Account.Available.Add(e.Amount)
	l.Account.Total = l.Account.Total.Add(e.Amount)
	l.RecordTransaction(e.TxID, e.Amount)
	metrics.EventsAccepted.Inc(1)
}

func (r *Reducer) applyDispute(l *account.Ledger, e event.Event) {
	a, known := l.KnownAmount(e.TxID)
	if !known {
		metrics.EventsDroppedUnknown.Inc(1)
		return
	}
	if l.IsDisputed(e.TxID) {
		// Idempotent: re-asserting an already-open dispute must not
		// double-count into held.
		return
	}

	l.Account.Available = l.Account.Available.Sub(a)
	l.Account.Held = l.Account.Held.Add(a)
	l.OpenDispute(e.TxID)
}

func (r *Reducer) applyResolve(l *account.Ledger, e event.Event) {
	if !l.IsDisputed(e.TxID) {
		metrics.EventsDroppedUnknown.Inc(1)
		return
	}
	a, known := l.KnownAmount(e.TxID)
	if !known {
		metrics.EventsDroppedUnknown.Inc(1)
		return
	}

	l.Account.Available = l.Account.Available.Add(a)
	l.Account.Held = l.Account.Held.Sub(a)
	l.CloseDispute(e.TxID)
}

// applyChargeback implements the policy resolved in SPEC_FULL.md §4.1 /
// DESIGN.md: a chargeback against a tx with no open dispute locks the
// account and is otherwise a no-op ("illegal chargeback"); a chargeback
// against a disputed tx always applies and never locks, even when it
// drives total negative.
func (r *Reducer) applyChargeback(l *account.Ledger, e event.Event) {
	if !l.IsDisputed(e.TxID) {
		l.Lock()
		metrics.AccountsLocked.Inc(1)
		return
	}
	a, known := l.KnownAmount(e.TxID)
	if !known {
		metrics.EventsDroppedUnknown.Inc(1)
		return
	}

	l.Account.Held = l.Account.Held.Sub(a)
	l.Account.Total = l.Account.Total.Sub(a)
	l.CloseDispute(e.TxID)
	l.ForgetTransaction(e.TxID)
}

// Accounts returns the final account for every client seen so far, in
// unspecified order.
func (r *Reducer) Accounts() []account.Account {
	out := make([]account.Account, 0, len(r.ledgers))
	for _, l := range r.ledgers {
		out = append(out, l.Account)
		metrics.AccountsFinalized.Inc(1)
	}
	return out
}

// Reduce is a pure convenience wrapper: apply every event in order over
// a fresh Reducer and return the resulting accounts.
func Reduce(events []event.Event) []account.Account {
	r := New()
	for _, e := range events {
		r.Apply(e)
	}
	return r.Accounts()
}

