// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reducer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledgerengine/internal/ledger/account"
	"github.com/luxfi/ledgerengine/internal/ledger/event"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func single(t *testing.T, events []event.Event) account.Account {
	t.Helper()
	accounts := Reduce(events)
	require.Len(t, accounts, 1)
	return accounts[0]
}

func requireBalance(t *testing.T, a account.Account, available, held, total string, locked bool) {
	t.Helper()
	require.Truef(t, dec(available).Equal(a.Available), "available: want %s got %s", available, a.Available)
	require.Truef(t, dec(held).Equal(a.Held), "held: want %s got %s", held, a.Held)
	require.Truef(t, dec(total).Equal(a.Total), "total: want %s got %s", total, a.Total)
	require.Equal(t, locked, a.Locked)
}

// Scenario 1 — simple deposit.
func TestScenarioSimpleDeposit(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", false)
}

// Scenario 2 — insufficient withdrawal is silently dropped.
func TestScenarioInsufficientWithdrawal(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(1, 2, dec("-150.0")),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", false)
}

// Scenario 3 — illegal chargeback (no prior dispute) locks with no
// balance movement.
func TestScenarioIllegalChargeback(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewChargeback(1, 1),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", true)
}

// Scenario 4 — legal chargeback driving total negative: applies, does
// not lock (adopted policy, see DESIGN.md).
func TestScenarioLegalChargebackDrivesNegative(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(1, 2, dec("-50.0")),
		event.NewDispute(1, 1),
		event.NewChargeback(1, 1),
	})
	requireBalance(t, a, "-50.0000", "0.0000", "-50.0000", false)
}

// Scenario 5 — resolve returns funds exactly.
func TestScenarioResolve(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewDispute(1, 1),
		event.NewResolve(1, 1),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", false)
}

// Scenario 6 — locked account ignores subsequent events.
func TestScenarioLockedAccountIgnoresFurtherEvents(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewChargeback(1, 1), // illegal, locks
		event.NewTransaction(1, 2, dec("50.0")),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", true)
}

// Property 5 — duplicate transaction id is a no-op regardless of amount.
func TestDuplicateTransactionIsNoop(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(1, 1, dec("999.0")),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", false)
}

// Property 7 — dispute/resolve/chargeback on an unknown tx is a no-op
// (except illegal chargeback, covered above).
func TestUnknownTxIsNoopForDisputeAndResolve(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewDispute(1, 999),
		event.NewResolve(1, 999),
	})
	requireBalance(t, a, "100.0000", "0.0000", "100.0000", false)
}

// A re-dispute of an already-open dispute must not double count held.
func TestReDisputeIsIdempotent(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewDispute(1, 1),
		event.NewDispute(1, 1),
	})
	requireBalance(t, a, "0.0000", "100.0000", "100.0000", false)
}

// Disputing a withdrawal drives held negative transiently in the
// ledger's bookkeeping, a documented irregularity (spec §4.1 note).
func TestDisputeOfWithdrawal(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(1, 2, dec("-40.0")),
		event.NewDispute(1, 2),
	})
	// available -= (-40) => +40; held += (-40) => -40
	requireBalance(t, a, "100.0000", "-40.0000", "60.0000", false)
}

// A deposit can repay a post-chargeback negative available balance.
func TestDepositRepaysNegativeBalance(t *testing.T) {
	a := single(t, []event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(1, 2, dec("-50.0")),
		event.NewDispute(1, 1),
		event.NewChargeback(1, 1), // available -50, total -50, unlocked
		event.NewTransaction(1, 3, dec("30.0")),
	})
	requireBalance(t, a, "-20.0000", "0.0000", "-20.0000", false)
}

// Concurrency property 8 (single-shard case): Reduce over independent
// clients never lets one client's events affect another's account.
func TestClientsAreIndependent(t *testing.T) {
	accounts := Reduce([]event.Event{
		event.NewTransaction(1, 1, dec("100.0")),
		event.NewTransaction(2, 2, dec("50.0")),
		event.NewTransaction(1, 3, dec("-10.0")),
	})
	require.Len(t, accounts, 2)
	byClient := map[uint16]account.Account{}
	for _, a := range accounts {
		byClient[a.Client] = a
	}
	requireBalance(t, byClient[1], "90.0000", "0.0000", "90.0000", false)
	requireBalance(t, byClient[2], "50.0000", "0.0000", "50.0000", false)
}
