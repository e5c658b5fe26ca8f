// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes counters for the reducer and dispatcher,
// registered against the teacher's own metrics registry so the pipeline
// can be observed without parsing stdout.
package metrics

import "github.com/luxfi/geth/metrics"

var registry = metrics.NewRegistry()

// Counters for reducer outcomes and dispatcher routing. All are
// process-lifetime monotonic counters; none feed back into reducer
// semantics.
var (
	EventsRouted         = metrics.NewCounter()
	EventsAccepted       = metrics.NewCounter()
	EventsDroppedLocked  = metrics.NewCounter()
	EventsDroppedDup     = metrics.NewCounter()
	EventsDroppedFunds   = metrics.NewCounter()
	EventsDroppedUnknown = metrics.NewCounter()
	AccountsLocked       = metrics.NewCounter()
	AccountsFinalized    = metrics.NewCounter()
)

func register(name string, c interface{}) {
	_ = registry.Register(name, c)
}

func init() {
	register("ledgerengine/events/routed", EventsRouted)
	register("ledgerengine/events/accepted", EventsAccepted)
	register("ledgerengine/events/dropped/locked", EventsDroppedLocked)
	register("ledgerengine/events/dropped/duplicate", EventsDroppedDup)
	register("ledgerengine/events/dropped/insufficient_funds", EventsDroppedFunds)
	register("ledgerengine/events/dropped/unknown_tx", EventsDroppedUnknown)
	register("ledgerengine/accounts/locked", AccountsLocked)
	register("ledgerengine/accounts/finalized", AccountsFinalized)
}

// Registry returns the underlying metrics registry, for a caller that
// wants to gather/export it (e.g. in tests).
func Registry() metrics.Registry {
	return registry
}
