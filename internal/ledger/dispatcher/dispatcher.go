// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dispatcher runs a fixed pool of reducer.Reducer workers,
// routing each incoming event to the worker owning its client id
// (client_id mod N) and concatenating their final account sets. Shape
// grounded on core/txpool.TxPool's per-subpool goroutine fan-out,
// generalized from "N specialized subpools" to "N sharded workers".
package dispatcher

import (
	"sync"

	"github.com/luxfi/ledgerengine/internal/ledger/account"
	"github.com/luxfi/ledgerengine/internal/ledger/event"
	"github.com/luxfi/ledgerengine/internal/ledger/metrics"
	"github.com/luxfi/ledgerengine/internal/ledger/reducer"
)

// DefaultQueueSize is the reference bounded intake capacity per worker
// (spec §4.2).
const DefaultQueueSize = 1024

// Dispatcher fans an event stream out across N reducer workers by
// client_id mod N, preserving per-client order.
type Dispatcher struct {
	n         int
	queueSize int
}

// New returns a Dispatcher with n workers, each with a bounded intake
// queue of the given capacity. n is clamped to at least 1; a queueSize
// below 1 is replaced by DefaultQueueSize.
func New(n, queueSize int) *Dispatcher {
	if n < 1 {
		n = 1
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{n: n, queueSize: queueSize}
}

// Run consumes in to exhaustion, routing every event to its client's
// worker, and returns the concatenation of every worker's final
// accounts once in is closed and every worker has drained. Output
// ordering across clients is unspecified.
func (d *Dispatcher) Run(in <-chan event.Event) []account.Account {
	intakes := make([]chan event.Event, d.n)
	for i := range intakes {
		intakes[i] = make(chan event.Event, d.queueSize)
	}

	var wg sync.WaitGroup
	results := make([][]account.Account, d.n)
	wg.Add(d.n)
	for i := 0; i < d.n; i++ {
		go func(i int) {
			defer wg.Done()
			r := reducer.New()
			for e := range intakes[i] {
				r.Apply(e)
			}
			results[i] = r.Accounts()
		}(i)
	}

	for e := range in {
		metrics.EventsRouted.Inc(1)
		shard := int(e.ClientID()) % d.n
		intakes[shard] <- e
	}
	for _, intake := range intakes {
		close(intake)
	}

	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]account.Account, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
