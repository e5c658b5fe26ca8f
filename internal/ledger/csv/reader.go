// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package csv adapts the line-oriented CSV wire format (spec §6) to and
// from event.Event / account.Account. Reader shape grounded on
// other_examples' kraken ledger CSV processor (per-field whitespace
// trimming, permissive handling of unrecognized rows).
package csv

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luxfi/ledgerengine/internal/ledger/event"
)

// Stream reads r line by line, parses each as an event, and sends
// recognized events to the returned channel in file order. Malformed
// lines, unknown event types, and the header (which never matches a
// known variant) are silently skipped, per spec §6-7. The channel is
// closed when r is exhausted or a scan error occurs; scan errors are
// returned on the error channel, which only ever carries at most one
// value.
func Stream(r io.Reader) (<-chan event.Event, <-chan error) {
	out := make(chan event.Event)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			e, ok := parseLine(scanner.Text())
			if !ok {
				continue
			}
			out <- e
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()

	return out, errc
}

// parseLine parses a single CSV line into an Event. ok is false for
// blank lines, wrong arity, non-numeric fields, and unknown event
// types — all absorbed per spec §7.
func parseLine(line string) (event.Event, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return event.Event{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	kind := strings.ToLower(fields[0])
	client, err := parseUint16(fields[1])
	if err != nil {
		return event.Event{}, false
	}
	tx, err := parseUint32(fields[2])
	if err != nil {
		return event.Event{}, false
	}

	switch kind {
	case "deposit", "withdrawal":
		if len(fields) < 4 {
			return event.Event{}, false
		}
		amount, err := decimal.NewFromString(fields[3])
		if err != nil {
			return event.Event{}, false
		}
		if kind == "withdrawal" {
			amount = amount.Neg()
		}
		return event.NewTransaction(client, tx, amount), true
	case "dispute":
		return event.NewDispute(client, tx), true
	case "resolve":
		return event.NewResolve(client, tx), true
	case "chargeback":
		return event.NewChargeback(client, tx), true
	default:
		return event.Event{}, false
	}
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
