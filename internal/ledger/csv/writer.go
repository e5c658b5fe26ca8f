// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/luxfi/ledgerengine/internal/ledger/account"
)

var header = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts writes accounts as CSV to w with the header
// "client,available,held,total,locked", balances rendered to exactly
// four fractional digits and locked as lowercase true/false. Row order
// is unspecified (spec §6).
func WriteAccounts(w io.Writer, accounts []account.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.StringFixed(4),
			a.Held.StringFixed(4),
			a.Total.StringFixed(4),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
