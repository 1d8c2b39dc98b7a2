// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/config"
	"github.com/staranto/smpctlgo/internal/meta"
	"github.com/staranto/smpctlgo/internal/output"
)

// IqCommandAction is the action handler for the "iq" subcommand. It fetches
// a market quote for every item named on the command line, concurrently, and
// emits one row per item according to the common output flags. Items that
// fail resolve to error rows rather than aborting the batch.
func IqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "iq") {
		return nil
	}

	names := cmd.Args().Slice()
	if len(names) == 0 {
		// Fall back to a configured watch list.
		names, _ = config.GetStringSlice("iq.defaults")
	}
	if len(names) == 0 {
		return cli.Exit("at least one item name is required", 1)
	}

	client := NewMarketClient(cmd)
	results := client.ItemPrices(ctx, names)

	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	rows := output.QuoteRows(results)
	output.SliceDiceSpit(raw, rows, output.QuoteColumns, cmd, os.Stdout)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d items failed", failed, len(names)), 1)
	}
	return nil
}

// IqCommandBuilder constructs the cli.Command definition for the "iq"
// command, wiring flags, metadata, and the action/validator handlers.
func IqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "iq",
		Usage:     "item price query",
		UsageText: `smpctl iq [options] ITEM [ITEM...]`,
		Flags: []cli.Flag{
			NewAppIDFlag("iq"),
			NewCurrencyFlag("iq"),
			NewTTLFlag("iq"),
			NewURLFlag("iq"),
			&cli.BoolFlag{
				Name:        "keep-symbols",
				Aliases:     []string{"k"},
				Usage:       "keep the endpoint's currency-formatted price strings",
				HideDefault: true,
			},
		},
		Action: IqCommandAction,
		Meta:   meta,
	}).Build()
}
