// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/diff"
	"github.com/staranto/smpctlgo/internal/meta"
	"github.com/staranto/smpctlgo/internal/output"
)

// BqCommandAction is the action handler for the "bq" subcommand. It fetches
// the aggregate price list from the bulk provider (subject to the refresh
// gate), merges it into the price store, and emits one row per item. With
// --diff it instead shows what the refresh changed in the price document.
func BqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "bq") {
		return nil
	}

	client := NewMarketClient(cmd)

	// Snapshot the persisted document up front so --diff has a "before"
	// image to compare the refreshed one against.
	var before map[string]float64
	if cmd.Bool("diff") {
		before = map[string]float64{}
		for name, entry := range client.Store().Document() {
			before[name] = entry.LowestPrice
		}
	}

	raw, err := client.AllPrices(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("diff") {
		after := map[string]float64{}
		for name, entry := range client.Store().Document() {
			after[name] = entry.LowestPrice
		}
		rendered, diffErr := diff.Render(before, after, cmd.Bool("color"))
		if diffErr != nil {
			return fmt.Errorf("failed to diff price documents: %w", diffErr)
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	}

	rows := output.AggregateRows(raw)
	output.SliceDiceSpit(raw, rows, output.AggregateColumns, cmd, os.Stdout)
	return nil
}

// BqCommandBuilder constructs the cli.Command definition for the "bq"
// command, wiring flags, metadata, and the action/validator handlers.
func BqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "bq",
		Usage:     "bulk price query",
		UsageText: `smpctl bq [options]`,
		Flags: []cli.Flag{
			NewAppIDFlag("bq"),
			NewKeyFlag("bq"),
			NewURLFlag("bq"),
			&cli.BoolFlag{
				Name:        "diff",
				Usage:       "show what the refresh changed in the price document",
				HideDefault: true,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "minimum time between aggregate refetches",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("SMPCTL_INTERVAL"),
				),
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "aggregate payload format",
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			},
		},
		Action: BqCommandAction,
		Meta:   meta,
	}).Build()
}
