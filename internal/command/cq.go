// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/market"
	"github.com/staranto/smpctlgo/internal/meta"
	"github.com/staranto/smpctlgo/internal/output"
)

// CqCommandAction is the action handler for the "cq" subcommand. It renders
// the ECurrencyCode table so users can look up ids for --currency.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "cq") {
		return nil
	}

	rows := output.CurrencyRows(market.Currencies())

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	output.SliceDiceSpit(raw, rows, output.CurrencyColumns, cmd, os.Stdout)
	return nil
}

// CqCommandBuilder constructs the cli.Command definition for the "cq"
// command.
func CqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "cq",
		Usage:     "currency code query",
		UsageText: `smpctl cq [options]`,
		Action:    CqCommandAction,
		Meta:      meta,
	}).Build()
}
