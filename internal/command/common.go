// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/config"
	"github.com/staranto/smpctlgo/internal/market"
	"github.com/staranto/smpctlgo/internal/meta"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr smpctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "smpctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewMarketClient builds a market.Client from the command's flags. Only the
// flags the command actually defines land in the options; the rest fall back
// to the client defaults.
func NewMarketClient(cmd *cli.Command) *market.Client {
	opts := market.Options{
		Currency: int(cmd.Int("currency")),
		AppID:    int(cmd.Int("appid")),
		APIKey:   cmd.String("key"),
		Format:   cmd.String("format"),
		CacheTTL: cmd.Duration("ttl"),
	}

	if url := cmd.String("url"); url != "" {
		opts.OverviewURL = url
		opts.BulkURL = url
	}
	if interval := cmd.Duration("interval"); interval > 0 {
		opts.MinRefreshInterval = interval
	}
	// The flag wins; otherwise the config file may turn it on globally.
	if keep, _ := config.GetBool("keep-symbols", false); keep || cmd.Bool("keep-symbols") {
		opts.KeepCurrencySymbols = true
	}

	return market.New(opts)
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (iq, bq, cq) using a consistent pattern. It accepts the command
// name, usage text, optional UsageText, custom flags, the action handler, and
// meta. The builder automatically wires metadata, adds the tldr flag, applies
// global flags, and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(qcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}
