// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/meta"
	"github.com/staranto/smpctlgo/internal/serve"
)

// ServeCommandAction is the action handler for the "serve" subcommand. It
// re-exposes the market client over HTTP until interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "serve") {
		return nil
	}

	client := NewMarketClient(cmd)
	server := serve.New(client, int(cmd.Int("port")))

	return server.ListenAndServe(ctx)
}

// ServeCommandBuilder constructs the cli.Command definition for the "serve"
// command.
func ServeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "serve prices over HTTP",
		UsageText: `smpctl serve [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			tldrFlag,
			NewAppIDFlag("serve"),
			NewCurrencyFlag("serve"),
			NewKeyFlag("serve"),
			NewTTLFlag("serve"),
			NewURLFlag("serve"),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("SMPCTL_PORT"),
				),
				Value: serve.DefaultPort,
				Validator: func(value int) error {
					return FlagValidators(value, PortValidator)
				},
			},
		},
		Action: ServeCommandAction,
	}
}
