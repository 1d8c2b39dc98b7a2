// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/config"
	"github.com/staranto/smpctlgo/internal/pricestore"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SMPCTL_COLOR"),
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SMPCTL_OUTPUT"),
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewCurrencyFlag constructs the "currency" flag, namespaced to a command.
// The value is an ECurrencyCode id, see `smpctl cq`.
func NewCurrencyFlag(ns string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "currency",
		Usage: "ECurrencyCode id to quote prices in",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SMPCTL_CURRENCY"),
			yaml.YAML(ns+"."+"currency", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("currency", altsrc.StringSourcer(cfg.Source)),
		),
		Value: 1,
	}
}

// NewAppIDFlag constructs the "appid" flag, namespaced to a command. There
// is no default; every query names its game explicitly or via config.
func NewAppIDFlag(ns string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "appid",
		Usage: "Steam application id (e.g. 440 for TF2, 730 for CS)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SMPCTL_APPID"),
			yaml.YAML(ns+"."+"appid", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("appid", altsrc.StringSourcer(cfg.Source)),
		),
	}
}

// NewTTLFlag constructs the "ttl" flag controlling price cache freshness.
func NewTTLFlag(ns string) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "ttl",
		Usage: "how long a cached price stays fresh (0 disables the cache)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SMPCTL_TTL"),
			yaml.YAML(ns+"."+"ttl", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("ttl", altsrc.StringSourcer(cfg.Source)),
		),
		Value: pricestore.DefaultTTL,
	}
}

// NewKeyFlag constructs the "key" flag for the aggregate provider API key.
func NewKeyFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "key",
		Usage: "aggregate provider API key",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SMPCTL_KEY"),
			yaml.YAML(ns+"."+"key", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("key", altsrc.StringSourcer(cfg.Source)),
		),
	}
}

// NewURLFlag constructs the "url" flag overriding a command's upstream
// endpoint. Mostly useful for pointing at a mirror or a test double.
func NewURLFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:   "url",
		Usage:  "override the upstream endpoint",
		Hidden: true,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SMPCTL_URL"),
			yaml.YAML(ns+"."+"url", altsrc.StringSourcer(cfg.Source)),
		),
	}
}

// pathHas checks if the given executable exists on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
