// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/smpctlgo/internal/meta"
)

func TestOutputValidator(t *testing.T) {
	for _, valid := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(valid), valid)
	}
	assert.Error(t, OutputValidator("csv"))
	assert.Error(t, OutputValidator(""))
}

func TestFormatValidator(t *testing.T) {
	assert.NoError(t, FormatValidator(""))
	assert.NoError(t, FormatValidator("json"))
	assert.Error(t, FormatValidator("yaml"))
	assert.Error(t, FormatValidator("xml"))
}

func TestPortValidator(t *testing.T) {
	assert.NoError(t, PortValidator(8632))
	assert.NoError(t, PortValidator(1))
	assert.NoError(t, PortValidator(65535))
	assert.Error(t, PortValidator(0))
	assert.Error(t, PortValidator(70000))
}

func TestServePortFlagRejectsBadValues(t *testing.T) {
	for _, port := range []string{"0", "70000"} {
		app, err := InitApp(context.Background(), []string{"smpctl", "serve"})
		require.NoError(t, err)

		err = app.Run(context.Background(), []string{"smpctl", "serve", "--port", port})
		assert.Error(t, err, "port %s", port)
	}
}

func TestFlagValidators(t *testing.T) {
	err := FlagValidators("json", OutputValidator, FormatValidator)
	assert.NoError(t, err)

	err = FlagValidators("text", OutputValidator, FormatValidator)
	assert.Error(t, err, "second validator rejects text")
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{
		Metadata: map[string]any{"meta": "not a meta"},
	}))

	m := meta.Meta{Args: []string{"smpctl", "iq"}}
	got := GetMeta(&cli.Command{Metadata: map[string]any{"meta": m}})
	assert.Equal(t, m, got)
}

func TestInitApp(t *testing.T) {
	app, err := InitApp(context.Background(), []string{"smpctl", "iq"})
	require.NoError(t, err)

	assert.Equal(t, "smpctl", app.Name)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"bq", "cq", "iq", "serve", "completion"}, names)

	// Flags must be sorted for the --help text.
	for _, cmd := range app.Commands {
		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t,
				cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0],
				"%s flags out of order", cmd.Name)
		}
	}
}
