// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// FormatValidator accepts only the aggregate formats the provider serves.
func FormatValidator(value any) error {
	if v, ok := value.(string); ok && (v == "" || v == "json") {
		return nil
	}
	return errors.New(`must be "json"`)
}

func PortValidator(value any) error {
	if p, ok := value.(int); ok && p > 0 && p <= 65535 {
		return nil
	}
	return errors.New("must be between 1 and 65535")
}
