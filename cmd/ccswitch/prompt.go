package main

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// confirm asks the user before a destructive operation. The --yes flag skips
// the prompt. A declined prompt is reported as false with no error.
func confirm(label string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
