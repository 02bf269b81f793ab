// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package prompt supplies the repository password backrub needs for every
// command that opens or initializes a repository.
//
// The password is read from the BACKRUB_KEY environment variable when set,
// which lets scripted and CI invocations skip the terminal entirely.
// Otherwise it is read interactively via a single masked Bubble Tea input,
// so the password is never echoed to the terminal.
package prompt

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by [ReadKey] when the user aborts the interactive
// prompt (Ctrl+C or Esc) instead of entering a password.
var ErrCancelled = errors.New("password entry cancelled")

// ReadKey returns the repository password as raw bytes.
//
// If BACKRUB_KEY is set (even to an empty string), its value is used
// directly and no terminal interaction occurs. Otherwise the user is asked
// to type the password at a masked prompt.
func ReadKey(label string) ([]byte, error) {
	if key, ok := os.LookupEnv("BACKRUB_KEY"); ok {
		return []byte(key), nil
	}
	return readInteractive(label)
}

// readInteractive runs the masked password prompt as an inline (not
// alternate-screen) Bubble Tea program, so the rest of the command's output
// still scrolls normally in the terminal.
func readInteractive(label string) ([]byte, error) {
	m := newPasswordModel(label)

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(passwordModel)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return []byte(result.input.Value()), nil
}
