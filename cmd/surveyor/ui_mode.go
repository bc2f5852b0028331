package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode controls whether analyze renders the interactive progress view.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("unknown --ui mode %q, want auto, on or off", value)
}

// shouldUseTUI decides at startup; auto falls back to plain output when
// stdout is not a terminal.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiModeAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiModeOn
}
