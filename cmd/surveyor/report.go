package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"surveyor/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

// printDiagnostics renders a sorted, deduplicated bag to out. Infos are
// dropped under --quiet.
func printDiagnostics(out io.Writer, bag *diag.Bag, colored, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	bag.Dedup()
	for _, d := range bag.Items() {
		if quiet && d.Severity == diag.SevInfo {
			continue
		}
		label := d.Severity.String()
		if colored {
			switch d.Severity {
			case diag.SevError:
				label = errColor.Sprint(label)
			case diag.SevWarning:
				label = warnColor.Sprint(label)
			default:
				label = infoColor.Sprint(label)
			}
		}
		fmt.Fprintf(out, "%s %s: %s\n", label, d.Code, d.Message)
	}
}
