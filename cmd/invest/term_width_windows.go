//go:build windows

package main

import (
	"os"
	"strconv"
)

// detectTerminalWidth reads $COLUMNS only; the console size is not queried
// on Windows. Zero leaves maxColWidth at the configured width.
func detectTerminalWidth() int {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
