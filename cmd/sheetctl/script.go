package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/berejant/gridsheet/internal/grid"
)

// loadScriptFile applies every "pos text" line of path to g, in order.
// Blank lines and lines starting with '#' are skipped.
func loadScriptFile(g *grid.Grid, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return fmt.Errorf("script line %d: expected \"pos text\", got %q", lineNo, line)
		}

		pos, err := grid.ParsePosition(fields[0])
		if err != nil {
			return fmt.Errorf("script line %d: %w", lineNo, err)
		}
		if err := g.SetCell(pos, fields[1]); err != nil {
			return fmt.Errorf("script line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
