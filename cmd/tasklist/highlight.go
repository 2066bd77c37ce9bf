package main

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// highlightID marks the shortest unique prefix of id when stdout is a
// colour-capable terminal.
func highlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	if !ansiEnabled() {
		return id
	}
	return ansiBold + ansiCyan + id[:prefixLen] + ansiReset + id[prefixLen:]
}

func idHighlighter(prefixLengths map[string]int) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		return highlightID(id, prefixLengths[strings.ToLower(id)])
	}
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
