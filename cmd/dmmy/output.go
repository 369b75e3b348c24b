package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// formatElements renders at most limit values; limit <= 0 prints all.
func formatElements(elems []float32, limit int) string {
	n := len(elems)
	if limit > 0 && n > limit {
		n = limit
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%g", elems[i])
	}
	s := "[" + strings.Join(parts, " ")
	if n < len(elems) {
		s += fmt.Sprintf(" ... +%d", len(elems)-n)
	}
	return s + "]"
}
