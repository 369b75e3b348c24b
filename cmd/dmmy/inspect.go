package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dmmy/internal/api"
	"github.com/samcharles93/dmmy/internal/logger"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

type inspectReport struct {
	File         string            `json:"file"`
	SizeBytes    int               `json:"size_bytes"`
	Version      uint16            `json:"version"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	HeaderSize   int               `json:"header_size"`
	FooterOffset uint32            `json:"footer_offset"`
	Pages        []api.PageSummary `json:"pages"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and page table of an NTuple file",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("inspect: missing FILE argument")
			}
			log := logger.FromContext(ctx).With("file", path)

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			layout, err := ntuple.Inspect(data, ntuple.WithLogger(log))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			pages := make([]api.PageSummary, len(layout.Pages))
			for i, p := range layout.Pages {
				pages[i] = api.PageSummary{Index: i, Offset: p.Offset, Size: p.Size, NumElements: p.NumElements}
			}
			report := inspectReport{
				File:         path,
				SizeBytes:    len(data),
				Version:      layout.Header.Version,
				Name:         layout.Header.Name,
				Description:  layout.Header.Description,
				HeaderSize:   layout.Header.Size,
				FooterOffset: layout.Header.FooterOffset,
				Pages:        pages,
			}
			if outputFormat == outputJSON {
				return writeJSON(stdout(cmd), report)
			}
			return printInspect(cmd, report)
		},
	}
}

func printInspect(cmd *cli.Command, r inspectReport) error {
	w := stdout(cmd)
	_, _ = fmt.Fprintf(w, "file:          %s (%d bytes)\n", r.File, r.SizeBytes)
	_, _ = fmt.Fprintf(w, "version:       %d\n", r.Version)
	_, _ = fmt.Fprintf(w, "name:          %s\n", r.Name)
	_, _ = fmt.Fprintf(w, "description:   %s\n", r.Description)
	_, _ = fmt.Fprintf(w, "header size:   %d\n", r.HeaderSize)
	_, _ = fmt.Fprintf(w, "footer offset: %d\n", r.FooterOffset)
	_, _ = fmt.Fprintf(w, "pages:         %d\n", len(r.Pages))
	if len(r.Pages) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  INDEX\tOFFSET\tSIZE\tELEMENTS")
	for _, p := range r.Pages {
		_, _ = fmt.Fprintf(tw, "  %d\t%d\t%d\t%d\n", p.Index, p.Offset, p.Size, p.NumElements)
	}
	return tw.Flush()
}
