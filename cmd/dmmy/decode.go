package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dmmy/internal/api"
	"github.com/samcharles93/dmmy/internal/logger"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

type decodedPage struct {
	Index    int          `json:"index"`
	Elements api.Elements `json:"elements"`
}

type decodeReport struct {
	File        string        `json:"file"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Pages       []decodedPage `json:"pages"`
}

func decodeCmd() *cli.Command {
	var (
		page  int64
		limit int64
	)

	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode an NTuple file and print its pages",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "page",
				Usage:       "only print the page at this index (-1 prints all)",
				Value:       -1,
				Destination: &page,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Usage:       "max elements per page in text output (0 prints all)",
				Value:       16,
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("decode: missing FILE argument")
			}
			log := logger.FromContext(ctx).With("file", path)

			doc, err := ntuple.ReadFile(path, ntuple.WithLogger(log))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Info("decoded document", "pages", len(doc.Pages), "elements", doc.NumElements())

			report := decodeReport{File: path, Name: doc.Name, Description: doc.Description}
			if page >= 0 {
				if page >= int64(len(doc.Pages)) {
					return fmt.Errorf("%s: page %d out of range (document has %d pages)", path, page, len(doc.Pages))
				}
				report.Pages = []decodedPage{{Index: int(page), Elements: api.Elements(doc.Pages[page])}}
			} else {
				report.Pages = make([]decodedPage, len(doc.Pages))
				for i, p := range doc.Pages {
					report.Pages[i] = decodedPage{Index: i, Elements: api.Elements(p)}
				}
			}

			if outputFormat == outputJSON {
				return writeJSON(stdout(cmd), report)
			}
			w := stdout(cmd)
			_, _ = fmt.Fprintf(w, "name:        %s\n", report.Name)
			_, _ = fmt.Fprintf(w, "description: %s\n", report.Description)
			for _, p := range report.Pages {
				_, _ = fmt.Fprintf(w, "page %d (%d elements): %s\n", p.Index, len(p.Elements), formatElements(p.Elements, int(limit)))
			}
			return nil
		},
	}
}
