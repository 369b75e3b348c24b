package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dmmy/internal/logger"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

var errVerifyFailed = errors.New("verification failed")

type verifyResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Pages int    `json:"pages,omitempty"`
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify the checksums of one or more NTuple files",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("verify: missing FILE argument")
			}
			log := logger.FromContext(ctx)

			results := make([]verifyResult, 0, len(paths))
			failed := 0
			for _, path := range paths {
				doc, err := ntuple.ReadFile(path, ntuple.WithLogger(log.With("file", path)))
				if err != nil {
					failed++
					log.Warn("verification failed", "file", path, "error", err)
					results = append(results, verifyResult{File: path, Error: err.Error()})
					continue
				}
				results = append(results, verifyResult{File: path, Valid: true, Pages: len(doc.Pages)})
			}

			if outputFormat == outputJSON {
				if err := writeJSON(stdout(cmd), results); err != nil {
					return err
				}
			} else {
				w := stdout(cmd)
				for _, r := range results {
					if r.Valid {
						_, _ = fmt.Fprintf(w, "OK    %s (%d pages)\n", r.File, r.Pages)
					} else {
						_, _ = fmt.Fprintf(w, "FAIL  %s: %s\n", r.File, r.Error)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, len(paths))
			}
			return nil
		},
	}
}
