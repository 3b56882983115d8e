package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		assemblyName string
		dbPath       string
	)

	cmd := &cobra.Command{
		Use:   "export <cache-file>",
		Short: "Dump a transcript cache into a DuckDB database for SQL inspection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			asm, err := resolveAssembly(cmd, assemblyName)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open cache file: %w", err)
			}
			c, err := cache.Read(f, assemblyFlag{asm})
			f.Close()
			if err != nil {
				return err
			}

			store, err := export.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ExportCache(c); err != nil {
				return err
			}

			logger.Info("cache exported",
				zap.String("db", dbPath),
				zap.Int("transcripts", c.TranscriptCount()),
				zap.Int("regulatory", c.RegulatoryCount()))
			fmt.Printf("Exported %d transcripts and %d regulatory regions to %s\n",
				c.TranscriptCount(), c.RegulatoryCount(), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&assemblyName, "assembly", "GRCh38", "reference assembly the cache must match (GRCh37 or GRCh38)")
	cmd.Flags().StringVar(&dbPath, "db", "varsight.duckdb", "DuckDB database path")
	return cmd
}
