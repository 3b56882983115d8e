package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/genome"
)

func newBuildCmd() *cobra.Command {
	var (
		assemblyName   string
		vepVersion     string
		transcriptsTSV string
		regulatoryTSV  string
		sources        []string
	)

	cmd := &cobra.Command{
		Use:   "build <output-cache-file>",
		Short: "Assemble a binary transcript cache from TSV interval listings",
		Long: `Assemble a binary transcript cache from TSV interval listings.

Transcript TSV columns:
  chrom  start  end  transcript_id  version  gene_id  gene_name  strand  biotype  coding_start  coding_end  canonical

Regulatory TSV columns:
  chrom  start  end  region_id  region_type

Lines starting with '#' are skipped. This is build support for tests and
small panels; production caches come from the upstream cache pipeline.`,
		Args: cobra.ExactArgs(1),
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

			var transcripts []*cache.Transcript
			if transcriptsTSV != "" {
				transcripts, err = readTranscriptTSV(transcriptsTSV)
				if err != nil {
					return err
				}
			}

			var regions []*cache.RegulatoryRegion
			if regulatoryTSV != "" {
				regions, err = readRegulatoryTSV(regulatoryTSV)
				if err != nil {
					return err
				}
			}

			if len(transcripts) == 0 && len(regions) == 0 {
				return fmt.Errorf("nothing to build: supply --transcripts and/or --regulatory")
			}

			meta := cache.Metadata{
				Assembly:   asm,
				VepVersion: vepVersion,
			}
			for _, s := range sources {
				name, ver, _ := strings.Cut(s, "=")
				meta.DataSources = append(meta.DataSources, cache.DataSourceVersion{Name: name, Version: ver})
			}

			out, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create cache file: %w", err)
			}
			if err := cache.Write(out, meta, transcripts, regions); err != nil {
				out.Close()
				os.Remove(args[0])
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close cache file: %w", err)
			}

			logger.Info("cache written",
				zap.String("path", args[0]),
				zap.Int("transcripts", len(transcripts)),
				zap.Int("regulatory", len(regions)))
			fmt.Printf("Wrote %s: %d transcripts, %d regulatory regions\n",
				args[0], len(transcripts), len(regions))
			return nil
		},
	}

	cmd.Flags().StringVar(&assemblyName, "assembly", "GRCh38", "assembly the cache coordinates belong to")
	cmd.Flags().StringVar(&vepVersion, "vep-version", "", "custom version tag recorded in the cache header")
	cmd.Flags().StringVar(&transcriptsTSV, "transcripts", "", "transcript TSV listing")
	cmd.Flags().StringVar(&regulatoryTSV, "regulatory", "", "regulatory region TSV listing")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "data source version, name=version (repeatable)")
	return cmd
}

func readTranscriptTSV(path string) ([]*cache.Transcript, error) {
	var transcripts []*cache.Transcript
	err := readTSV(path, 12, func(fields []string) error {
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad start %q: %w", fields[1], err)
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad end %q: %w", fields[2], err)
		}
		version, err := strconv.ParseUint(fields[4], 10, 8)
		if err != nil {
			return fmt.Errorf("bad version %q: %w", fields[4], err)
		}
		strand := int8(1)
		if fields[7] == "-" || fields[7] == "-1" {
			strand = -1
		}
		codingStart, _ := strconv.ParseInt(fields[9], 10, 64)
		codingEnd, _ := strconv.ParseInt(fields[10], 10, 64)

		transcripts = append(transcripts, &cache.Transcript{
			ID:          fields[3],
			Version:     uint8(version),
			GeneID:      fields[5],
			GeneName:    fields[6],
			Chrom:       genome.Chromosome{Name: fields[0]},
			Start:       start,
			End:         end,
			Strand:      strand,
			Biotype:     fields[8],
			CodingStart: codingStart,
			CodingEnd:   codingEnd,
			IsCanonical: fields[11] == "1" || fields[11] == "true",
		})
		return nil
	})
	return transcripts, err
}

func readRegulatoryTSV(path string) ([]*cache.RegulatoryRegion, error) {
	var regions []*cache.RegulatoryRegion
	err := readTSV(path, 5, func(fields []string) error {
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad start %q: %w", fields[1], err)
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return fmt.Errorf("bad end %q: %w", fields[2], err)
		}
		regions = append(regions, &cache.RegulatoryRegion{
			ID:    fields[3],
			Chrom: genome.Chromosome{Name: fields[0]},
			Start: start,
			End:   end,
			Type:  fields[4],
		})
		return nil
	})
	return regions, err
}

func readTSV(path string, wantFields int, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != wantFields {
			return fmt.Errorf("%s:%d: expected %d fields, got %d", path, lineNo, wantFields, len(fields))
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	return scanner.Err()
}
