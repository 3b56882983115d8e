package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/varsight/varsight/internal/prediction"
)

func newBuildPredictionsCmd() *cobra.Command {
	var (
		assemblyName string
		vepVersion   string
		kindName     string
		scoresTSV    string
	)

	cmd := &cobra.Command{
		Use:   "build-predictions <output-file>",
		Short: "Assemble a binary prediction file from a TSV score listing",
		Long: `Assemble a binary prediction file from a TSV score listing.

Score TSV columns:
  chrom_index  transcript_id  protein_pos  alt_aa  score

Lines starting with '#' are skipped. This is build support for tests and
small panels; production prediction files come from the upstream pipeline.`,
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

			var kind prediction.Kind
			switch kindName {
			case "sift", "SIFT":
				kind = prediction.KindSift
			case "polyphen", "PolyPhen":
				kind = prediction.KindPolyPhen
			default:
				return fmt.Errorf("unknown predictor kind %q (expected sift or polyphen)", kindName)
			}

			matrices, count, err := readScoreTSV(scoresTSV)
			if err != nil {
				return err
			}

			out, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create prediction file: %w", err)
			}
			if err := prediction.Write(out, kind, asm, vepVersion, matrices); err != nil {
				out.Close()
				os.Remove(args[0])
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("close prediction file: %w", err)
			}

			logger.Info("prediction file written",
				zap.String("path", args[0]),
				zap.Stringer("kind", kind),
				zap.Int("chromosomes", len(matrices)),
				zap.Int("scores", count))
			fmt.Printf("Wrote %s: %d %s scores across %d chromosomes\n",
				args[0], count, kind, len(matrices))
			return nil
		},
	}

	cmd.Flags().StringVar(&assemblyName, "assembly", "GRCh38", "assembly the scores belong to")
	cmd.Flags().StringVar(&vepVersion, "vep-version", "", "custom version tag recorded in the file header")
	cmd.Flags().StringVar(&kindName, "kind", "sift", "predictor kind (sift or polyphen)")
	cmd.Flags().StringVar(&scoresTSV, "scores", "", "score TSV listing")
	cmd.MarkFlagRequired("scores")
	return cmd
}

func readScoreTSV(path string) (map[uint16]map[string][]prediction.Entry, int, error) {
	matrices := make(map[uint16]map[string][]prediction.Entry)
	count := 0
	err := readTSV(path, 5, func(fields []string) error {
		chromIndex, err := strconv.ParseUint(fields[0], 10, 16)
		if err != nil {
			return fmt.Errorf("bad chrom_index %q: %w", fields[0], err)
		}
		proteinPos, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return fmt.Errorf("bad protein_pos %q: %w", fields[2], err)
		}
		if len(fields[3]) != 1 {
			return fmt.Errorf("bad alt_aa %q: want one amino acid letter", fields[3])
		}
		score, err := strconv.ParseFloat(fields[4], 32)
		if err != nil {
			return fmt.Errorf("bad score %q: %w", fields[4], err)
		}

		m, ok := matrices[uint16(chromIndex)]
		if !ok {
			m = make(map[string][]prediction.Entry)
			matrices[uint16(chromIndex)] = m
		}
		m[fields[1]] = append(m[fields[1]], prediction.Entry{
			ProteinPos: int32(proteinPos),
			AltAA:      fields[3][0],
			Score:      float32(score),
		})
		count++
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return matrices, count, nil
}
