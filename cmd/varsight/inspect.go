package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/genome"
)

// assemblyFlag adapts the --assembly flag to the assembly reporter the cache
// reader validates against: the assembly the user asserts their reference is.
type assemblyFlag struct {
	assembly genome.Assembly
}

func (a assemblyFlag) Assembly() genome.Assembly { return a.assembly }

// resolveAssembly picks the assembly from the flag, falling back to the
// config file when the flag was left at its default.
func resolveAssembly(cmd *cobra.Command, name string) (genome.Assembly, error) {
	if !cmd.Flags().Changed("assembly") && viper.IsSet("assembly") {
		name = viper.GetString("assembly")
	}
	asm := genome.ParseAssembly(name)
	if asm == genome.AssemblyUnknown {
		return asm, fmt.Errorf("unknown assembly %q (expected GRCh37 or GRCh38)", name)
	}
	return asm, nil
}

func newInspectCmd() *cobra.Command {
	var assemblyName string

	cmd := &cobra.Command{
		Use:   "inspect <cache-file>",
		Short: "Print transcript cache metadata and per-chromosome record counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asm, err := resolveAssembly(cmd, assemblyName)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open cache file: %w", err)
			}

			c, err := cache.Read(f, assemblyFlag{asm})
			f.Close() // the cache never needs the stream after Read
			if err != nil {
				return err
			}

			fmt.Printf("assembly:      %s\n", c.Assembly)
			fmt.Printf("vep version:   %s\n", c.VepVersion)
			fmt.Printf("transcripts:   %d\n", c.TranscriptCount())
			fmt.Printf("regulatory:    %d\n", c.RegulatoryCount())
			fmt.Println("data sources:")
			for _, ds := range c.DataSources {
				fmt.Printf("  %s %s\n", ds.Name, ds.Version)
			}
			fmt.Println("chromosomes:")
			for i, name := range c.Chromosomes() {
				fmt.Printf("  %-6s %6d transcripts %6d regulatory\n",
					name, len(c.TranscriptsByChrom(uint16(i))), len(c.RegulatoryByChrom(uint16(i))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assemblyName, "assembly", "GRCh38", "reference assembly the cache must match (GRCh37 or GRCh38)")
	return cmd
}
