package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fenceline/adapters/excel"
	"fenceline/app"
	"fenceline/domain/dataset"
	"fenceline/internal/report"
)

func main() {
	// .env is optional for CLI usage
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fenceline-cli",
		Short: "Tukey fence outlier analysis over CSV/XLSX files",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var column string
	var outFile string
	var asJSON bool
	var workers int64

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the Tukey fence test on every numeric column of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := excel.NewDataReader(args[0])
			matrix, err := reader.ReadMatrix()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			if column != "" {
				filtered := dataset.Matrix{Source: matrix.Source}
				for _, s := range matrix.Series {
					if s.Name == column {
						filtered.Series = append(filtered.Series, s)
					}
				}
				if filtered.IsEmpty() {
					return fmt.Errorf("column %q not found in %s", column, args[0])
				}
				matrix = &filtered
			}

			service := app.NewAnalysisService(nil, workers)
			analysis, err := service.RunAnalysis(context.Background(), *matrix)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(analysis); err != nil {
					return err
				}
			} else {
				fmt.Print(report.Markdown(analysis))
			}

			if outFile != "" {
				if err := excel.WriteAnalysis(outFile, analysis); err != nil {
					return fmt.Errorf("failed to export %s: %w", outFile, err)
				}
				fmt.Fprintf(os.Stderr, "exported %s\n", outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "analyze only the named column")
	cmd.Flags().StringVar(&outFile, "out", "", "export the analysis to an .xlsx file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON instead of markdown")
	cmd.Flags().Int64Var(&workers, "workers", 4, "concurrent series analyses")

	return cmd
}
