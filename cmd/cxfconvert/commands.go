package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cxf-converter/internal/convert"
	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
)

type fileOutput struct {
	File     string                   `json:"file" yaml:"file"`
	Results  []model.ConversionResult `json:"results,omitempty" yaml:"results,omitempty"`
	Warnings []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Failures []model.SpectrumFailure  `json:"failures,omitempty" yaml:"failures,omitempty"`
	Error    string                   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cxfconvert",
		Short:         "Convert CxF reflectance spectra to display and print colour values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	root.AddCommand(newConvertCmd())
	return root
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert one or more CxF files",
		Long: `Reads each CxF file, converts every reflectance spectrum and prints
sRGB, CMYK, CIELab, OKLab, OKLCH and HEX values per spectrum.

Without --partial a spectrum that cannot be converted fails its whole file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	cmd.Flags().IntP("workers", "w", 4, "Files converted in parallel")
	cmd.Flags().Bool("partial", false, "Report failing spectra instead of failing the file")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")
	partial, _ := cmd.Flags().GetBool("partial")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q, expected json or yaml", format)
	}

	var logger observability.Logger = observability.NopLogger{}
	if verbose {
		logger = observability.NewStdLogger(log.New(cmd.ErrOrStderr(), "", 0), true)
	}

	files := make([]convert.File, 0, len(args))
	for _, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, convert.File{Name: filepath.Base(path), Data: b})
	}

	results, err := convert.New(logger).ConvertFiles(cmd.Context(), files, workers)
	if err != nil {
		return err
	}

	out := make([]fileOutput, 0, len(results))
	failed := 0
	for _, res := range results {
		fo := fileOutput{File: res.Name}
		switch {
		case res.Err != nil:
			fo.Error = res.Err.Error()
		case !partial && len(res.Report.Failures) > 0:
			f := res.Report.Failures[0]
			fo.Error = fmt.Sprintf("spectrum %q (specification %q): %s", f.Name, f.Specification, f.Error)
		default:
			fo.Results = res.Report.Results
			fo.Warnings = res.Report.Warnings
			fo.Failures = res.Report.Failures
		}
		if fo.Error != "" {
			failed++
		}
		out = append(out, fo)
	}

	if err := writeOutput(cmd.OutOrStdout(), format, out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(out))
	}
	return nil
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
