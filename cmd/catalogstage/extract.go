package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/catalogstage"
	"github.com/tsawler/catalogstage/config"
	"github.com/tsawler/catalogstage/export"
)

type extractFlags struct {
	pdf       string
	output    string
	outDir    string
	pages     string
	brand     string
	skuPrefix string
	strict    bool
	workers   int
	sqlite    bool
	noImages  bool
	raw       bool
}

func newExtractCmd(g *globalFlags) *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract products and images from a catalog PDF",
		Long: `Extract parses a two-column catalog PDF into a staging CSV with one row
per product size, a review CSV pairing products with their images, a run
report, a browsable review page and the extracted images.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			f.apply(cmd, cfg)
			return runExtract(cmd, cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.pdf, "pdf", "", "input catalog PDF")
	flags.StringVarP(&f.output, "output", "o", "", "staging CSV path; other outputs are written beside it")
	flags.StringVar(&f.outDir, "out-dir", "", "output directory")
	flags.StringVar(&f.pages, "pages", "", "pages to process, e.g. 1-3,5")
	flags.StringVar(&f.brand, "brand", "", "brand name added to SKUs")
	flags.StringVar(&f.skuPrefix, "sku-prefix", "", "leading SKU segment")
	flags.BoolVar(&f.strict, "strict", false, "disable the price-only fallback parser")
	flags.IntVar(&f.workers, "workers", 0, "pages parsed concurrently")
	flags.BoolVar(&f.sqlite, "sqlite", false, "also write staging.db")
	flags.BoolVar(&f.noImages, "no-images", false, "skip writing images and thumbnails")
	flags.BoolVar(&f.raw, "raw", false, "omit the sku column from the staging CSV")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
	return cmd
}

// apply overrides config values with the flags that were set.
func (f *extractFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("pdf") {
		cfg.PDF = f.pdf
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("out-dir") {
		cfg.OutDir = f.outDir
		cfg.Output = ""
	}
	if flags.Changed("pages") {
		cfg.Pages = f.pages
	}
	if flags.Changed("brand") {
		cfg.Brand = f.brand
	}
	if flags.Changed("sku-prefix") {
		cfg.SKUPrefix = f.skuPrefix
	}
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("sqlite") {
		cfg.SQLite = f.sqlite
	}
	if flags.Changed("no-images") {
		cfg.Images = !f.noImages
	}
	if flags.Changed("raw") {
		cfg.IncludeSKU = !f.raw
	}
}

func runExtract(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) error {
	if cfg.PDF != "" {
		if _, err := os.Stat(cfg.PDF); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", catalogstage.ErrInputNotFound, cfg.PDF)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	pages, _ := config.ParsePages(cfg.Pages)

	ext := catalogstage.Open(cfg.PDF).
		Pages(pages...).
		Brand(cfg.Brand).
		SKUPrefix(cfg.SKUPrefix).
		Workers(cfg.Workers).
		Logger(log)
	if cfg.Strict {
		ext = ext.Strict()
	}

	ctx := cmd.Context()
	result, warnings, err := ext.StageContext(ctx)
	if err != nil {
		return err
	}

	dir := cfg.OutDir
	opts := export.DefaultOptions()
	opts.Images = cfg.Images
	opts.SQLite = cfg.SQLite
	if !cfg.IncludeSKU {
		opts.CSV.Layout = export.LayoutRaw
	}
	if cfg.Output != "" {
		dir = filepath.Dir(cfg.Output)
		opts.StagingName = filepath.Base(cfg.Output)
	}

	paths, err := export.WriteDir(ctx, dir, export.Dataset{
		Records: result.Records,
		Chunks:  result.Chunks(),
		Slots:   result.Slots(),
		Report:  result.Report,
	}, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Staging CSV: %s\n", paths.Staging)
	fmt.Fprintf(out, "Review CSV:  %s\n", paths.Review)
	fmt.Fprintf(out, "Report:      %s\n", paths.Report)
	fmt.Fprintf(out, "Review page: %s\n", paths.HTML)
	if paths.Images != "" {
		fmt.Fprintf(out, "Images:      %s (%d)\n", paths.Images, len(result.Slots()))
	}
	if paths.SQLite != "" {
		fmt.Fprintf(out, "SQLite:      %s\n", paths.SQLite)
	}
	fmt.Fprintf(out, "Rows written: %d\n", len(result.Records))
	fmt.Fprintf(out, "Warnings:     %d\n", len(warnings))
	return nil
}
