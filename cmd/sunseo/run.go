package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sunseo/internal/excel"
	"sunseo/internal/lists"
	"sunseo/internal/logger"
	"sunseo/internal/rewrite"
	"sunseo/internal/tui"
	"sunseo/internal/worker"

	"github.com/spf13/cobra"
)

type runFlags struct {
	brand      string
	collection string
	quality    string
	length     string
	style      string
	useAI      bool
	plain      bool
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run <input.xlsx>",
	Short: "Rewrite one workbook into <file>_seo.xlsx",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOpts.options(cmd)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		queue := worker.NewQueue(1)
		defer queue.Close()

		_, err = runOne(cmd.Context(), queue, args[0], opts, runOpts.plain)
		return err
	},
}

var runAllCmd = &cobra.Command{
	Use:   "run-all <dir>",
	Short: "Rewrite every .xlsx workbook in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOpts.options(cmd)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		return runAll(cmd.Context(), args[0], opts)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, runAllCmd} {
		addOptionFlags(cmd)
		cmd.Flags().BoolVar(&runOpts.useAI, "ai", false, "Generate text with the configured AI model")
		rootCmd.AddCommand(cmd)
	}
	// run-all always prints plain progress
	runCmd.Flags().BoolVar(&runOpts.plain, "plain", false, "Print progress lines instead of the interactive view")
}

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runOpts.brand, "brand", "", "Brand written into the Бренд column (default: first entry of the brands list)")
	cmd.Flags().StringVar(&runOpts.collection, "collection", "", "Collection label (default from config)")
	cmd.Flags().StringVar(&runOpts.quality, "quality", "", "low, medium or premium (default from config)")
	cmd.Flags().StringVar(&runOpts.length, "length", "", "short, normal or long (default from config)")
	cmd.Flags().StringVar(&runOpts.style, "style", "", "normal or premium (default from config)")
}

// options merges explicitly set flags over the configured defaults. Without
// --brand the first entry of the brands list is used.
func (f runFlags) options(cmd *cobra.Command) (rewrite.Options, error) {
	gen := app.cfg.Generate
	opts := rewrite.Options{
		Brand:        strings.TrimSpace(f.brand),
		Collection:   gen.Collection,
		Quality:      rewrite.Quality(gen.Quality),
		Length:       rewrite.Length(gen.Length),
		Style:        rewrite.Style(gen.Style),
		UseGenerator: gen.UseAI,
	}

	flags := cmd.Flags()
	if flags.Changed("collection") {
		opts.Collection = f.collection
	}
	if flags.Changed("quality") {
		opts.Quality = rewrite.Quality(f.quality)
	}
	if flags.Changed("length") {
		opts.Length = rewrite.Length(f.length)
	}
	if flags.Changed("style") {
		opts.Style = rewrite.Style(f.style)
	}
	if flags.Lookup("ai") != nil && flags.Changed("ai") {
		opts.UseGenerator = f.useAI
	}

	if opts.Brand == "" {
		brands, err := app.lists.Load(lists.Brands, lists.Defaults[lists.Brands])
		if err != nil {
			return opts, err
		}
		if len(brands) == 0 {
			return opts, fmt.Errorf("no brand given and the brands list is empty")
		}
		opts.Brand = brands[0]
	}
	return opts, nil
}

func runOne(ctx context.Context, queue *worker.Queue, input string, opts rewrite.Options, plain bool) (*rewrite.Result, error) {
	logger.Info("Starting run", "input", input, "brand", opts.Brand, "use_ai", opts.UseGenerator)

	task := queue.Submit(ctx, func(ctx context.Context, progress rewrite.ProgressFunc) (*rewrite.Result, error) {
		return app.rewriter.ProcessFile(ctx, input, opts, progress)
	})

	var (
		res *rewrite.Result
		err error
	)
	if plain {
		last := -1
		res, err = task.Wait(func(p float64) {
			// one line per 10%
			if step := int(p) / 10; step != last {
				last = step
				fmt.Printf("  %3.0f%%\n", p)
			}
		})
		if err == nil {
			fmt.Printf("%s\n", res.Report)
		}
	} else {
		var outcome worker.Outcome
		outcome, err = tui.RunProgressTUI(task, input)
		if err == nil {
			res, err = outcome.Result, outcome.Err
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Run cancelled", "input", input)
			return nil, fmt.Errorf("отменено: %s", input)
		}
		logger.Error("Run failed", "input", input, "error", err)
		return nil, err
	}

	fmt.Printf("✓ Файл создан: %s (%d строк)\n", res.OutputPath, res.Rows)

	if app.cfg.Report.SaveToFile {
		reportPath := rewrite.ReportPath(res.OutputPath)
		if err := rewrite.SaveReport(reportPath, input, res, opts); err != nil {
			logger.Error("Failed to save report", "path", reportPath, "error", err)
			fmt.Printf("❌ Не удалось сохранить отчёт: %v\n", err)
		} else {
			fmt.Printf("✓ Отчёт: %s\n", reportPath)
		}
	}
	return res, nil
}

func runAll(ctx context.Context, dir string, opts rewrite.Options) error {
	logger.Info("Starting run-all operation", "directory", dir)

	files, err := excel.FindWorkbooks(dir)
	if err != nil {
		logger.Error("Failed to get Excel files", "error", err)
		return fmt.Errorf("error getting Excel files: %w", err)
	}
	if len(files) == 0 {
		fmt.Printf("No .xlsx files found in directory: %s\n", dir)
		return nil
	}

	queue := worker.NewQueue(1)
	defer queue.Close()

	successCount := 0
	errorCount := 0
	for i, input := range files {
		if ctx.Err() != nil {
			break
		}
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(files), filepath.Base(input))

		if _, err := runOne(ctx, queue, input, opts, true); err != nil {
			fmt.Printf("❌ %v\n", err)
			errorCount++
			continue
		}
		successCount++
	}

	logger.Info("Run-all operation completed",
		"success_count", successCount,
		"error_count", errorCount)

	fmt.Printf("\n========================================\n")
	fmt.Printf("✓ Success: %d files\n", successCount)
	if errorCount > 0 {
		fmt.Printf("❌ Errors: %d files\n", errorCount)
	}
	return ctx.Err()
}
