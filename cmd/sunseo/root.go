package main

import (
	"fmt"
	"sunseo/internal/brand"
	"sunseo/internal/config"
	"sunseo/internal/generator"
	"sunseo/internal/lists"
	"sunseo/internal/logger"
	"sunseo/internal/rewrite"

	"github.com/spf13/cobra"
)

var configPath string

// app is built once per invocation by the root PersistentPreRunE.
var app *application

type application struct {
	cfg      *config.Config
	brandMap *brand.MapStore
	lists    *lists.Store
	rewriter *rewrite.Rewriter
}

var rootCmd = &cobra.Command{
	Use:   "sunseo",
	Short: "Rewrite brand, name and description columns of sunglasses listings",
	Long: `Sunglasses SEO PRO

Opens an .xlsx product listing, rewrites the Бренд, Название and Описание
columns with templated or AI generated text and writes <file>_seo.xlsx.`,
	Example: `
  # Rewrite a listing with the defaults from configs/config.toml
  sunseo run catalog.xlsx --brand Gucci --collection "Весна-Лето 2026"

  # Preview the first row
  sunseo preview catalog.xlsx --brand Gucci

  # Rewrite every listing in a directory
  sunseo run-all data/input --brand Prada --plain
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication(configPath)
		if err != nil {
			return err
		}
		app = a

		if added, err := app.syncBrands(); err != nil {
			logger.Warn("Failed to sync brand map", "error", err)
		} else if added > 0 {
			logger.Info("Brand map synced", "added", added)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the TOML configuration file")
}

func newApplication(path string) (*application, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if err := logger.Setup(cfg.Log.Directory, cfg.Log.Level); err != nil {
		return nil, err
	}

	brandMap := brand.NewMapStore(cfg.BrandMapPath())
	if err := brandMap.Load(); err != nil {
		return nil, err
	}

	templates, err := rewrite.NewTemplates(cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("invalid templates: %w", err)
	}

	return &application{
		cfg:      cfg,
		brandMap: brandMap,
		lists:    lists.NewStore(cfg.Data.Directory),
		rewriter: rewrite.New(brand.NewLocalizer(brandMap), generatorSource(cfg.AI), templates),
	}, nil
}

// generatorSource picks the generator implementation once, from configuration.
func generatorSource(cfg config.AIConfig) generator.Source {
	apiKey := generator.APIKeyFromEnv(cfg.APIKeyEnv)
	if apiKey == "" {
		return generator.None{}
	}
	return generator.NewGeminiSource(generator.GeminiConfig{
		APIKey:      apiKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	})
}

// syncBrands makes sure every brand in the brands list has a map entry.
func (a *application) syncBrands() (int, error) {
	names, err := a.lists.Load(lists.Brands, lists.Defaults[lists.Brands])
	if err != nil {
		return 0, err
	}
	return brand.Sync(a.brandMap, names)
}
