package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sunseo/internal/logger"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Data      DataConfig     `toml:"data"`
	Log       LogConfig      `toml:"log"`
	Generate  GenerateConfig `toml:"generate"`
	AI        AIConfig       `toml:"ai"`
	Templates TemplateConfig `toml:"templates"`
	Report    ReportConfig   `toml:"report"`
}

type DataConfig struct {
	Directory    string `toml:"directory" validate:"required"`
	BrandMapFile string `toml:"brand_map_file" validate:"required"`
}

type LogConfig struct {
	Directory string `toml:"directory" validate:"required"`
	Level     string `toml:"level" validate:"oneof=debug info warn error"`
}

// GenerateConfig holds the defaults used when a run does not override them.
type GenerateConfig struct {
	Collection string `toml:"collection"`
	Quality    string `toml:"quality" validate:"oneof=low medium premium"`
	Length     string `toml:"length" validate:"oneof=short normal long"`
	Style      string `toml:"style" validate:"oneof=normal premium"`
	UseAI      bool   `toml:"use_ai"`
}

type AIConfig struct {
	Model       string  `toml:"model" validate:"required"`
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=2"`
	APIKeyEnv   string  `toml:"api_key_env" validate:"required"`
}

// TemplateConfig holds ${...} texts evaluated per row. Available names are
// brand, model, collection, description, quality, length and style.
type TemplateConfig struct {
	Name              string `toml:"name" validate:"required"`
	Description       string `toml:"description" validate:"required"`
	NamePrompt        string `toml:"name_prompt" validate:"required"`
	DescriptionPrompt string `toml:"description_prompt" validate:"required"`
}

type ReportConfig struct {
	SaveToFile bool `toml:"save_to_file"`
}

const (
	DefaultNameTemplate              = "Солнцезащитные очки ${brand} ${model} ${collection} стильные с UV защитой"
	DefaultDescriptionTemplate       = "${description}\nКупить ${brand} ${collection} по выгодной цене..."
	DefaultNamePromptTemplate        = "SEO-название для очков ${brand} ${model} ${collection} (стиль: ${style}, длина: ${length})"
	DefaultDescriptionPromptTemplate = "SEO-описание для очков ${brand} ${model} ${collection} (качество: ${quality}, длина: ${length})"
)

// Default returns the configuration written on first start.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Directory:    "data",
			BrandMapFile: "brands_ru.json",
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
		Generate: GenerateConfig{
			Collection: "Весна-Лето 2026",
			Quality:    "medium",
			Length:     "normal",
			Style:      "normal",
		},
		AI: AIConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.7,
			APIKeyEnv:   "GEMINI_API_KEY",
		},
		Templates: TemplateConfig{
			Name:              DefaultNameTemplate,
			Description:       DefaultDescriptionTemplate,
			NamePrompt:        DefaultNamePromptTemplate,
			DescriptionPrompt: DefaultDescriptionPromptTemplate,
		},
	}
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// applyDefaults fills every zero field from Default.
func (c *Config) applyDefaults() {
	d := Default()

	if c.Data.Directory == "" {
		c.Data.Directory = d.Data.Directory
	}
	if c.Data.BrandMapFile == "" {
		c.Data.BrandMapFile = d.Data.BrandMapFile
	}
	if c.Log.Directory == "" {
		c.Log.Directory = d.Log.Directory
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Generate.Quality == "" {
		c.Generate.Quality = d.Generate.Quality
	}
	if c.Generate.Length == "" {
		c.Generate.Length = d.Generate.Length
	}
	if c.Generate.Style == "" {
		c.Generate.Style = d.Generate.Style
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
	if c.AI.APIKeyEnv == "" {
		c.AI.APIKeyEnv = d.AI.APIKeyEnv
	}
	if c.Templates.Name == "" {
		c.Templates.Name = d.Templates.Name
	}
	if c.Templates.Description == "" {
		c.Templates.Description = d.Templates.Description
	}
	if c.Templates.NamePrompt == "" {
		c.Templates.NamePrompt = d.Templates.NamePrompt
	}
	if c.Templates.DescriptionPrompt == "" {
		c.Templates.DescriptionPrompt = d.Templates.DescriptionPrompt
	}
}

// Validate checks the struct tags of the whole configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// BrandMapPath is the location of the persisted brand map.
func (c *Config) BrandMapPath() string {
	return filepath.Join(c.Data.Directory, c.Data.BrandMapFile)
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
