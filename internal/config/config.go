package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultInterpreter  = "python3"
	DefaultToolsDir     = "tools"
	DefaultPreviewLines = 12
	DefaultPreviewBytes = 2000
)

// Config holds runtime configuration values.
type Config struct {
	Root         string
	Interpreter  string
	ToolsDir     string
	Verbose      bool
	Quiet        bool
	JSON         bool
	LogFile      string
	PersistCalls bool
	CallsDir     string
	PreviewLines int
	PreviewBytes int
}

type rawConfig struct {
	Root         string `mapstructure:"root"`
	Interpreter  string `mapstructure:"interpreter"`
	ToolsDir     string `mapstructure:"tools_dir"`
	Verbose      bool   `mapstructure:"verbose"`
	Quiet        bool   `mapstructure:"quiet"`
	JSON         bool   `mapstructure:"json"`
	OutputFormat string `mapstructure:"output_format"`
	LogFile      string `mapstructure:"log_file"`
	PersistCalls bool   `mapstructure:"persist_calls"`
	CallsDir     string `mapstructure:"calls_dir"`
	PreviewLines int    `mapstructure:"preview_lines"`
	PreviewBytes int    `mapstructure:"preview_bytes"`
}

// Load resolves configuration from defaults, config files, env, and flags.
// Flags are looked up on cmd (local and persistent); unknown flags are skipped.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("root", "")
	v.SetDefault("interpreter", DefaultInterpreter)
	v.SetDefault("tools_dir", DefaultToolsDir)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("json", false)
	v.SetDefault("output_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("persist_calls", false)
	v.SetDefault("calls_dir", "")
	v.SetDefault("preview_lines", DefaultPreviewLines)
	v.SetDefault("preview_bytes", DefaultPreviewBytes)

	if cmd != nil {
		bind := func(key, flag string) {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
		bind("root", "root")
		bind("interpreter", "interpreter")
		bind("tools_dir", "tools-dir")
		bind("verbose", "verbose")
		bind("quiet", "quiet")
		bind("json", "json")
		bind("log_file", "log-file")
		bind("persist_calls", "persist-calls")
	}

	// PYTHON picks the interpreter when HNET_INTERPRETER is unset.
	if python := os.Getenv("PYTHON"); python != "" && os.Getenv("HNET_INTERPRETER") == "" {
		v.SetDefault("interpreter", python)
	}

	if err := loadConfigFile(v); err != nil {
		return Config{}, err
	}

	var raw rawConfig
	decoder, _ := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &raw, WeaklyTypedInput: true})
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Config{}, err
	}

	jsonOutput := raw.JSON
	if cmd != nil && cmd.Flags().Changed("json") {
		jsonOutput = v.GetBool("json")
	} else if strings.EqualFold(raw.OutputFormat, "json") {
		jsonOutput = true
	}

	cfg := Config{
		Root:         raw.Root,
		Interpreter:  raw.Interpreter,
		ToolsDir:     raw.ToolsDir,
		Verbose:      raw.Verbose,
		Quiet:        raw.Quiet,
		JSON:         jsonOutput,
		LogFile:      raw.LogFile,
		PersistCalls: raw.PersistCalls,
		CallsDir:     raw.CallsDir,
		PreviewLines: raw.PreviewLines,
		PreviewBytes: raw.PreviewBytes,
	}

	if strings.TrimSpace(cfg.ToolsDir) == "" {
		cfg.ToolsDir = DefaultToolsDir
	}
	if cfg.PreviewLines <= 0 {
		cfg.PreviewLines = DefaultPreviewLines
	}
	if cfg.PreviewBytes <= 0 {
		cfg.PreviewBytes = DefaultPreviewBytes
	}
	if cfg.CallsDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CallsDir = filepath.Join(home, ".local", "share", "hnet-mcp", "calls")
		}
	}

	return cfg, nil
}

func loadConfigFile(v *viper.Viper) error {
	if path := os.Getenv("HNET_CONFIG"); path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	base := filepath.Join(configDir, "hnet-mcp")
	candidates := []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
		filepath.Join(base, "config.json"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
			return nil
		}
	}
	return nil
}
