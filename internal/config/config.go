// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foxcheck-cli/internal/issue"
	"foxcheck-cli/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "foxcheck"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "foxcheck"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// maxConfigFileSize caps foxcheck.cue well below the CUE parser default;
	// a real config is a few hundred bytes.
	maxConfigFileSize int64 = 1 << 20
)

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions resolves defaults, the optional config file and
// normalization into one Config.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("manifest.path", defaults.Manifest.Path)
	v.SetDefault("manifest.required_fields", defaults.Manifest.RequiredFields)
	v.SetDefault("manifest.schema_advisories", defaults.Manifest.SchemaAdvisories)
	v.SetDefault("required_files", defaults.RequiredFiles)
	v.SetDefault("polyfill.pattern", defaults.Polyfill.Pattern)
	v.SetDefault("polyfill.files", defaults.Polyfill.Files)
	v.SetDefault("ui.format", defaults.UI.Format)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.explain", defaults.UI.Explain)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("watch.ignore", defaults.Watch.Ignore)

	resolvedPath := ""

	// An explicit --config path must exist; the default file is optional.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'foxcheck config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		candidate := filepath.Join(opts.BaseDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(candidate) {
			resolvedPath = candidate
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'foxcheck config show' for an example").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = resolvedPath

	if err := cfg.Normalize(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Use paths relative to the extension root, without '..'").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Unify(configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
		cueutil.WithMaxFileSize(maxConfigFileSize),
	)
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults for omitted keys)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a foxcheck.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// foxcheck configuration\n")
	sb.WriteString("// Place this file at the extension root as foxcheck.cue.\n\n")

	sb.WriteString("manifest: {\n")
	fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Manifest.Path)
	fmt.Fprintf(&sb, "\trequired_fields: %s\n", cueList(cfg.Manifest.RequiredFields, "\t"))
	fmt.Fprintf(&sb, "\tschema_advisories: %v\n", cfg.Manifest.SchemaAdvisories)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\nrequired_files: %s\n", cueList(cfg.RequiredFiles, ""))

	sb.WriteString("\npolyfill: {\n")
	fmt.Fprintf(&sb, "\tpattern: %q\n", cfg.Polyfill.Pattern)
	fmt.Fprintf(&sb, "\tfiles: %s\n", cueList(cfg.Polyfill.Files, "\t"))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.UI.Format)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\texplain: %v\n", cfg.UI.Explain)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	fmt.Fprintf(&sb, "\tignore: %s\n", cueList(cfg.Watch.Ignore, "\t"))
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string, indent string) string {
	if len(items) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteString("[\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "%s\t%q,\n", indent, item)
	}
	sb.WriteString(indent + "]")
	return sb.String()
}
