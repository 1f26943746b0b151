// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/bomcopy/pkg/bom"
	"github.com/walteh/bomcopy/pkg/index"
	"github.com/walteh/bomcopy/pkg/naming"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultLogFile is where session logs go when no log file is configured.
const DefaultLogFile = "log.txt"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.Base("invalid configuration")

// 🔌 Parser is the interface for config formats
type Parser interface {
	// 📝 Parse parses the config from bytes, on top of the defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 💾 Encode renders the config in this format
	Encode(cfg *Config) ([]byte, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the BOM layout, naming rule, copy behaviour and remembered paths.
type Config struct {
	// BOM layout, 1-based columns
	DocumentNameColumn int `json:"document_name_column" yaml:"document_name_column" hcl:"document_name_column,optional"`
	MaterialColumn     int `json:"material_column" yaml:"material_column" hcl:"material_column,optional"`
	QuantityColumn     int `json:"quantity_column" yaml:"quantity_column" hcl:"quantity_column,optional"`
	HeaderRows         int `json:"header_rows" yaml:"header_rows" hcl:"header_rows,optional"`

	// Naming rule
	BomFileExtension    string `json:"bom_file_extension" yaml:"bom_file_extension" hcl:"bom_file_extension,optional"`
	FilenameSuffix      string `json:"filename_suffix" yaml:"filename_suffix" hcl:"filename_suffix,optional"`
	TargetFileExtension string `json:"target_file_extension" yaml:"target_file_extension" hcl:"target_file_extension,optional"`

	OverwriteExisting bool `json:"overwrite_existing" yaml:"overwrite_existing" hcl:"overwrite_existing,optional"`

	SourceDirectory string `json:"source_directory" yaml:"source_directory" hcl:"source_directory,optional"`
	TargetDirectory string `json:"target_directory" yaml:"target_directory" hcl:"target_directory,optional"`
	LastBomFile     string `json:"last_bom_file" yaml:"last_bom_file" hcl:"last_bom_file,optional"`

	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns" hcl:"ignore_patterns,optional"` // Glob patterns for source files to ignore
	LogFile        string   `json:"log_file" yaml:"log_file" hcl:"log_file,optional"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		DocumentNameColumn:  2,
		MaterialColumn:      12,
		QuantityColumn:      6,
		HeaderRows:          2,
		BomFileExtension:    ".SLDPRT",
		FilenameSuffix:      "FLO",
		TargetFileExtension: ".dwg",
		OverwriteExisting:   true,
		LogFile:             DefaultLogFile,
	}
}

// 🎯 Load loads the configuration from a file. A missing file yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Read config file
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("path", path).Msg("no configuration file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and normalizes it in place: extensions gain a
// leading dot, text fields are trimmed and an empty log file falls back to the default.
func (cfg *Config) Validate() error {
	if err := cfg.Layout().Validate(); err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}

	for _, pattern := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: ignore pattern %q is malformed", ErrInvalid, pattern)
		}
	}

	// Clean up values
	cfg.BomFileExtension = naming.NormalizeExtension(cfg.BomFileExtension)
	cfg.TargetFileExtension = naming.NormalizeExtension(cfg.TargetFileExtension)
	cfg.FilenameSuffix = strings.TrimSpace(cfg.FilenameSuffix)
	cfg.SourceDirectory = cleanPath(cfg.SourceDirectory)
	cfg.TargetDirectory = cleanPath(cfg.TargetDirectory)
	cfg.LastBomFile = cleanPath(cfg.LastBomFile)

	// Set defaults
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = DefaultLogFile
	}

	return nil
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// Layout returns the BOM column mapping.
func (cfg *Config) Layout() bom.Layout {
	return bom.Layout{
		NameColumn:     cfg.DocumentNameColumn,
		MaterialColumn: cfg.MaterialColumn,
		QuantityColumn: cfg.QuantityColumn,
		HeaderRows:     cfg.HeaderRows,
	}
}

// NamingRule returns the normalized naming rule.
func (cfg *Config) NamingRule() naming.Rule {
	return naming.NewRule(cfg.BomFileExtension, cfg.FilenameSuffix, cfg.TargetFileExtension)
}

// IndexOptions returns the directory scan options.
func (cfg *Config) IndexOptions() index.Options {
	return index.Options{IgnorePatterns: cfg.IgnorePatterns}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("name=%d material=%d qty=%d skip=%d  *%s -> {,%s}%s",
		cfg.DocumentNameColumn, cfg.MaterialColumn, cfg.QuantityColumn, cfg.HeaderRows,
		cfg.BomFileExtension, cfg.FilenameSuffix, cfg.TargetFileExtension)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// an empty document leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

func (p *YAMLParser) Encode(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	return data, nil
}
