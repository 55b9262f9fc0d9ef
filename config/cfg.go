package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	validator "github.com/go-playground/validator/v10"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"fstyle/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	StylesConfig struct {
		// Breakpoint enables narrow screen overrides in generated stylesheets.
		Breakpoint            bool                         `yaml:"breakpoint"`
		PlaceholderTransition common.PlaceholderTransition `yaml:"placeholder_transition" validate:"omitempty,oneof=none shrink_top"`
		// Defaults are style properties every element starts with, element
		// styles are put on top of them.
		Defaults map[string]any `yaml:"defaults"`
	}

	DocumentConfig struct {
		StylesheetPath        string       `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		ClassPrefix           string       `yaml:"class_prefix"`
		Styles                StylesConfig `yaml:"styles"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// ParseNameTemplate prepares output name template, slim-sprig functions are
// available to it.
func ParseNameTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New(string(OutputNameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", OutputNameTemplateFieldName, err)
	}
	return tmpl, nil
}

// checkConfig performs validations which could not be expressed with tags.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	doc := cfg.Document
	if doc.OutputNameTemplate != "" {
		if _, err := ParseNameTemplate(doc.OutputNameTemplate); err != nil {
			sl.ReportError(doc.OutputNameTemplate, "Document.OutputNameTemplate", "OutputNameTemplate", "template", "")
		}
	}
	if doc.ClassPrefix != "" && slug.Make(doc.ClassPrefix) != doc.ClassPrefix {
		sl.ReportError(doc.ClassPrefix, "Document.ClassPrefix", "ClassPrefix", "slug", "")
	}
	for name, value := range doc.Styles.Defaults {
		switch value.(type) {
		case map[string]any, []any:
			sl.ReportError(value, "Document.Styles.Defaults."+name, name, "scalar", "")
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
