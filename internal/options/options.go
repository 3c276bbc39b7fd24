// Package options holds the V-QUEST option metadata and default values and
// layers option mappings read from YAML config files.
package options

import (
	"embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/options.yml data/defaults.yml
var dataFS embed.FS

var (
	// ErrInvalidConfig is returned for config files that cannot be read or are not a YAML mapping
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidValue is returned when a command-line value does not fit its option
	ErrInvalidValue = errors.New("invalid option value")

	// ErrUnknownType is returned for option metadata with an unrecognised value type
	ErrUnknownType = errors.New("unknown option type")
)

// ValueType is the declared type of a free-form option
type ValueType string

const (
	TypeInt    ValueType = "int"
	TypeBool   ValueType = "bool"
	TypeString ValueType = "str"
)

// Option describes one V-QUEST form field. Exactly one of Type and Choices is set.
type Option struct {
	Name        string
	Description string
	Type        ValueType
	Choices     []any
}

// Section groups related options the way the V-QUEST form does
type Section struct {
	Name        string
	Description string
	Options     []Option
}

var (
	loadSections = sync.OnceValue(func() []Section {
		var sections []Section
		mustDecode("data/options.yml", &sections)

		return sections
	})

	loadDefaults = sync.OnceValue(func() map[string]any {
		defaults := make(map[string]any)
		mustDecode("data/defaults.yml", &defaults)

		return defaults
	})
)

func mustDecode(name string, out any) {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		panic(err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("decoding %s: %v", name, err))
	}
}

// Sections returns a copy of the option metadata in form order
func Sections() []Section {
	src := loadSections()
	sections := make([]Section, len(src))

	for i, sec := range src {
		sections[i] = sec
		sections[i].Options = make([]Option, len(sec.Options))

		for j, opt := range sec.Options {
			opt.Choices = slices.Clone(opt.Choices)
			sections[i].Options[j] = opt
		}
	}

	return sections
}

// Defaults returns a copy of the default option values
func Defaults() map[string]any {
	return maps.Clone(loadDefaults())
}

// Lookup finds an option by its form field name
func Lookup(name string) (Option, bool) {
	for _, sec := range loadSections() {
		for _, opt := range sec.Options {
			if opt.Name == name {
				opt.Choices = slices.Clone(opt.Choices)
				return opt, true
			}
		}
	}

	return Option{}, false
}

// Load reads a YAML config file holding a flat option mapping.
// An empty file yields an empty mapping.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	config := make(map[string]any)
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// Layer merges the mappings left to right, later keys winning.
// The inputs are not modified.
func Layer(configs ...map[string]any) map[string]any {
	merged := make(map[string]any)

	for _, config := range configs {
		maps.Copy(merged, config)
	}

	return merged
}

// Parse converts a command-line value according to the option's type or choices
func (o *Option) Parse(raw string) (any, error) {
	if len(o.Choices) > 0 {
		for _, choice := range o.Choices {
			if fmt.Sprint(choice) == raw {
				return choice, nil
			}
		}

		return nil, fmt.Errorf("%w: %q for %s (choose from %s)", ErrInvalidValue, raw, o.Name, o.choiceList())
	}

	switch o.Type {
	case TypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q for %s is not an integer", ErrInvalidValue, raw, o.Name)
		}

		return n, nil
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q for %s is not a boolean", ErrInvalidValue, raw, o.Name)
		}

		return b, nil
	default:
		return raw, nil
	}
}

// Usage is the help text for the option's flag
func (o *Option) Usage() string {
	if len(o.Choices) > 0 {
		return fmt.Sprintf("%s {%s}", o.Description, o.choiceList())
	}

	return fmt.Sprintf("%s (%s)", o.Description, o.Type)
}

func (o *Option) choiceList() string {
	names := make([]string, len(o.Choices))
	for i, choice := range o.Choices {
		names[i] = fmt.Sprint(choice)
	}

	return strings.Join(names, ", ")
}

type optionYAML struct {
	Description string    `yaml:"description"`
	Values      yaml.Node `yaml:"values"`
}

func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	var raw optionYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	o.Description = raw.Description

	switch raw.Values.Kind {
	case yaml.ScalarNode:
		switch t := ValueType(raw.Values.Value); t {
		case TypeInt, TypeBool, TypeString:
			o.Type = t
		default:
			return fmt.Errorf("%w %q at line %d", ErrUnknownType, raw.Values.Value, raw.Values.Line)
		}
	case yaml.SequenceNode:
		if err := raw.Values.Decode(&o.Choices); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: option at line %d has no values", ErrUnknownType, node.Line)
	}

	return nil
}

func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Section     string    `yaml:"section"`
		Description string    `yaml:"description"`
		Options     yaml.Node `yaml:"options"`
	}

	if err := node.Decode(&raw); err != nil {
		return err
	}

	if raw.Options.Kind != yaml.MappingNode {
		return fmt.Errorf("section %q: options must be a mapping", raw.Section)
	}

	s.Name = raw.Section
	s.Description = raw.Description

	// mapping node content alternates key and value; decoding pair by pair keeps form order
	for i := 0; i+1 < len(raw.Options.Content); i += 2 {
		opt := Option{Name: raw.Options.Content[i].Value}
		if err := raw.Options.Content[i+1].Decode(&opt); err != nil {
			return fmt.Errorf("option %s: %w", opt.Name, err)
		}

		s.Options = append(s.Options, opt)
	}

	return nil
}
