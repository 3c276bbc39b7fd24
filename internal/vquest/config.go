package vquest

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Option names read or written by the client
const (
	OptSpecies             = "species"
	OptReceptorOrLocusType = "receptorOrLocusType"
	OptResultType          = "resultType"
	OptOutputType          = "xv_outputtype"
	OptSequences           = "sequences"
	OptFileSequences       = "fileSequences"
	OptInputType           = "inputType"
)

// The one result format the collapse rules understand: AIRR output in an
// excel-type ZIP download
const (
	SupportedResultType = "excel"
	SupportedOutputType = 3
)

// InputInline is the inputType every chunk is submitted with
const InputInline = "inline"

// Config is a fully merged V-QUEST option set.
// Extra holds every other option and is forwarded to the form untouched.
type Config struct {
	Species             string
	ReceptorOrLocusType string
	ResultType          string
	OutputType          int
	Sequences           string
	FileSequences       string
	InputType           string
	Extra               map[string]any
}

// ConfigFromOptions builds a Config from a flat option mapping such as a
// layered YAML config
func ConfigFromOptions(opts map[string]any) (Config, error) {
	cfg := Config{Extra: make(map[string]any)}

	for key, val := range opts {
		if val == nil {
			continue
		}

		switch key {
		case OptSpecies:
			cfg.Species = scalarString(val)
		case OptReceptorOrLocusType:
			cfg.ReceptorOrLocusType = scalarString(val)
		case OptResultType:
			cfg.ResultType = scalarString(val)
		case OptOutputType:
			n, err := scalarInt(val)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", OptOutputType, err)
			}
			cfg.OutputType = n
		case OptSequences:
			cfg.Sequences = scalarString(val)
		case OptFileSequences:
			cfg.FileSequences = scalarString(val)
		case OptInputType:
			cfg.InputType = scalarString(val)
		default:
			cfg.Extra[key] = val
		}
	}

	return cfg, nil
}

// ValidateRequired checks the options V-QUEST cannot run without
func (c Config) ValidateRequired() error {
	if c.Species == "" || c.ReceptorOrLocusType == "" || (c.Sequences == "" && c.FileSequences == "") {
		return ErrMissingRequiredOption
	}

	return nil
}

// ValidateResultFormat checks for the supported resultType/xv_outputtype pair
func (c Config) ValidateResultFormat() error {
	if c.ResultType == SupportedResultType && c.OutputType == SupportedOutputType {
		return nil
	}

	observedOutput := "unset"
	if c.OutputType != 0 {
		observedOutput = strconv.Itoa(c.OutputType)
	}

	observedResult := c.ResultType
	if observedResult == "" {
		observedResult = "unset"
	}

	return fmt.Errorf("%w: only %s=%s %s=%d currently supported, not %s=%s %s=%s",
		ErrUnsupportedResultFormat,
		OptResultType, SupportedResultType, OptOutputType, SupportedOutputType,
		OptResultType, observedResult, OptOutputType, observedOutput)
}

// forChunk returns a copy with the sequences replaced and the input type forced inline
func (c Config) forChunk(sequences string) Config {
	chunk := c
	chunk.Sequences = sequences
	chunk.InputType = InputInline

	return chunk
}

// Form renders the config as V-QUEST form fields. Empty fields are omitted.
func (c Config) Form() url.Values {
	form := url.Values{}

	set := func(key, val string) {
		if val != "" {
			form.Set(key, val)
		}
	}

	set(OptSpecies, c.Species)
	set(OptReceptorOrLocusType, c.ReceptorOrLocusType)
	set(OptResultType, c.ResultType)
	if c.OutputType != 0 {
		form.Set(OptOutputType, strconv.Itoa(c.OutputType))
	}
	set(OptSequences, c.Sequences)
	set(OptFileSequences, c.FileSequences)
	set(OptInputType, c.InputType)

	// core fields own their keys; a stale Extra copy must not override a chunk
	for key, val := range c.Extra {
		if val == nil || isCoreOption(key) {
			continue
		}
		form.Set(key, scalarString(val))
	}

	return form
}

func isCoreOption(key string) bool {
	switch key {
	case OptSpecies, OptReceptorOrLocusType, OptResultType, OptOutputType,
		OptSequences, OptFileSequences, OptInputType:
		return true
	}

	return false
}

// String lists the options as key=value pairs in a stable order, without sequence text
func (c Config) String() string {
	form := c.Form()
	if form.Has(OptSequences) {
		form.Set(OptSequences, fmt.Sprintf("<%d bytes>", len(c.Sequences)))
	}

	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+form.Get(key))
	}

	return strings.Join(pairs, " ")
}

func scalarString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func scalarInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
