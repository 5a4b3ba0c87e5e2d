package intents

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultErrorMessage is used for intents without an error_msg.
const DefaultErrorMessage = "Etwas ist schiefgelaufen, tut mir leid."

//go:embed schema.json
var schema []byte

// Intent is one entry of the dataset.
type Intent struct {
	Tag       string   `yaml:"tag" json:"tag"`
	Patterns  []string `yaml:"patterns" json:"patterns"`
	Responses []string `yaml:"responses" json:"responses"`
	Action    *string  `yaml:"action" json:"action"`
	ErrorMsg  *string  `yaml:"error_msg" json:"error_msg"`
	// Spans are regular expressions whose named groups part1..part3 mark the
	// important parts of a matching message.
	Spans []string `yaml:"spans" json:"spans"`
}

// ErrorText returns ErrorMsg or DefaultErrorMessage.
func (i Intent) ErrorText() string {
	if i.ErrorMsg == nil || *i.ErrorMsg == "" {
		return DefaultErrorMessage
	}
	return *i.ErrorMsg
}

// Dataset is the intent file: {"intents": [...]}.
type Dataset struct {
	Intents []Intent `yaml:"intents" json:"intents"`
}

// Load reads a dataset (YAML or JSON, by extension) and validates it.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intents: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// Parse decodes and validates a dataset.
func Parse(data []byte, isJSON bool) (*Dataset, error) {
	unmarshal := yaml.Unmarshal
	if isJSON {
		unmarshal = json.Unmarshal
	}

	var raw map[string]any
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse intents: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var ds Dataset
	if err := unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse intents: %w", err)
	}
	return &ds, nil
}

func validate(doc map[string]any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("invalid intents dataset: %v", errs)
	}
	return nil
}
