package command

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileExtension is the only extension loaded from a commands directory.
const FileExtension = ".yaml"

// Command is one declarative tool definition. It is exposed to MCP clients as a
// tool of the same name.
type Command struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Description string      `yaml:"description"`
	Parameters  []Parameter `yaml:"parameters"`
	// Prompt is the template body. It is returned verbatim by tools/call.
	Prompt string `yaml:"prompt"`
}

// Parameter is one declared input slot of a Command.
type Parameter struct {
	Name string `yaml:"name"`
	// Type is an opaque tag; nothing in the server interprets it.
	Type        string  `yaml:"type"`
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required"`
	Default     *string `yaml:"default,omitempty"`
}

// commandDocument mirrors the file layout with pointer fields so that absent
// keys can be told apart from empty values.
type commandDocument struct {
	Name        *string             `yaml:"name"`
	Version     *string             `yaml:"version"`
	Description *string             `yaml:"description"`
	Parameters  []parameterDocument `yaml:"parameters"`
	Prompt      *string             `yaml:"prompt"`
}

type parameterDocument struct {
	Name        *string `yaml:"name"`
	Type        *string `yaml:"type"`
	Description *string `yaml:"description"`
	Required    *bool   `yaml:"required"`
	Default     *string `yaml:"default"`
}

// IsCommandFile reports whether a directory entry name is eligible for loading.
// The extension must be exactly ".yaml" and there must be a stem before it, so
// a file named ".yaml" is not a command file.
func IsCommandFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == FileExtension && len(name) > len(ext)
}

// Parse decodes a single command document. Unknown keys are ignored; only the
// first YAML document in data is read.
func Parse(data []byte) (*Command, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("content is not valid UTF-8")
	}

	var doc commandDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid command document: %w", err)
	}

	return doc.toCommand()
}

func (d *commandDocument) toCommand() (*Command, error) {
	fields := []struct {
		key   string
		value *string
	}{
		{"name", d.Name},
		{"version", d.Version},
		{"description", d.Description},
		{"prompt", d.Prompt},
	}
	for _, f := range fields {
		if f.value == nil {
			return nil, fmt.Errorf("missing required field %q", f.key)
		}
	}

	if *d.Name == "" {
		return nil, fmt.Errorf("field \"name\" must not be empty")
	}

	cmd := &Command{
		Name:        *d.Name,
		Version:     *d.Version,
		Description: *d.Description,
		Prompt:      *d.Prompt,
		Parameters:  make([]Parameter, 0, len(d.Parameters)),
	}

	for i, p := range d.Parameters {
		param, err := p.toParameter()
		if err != nil {
			return nil, fmt.Errorf("parameters[%d]: %w", i, err)
		}
		cmd.Parameters = append(cmd.Parameters, param)
	}

	return cmd, nil
}

func (p *parameterDocument) toParameter() (Parameter, error) {
	switch {
	case p.Name == nil:
		return Parameter{}, fmt.Errorf("missing required field %q", "name")
	case p.Type == nil:
		return Parameter{}, fmt.Errorf("missing required field %q", "type")
	case p.Description == nil:
		return Parameter{}, fmt.Errorf("missing required field %q", "description")
	case *p.Name == "":
		return Parameter{}, fmt.Errorf("field \"name\" must not be empty")
	}

	param := Parameter{
		Name:        *p.Name,
		Type:        *p.Type,
		Description: *p.Description,
		Default:     p.Default,
	}
	if p.Required != nil {
		param.Required = *p.Required
	}

	return param, nil
}
