// Package formatters renders reports as JSON, YAML, plain text or markdown.
package formatters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatText     = "text"
	FormatMarkdown = "markdown"

	anyType = "any"
)

// Formatter renders one kind of value
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry maps format and data type to a formatter
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a registry with every built-in formatter
func NewFormatterRegistry() *FormatterRegistry {
	r := &FormatterRegistry{formatters: make(map[string]map[string]Formatter)}

	r.RegisterFormatter(FormatJSON, &JSONFormatter{})
	r.RegisterFormatter(FormatYAML, &YAMLFormatter{})

	register(r, atsText, atsMarkdown)
	register(r, atsBatchText, atsBatchMarkdown)
	register(r, biasText, biasMarkdown)
	register(r, debiasText, debiasMarkdown)
	register(r, auditText, auditMarkdown)
	register(r, careerText, careerMarkdown)
	register(r, salaryText, salaryMarkdown)
	register(r, jobsText, jobsMarkdown)
	register(r, adviceText, adviceMarkdown)
	register(r, entryText, entryMarkdown)
	register(r, entriesText, entriesMarkdown)

	return r
}

func register[T any](r *FormatterRegistry, text, markdown func(T) string) {
	r.RegisterFormatter(FormatText, typed[T](text))
	r.RegisterFormatter(FormatMarkdown, typed[T](markdown))
}

// RegisterFormatter adds or replaces the formatter for its type
func (fr *FormatterRegistry) RegisterFormatter(format string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][formatter.SupportedType()] = formatter
}

// Format renders data, falling back to the format's generic formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := typeName(data)
	if byType, ok := fr.formatters[format]; ok {
		if f, ok := byType[dataType]; ok {
			return f.Format(data)
		}
		if f, ok := byType[anyType]; ok {
			return f.Format(data)
		}
	}
	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all registered formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func typeName(data any) string {
	return fmt.Sprintf("%T", data)
}

// typed adapts a render function for one concrete type
type typed[T any] func(T) string

func (f typed[T]) Format(data any) (string, error) {
	v, ok := data.(T)
	if !ok {
		var want T
		return "", fmt.Errorf("expected %T, got %T", want, data)
	}
	return f(v), nil
}

func (f typed[T]) SupportedType() string {
	var zero T
	return typeName(zero)
}

// JSONFormatter handles any value
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (jf *JSONFormatter) SupportedType() string { return anyType }

// YAMLFormatter handles any value. Keys follow the JSON field names and order.
type YAMLFormatter struct{}

func (yf *YAMLFormatter) Format(data any) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(jsonData, &node); err != nil {
		return "", fmt.Errorf("convert to yaml: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (yf *YAMLFormatter) SupportedType() string { return anyType }

// clearStyle drops the flow and quoting styles inherited from JSON
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}

// GlobalRegistry is the shared registry used by commands and handlers
var GlobalRegistry = NewFormatterRegistry()
