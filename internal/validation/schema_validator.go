// Package validation checks JSON documents against named JSON schemas.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders validation failures in English
var printer = message.NewPrinter(language.English)

var (
	ErrUnknownSchema    = errors.New("unknown schema")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// SchemaValidator validates JSON data against schemas registered by name
type SchemaValidator interface {
	AddSchema(name string, schema []byte) error
	HasSchema(name string) bool
	ValidateBytes(data []byte, name string) error
}

type validator struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// AddSchema compiles schema and stores it under name. Names are unique.
func (v *validator) AddSchema(name string, schema []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.schemas[name]; exists {
		return fmt.Errorf("schema %s already registered", name)
	}

	url := resourceURL(name)
	if err := v.compiler.AddResource(url, doc); err != nil {
		return fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	compiled, err := v.compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.schemas[name] = compiled
	return nil
}

// HasSchema reports whether name was registered
func (v *validator) HasSchema(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.schemas[name]
	return ok
}

// ValidateBytes validates JSON data bytes against the named schema
func (v *validator) ValidateBytes(data []byte, name string) error {
	v.mu.RLock()
	schema, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: not valid JSON", ErrSchemaValidation)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func resourceURL(name string) string {
	return "mem://schemas/" + name + ".json"
}

// formatValidationError flattens the cause tree into one line per failure
func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	var msgs []string
	collectErrors(validationErr, &msgs)
	return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}

// collectErrors gathers leaf failures; inner nodes only say "doesn't validate"
func collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, msgs)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")

	if err.ErrorKind == nil {
		return fmt.Sprintf("at %s: invalid", location)
	}
	return fmt.Sprintf("at %s: %s", location, err.ErrorKind.LocalizedString(printer))
}
