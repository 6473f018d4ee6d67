package codec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const schemaBaseURL = "https://pitango.dev/schemas/"

// Schema names accepted by validateAgainst.
const (
	schemaState    = "state"
	schemaSnapshot = "snapshot"
	schemaExport   = "export"
)

var loadSchemas = sync.OnceValues(func() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	entries, err := schemaFiles.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	// Every resource is registered before compiling so cross-file refs resolve
	for _, entry := range entries {
		data, err := schemaFiles.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		if err := compiler.AddResource(schemaBaseURL+entry.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", entry.Name(), err)
		}
	}

	schemas := make(map[string]*jsonschema.Schema)
	for _, name := range []string{schemaState, schemaSnapshot, schemaExport} {
		schema, err := compiler.Compile(schemaBaseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		schemas[name] = schema
	}
	return schemas, nil
})

// schemaError is the most specific failure reported by a schema check.
type schemaError struct {
	Field   string
	Message string
}

func (e *schemaError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validateAgainst checks data against a named schema. A failure is returned
// as a *schemaError naming the first offending field.
func validateAgainst(name string, data []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("schema not found: %s", name)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return &schemaError{Field: fieldFromPointer(leaf.InstanceLocation), Message: leaf.Message}
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// fieldFromPointer turns a JSON pointer like /settings/players/0/id into
// settings.players[0].id.
func fieldFromPointer(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for i, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = pointerUnescaper.Replace(tok)
		if isIndex(tok) {
			fmt.Fprintf(&b, "[%s]", tok)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
