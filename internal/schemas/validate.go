// Package schemas provides JSON Schema validation for backend response bodies.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/market-insights/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Names of the embedded response schemas.
const (
	SchemaMarketInsights       = "market_insights.schema.json"
	SchemaRoleInsights         = "role_insights.schema.json"
	SchemaRoles                = "roles.schema.json"
	SchemaAnalysisResult       = "analysis_result.schema.json"
	SchemaJobRolesDistribution = "job_roles_distribution.schema.json"
	SchemaSimilarJobs          = "similar_jobs.schema.json"
	SchemaErrorDetail          = "error_detail.schema.json"
)

// ResolveSchemaPath attempts to find a schema file by trying multiple common path resolutions.
// It tries paths relative to the current working directory, then one and two levels up.
// Returns the first path that exists, or empty string if none found.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJSON validates a JSON file against a JSON Schema file.
// Embedded schemas are registered first so file schemas may reference common.schema.json by $id.
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	schemaData, err := os.ReadFile(schemaAbsPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, err := compile(schemaData)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaAbsPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	result, err := schema.Validate(gojsonschema.NewReferenceLoader("file://" + jsonAbsPath))
	if err != nil {
		return fmt.Errorf("failed to load JSON document %s: %w", jsonAbsPath, err)
	}

	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

// ValidateDocument validates a raw JSON body against one of the embedded response schemas.
// A body that is not JSON at all is reported as a ValidationError on (root).
func ValidateDocument(schemaName string, data []byte) error {
	schema, err := embedded(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("invalid JSON: %v", err)}},
		}
	}

	return toValidationError(result)
}

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// embedded returns the compiled embedded schema, compiling it on first use.
func embedded(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	data, err := schemafiles.FS.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}

	schema, err := compile(data)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema compilation failed", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}

// compile builds a schema with common.schema.json preloaded for $ref resolution.
func compile(schemaData []byte) (*gojsonschema.Schema, error) {
	common, err := schemafiles.FS.ReadFile("common.schema.json")
	if err != nil {
		return nil, err
	}

	sl := gojsonschema.NewSchemaLoader()
	sl.Draft = gojsonschema.Draft7
	if err := sl.AddSchema(schemafiles.CommonID, gojsonschema.NewBytesLoader(common)); err != nil {
		return nil, err
	}

	return sl.Compile(gojsonschema.NewBytesLoader(schemaData))
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
