package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/market-insights/internal/insights"
	"github.com/jonathan/market-insights/internal/schemas"
)

var validateResponseCmd = &cobra.Command{
	Use:   "validate-response <endpoint> <json-file>",
	Short: "Validate a saved backend response against its schema",
	Long: "Check a JSON file captured from the backend against the response schema for an endpoint. " +
		"Use --schema to validate against a schema file on disk instead of the built-in one.",
	Args: cobra.ExactArgs(2),
	RunE: runValidateResponse,
}

var validateSchemaFile string

// responseSchemas maps endpoint names to their embedded response schema.
var responseSchemas = map[string]string{
	insights.EndpointMarketInsights:      schemas.SchemaMarketInsights,
	insights.EndpointRoles:               schemas.SchemaRoles,
	insights.EndpointRoleInsights:        schemas.SchemaRoleInsights,
	insights.EndpointAnalyzeResume:       schemas.SchemaAnalysisResult,
	insights.EndpointJobRoleDistribution: schemas.SchemaJobRolesDistribution,
	insights.EndpointSimilarJobs:         schemas.SchemaSimilarJobs,
	"error":                              schemas.SchemaErrorDetail,
}

func init() {
	validateResponseCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to a schema file (resolved from the working directory or its parents)")

	rootCmd.AddCommand(validateResponseCmd)
}

func runValidateResponse(cmd *cobra.Command, args []string) error {
	endpoint, jsonPath := args[0], args[1]

	var err error
	if validateSchemaFile != "" {
		schemaPath := schemas.ResolveSchemaPath(validateSchemaFile)
		if schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", validateSchemaFile)
		}
		err = schemas.ValidateJSON(schemaPath, jsonPath)
	} else {
		schemaName, ok := responseSchemas[endpoint]
		if !ok {
			return fmt.Errorf("unknown endpoint %q (known: %s)", endpoint, strings.Join(knownEndpoints(), ", "))
		}

		data, readErr := os.ReadFile(jsonPath)
		if readErr != nil {
			return fmt.Errorf("failed to read response file: %w", readErr)
		}
		err = schemas.ValidateDocument(schemaName, data)
	}

	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s does not match the %s response schema: %w", jsonPath, endpoint, err)
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s response\n", jsonPath, endpoint)
	return nil
}

func knownEndpoints() []string {
	names := make([]string, 0, len(responseSchemas))
	for name := range responseSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
