// Package schemas holds the JSON Schemas describing every backend response body.
package schemas

import "embed"

// FS contains all *.schema.json files in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// CommonID is the $id of common.schema.json; the other schemas reference its definitions.
const CommonID = "https://market-insights.local/schemas/common.schema.json"
