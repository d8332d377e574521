// Package schemas embeds the JSON Schemas for upstream payloads.
package schemas

import "embed"

//go:embed payloads/*.json
var SchemasFS embed.FS
