// Package schemas embeds the JSON Schemas for payloads accepted from the generation service.
package schemas

import "embed"

// Schema file names.
const (
	BundleSchema   = "bundle.schema.json"
	ATSScoreSchema = "ats_score.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
