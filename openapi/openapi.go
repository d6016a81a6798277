// Package openapi embeds the OpenAPI description of the carpooling API.
// The HTTP server serves it at /openapi.yaml.
package openapi

import _ "embed"

// Document holds the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
