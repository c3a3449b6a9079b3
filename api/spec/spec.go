// Package spec embeds the OpenAPI description served by the API.
package spec

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
