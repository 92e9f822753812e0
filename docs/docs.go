// Package docs holds the OpenAPI description served under /swagger.
package docs

import _ "embed"

//go:embed doc.json
var SwaggerJSON []byte
