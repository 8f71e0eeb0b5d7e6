//go:build swag

package swaggerkit

import docs "scopetrack/internal/services/api/docs"

func rawDoc() string { return docs.SwaggerInfo.ReadDoc() }
