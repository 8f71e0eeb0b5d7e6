//go:build !swag

package swaggerkit

// without the generated docs the UI still loads, with an empty path set
func rawDoc() string {
	return `{"swagger":"2.0","info":{"title":"scopetrack API","version":"0.0.0"},"paths":{}}`
}
