package httpkit

import "net/http"

// APIVersion is the path segment every module mounts under
const APIVersion = "v1"

// MountAPIV1 mounts the shared stack and then the modules under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+APIVersion, mw, mount)
}
