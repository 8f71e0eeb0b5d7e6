package module

import (
	"scopetrack/internal/core/extract"
	"scopetrack/internal/core/segment"
	"scopetrack/internal/platform/config"
)

// Backends for the scope store
const (
	BackendFS = "fs"
	BackendPG = "pg"
)

// Options holds configuration for the scopes module
type Options struct {
	Backend   string
	Dir       string
	MaxUpload int64
	Extract   extract.Options
	Segment   segment.Options
}

// FromConfig reads CORE_SCOPES_, CORE_EXTRACT_ and CORE_SEGMENT_ settings
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCOPES_")
	ex := cfg.Prefix("CORE_EXTRACT_")
	sg := cfg.Prefix("CORE_SEGMENT_")
	return Options{
		Backend:   sc.MayEnum("BACKEND", BackendFS, BackendFS, BackendPG),
		Dir:       sc.MayString("DIR", "./data/scopes"),
		MaxUpload: int64(sc.MayInt("MAX_UPLOAD_BYTES", int(extract.DefaultMaxBytes))),
		Extract: extract.Options{
			MaxBytes: int64(ex.MayInt("MAX_BYTES", int(extract.DefaultMaxBytes))),
			Timeout:  ex.MayDuration("TIMEOUT", extract.DefaultTimeout),
		},
		Segment: segment.Options{
			MinLength: sg.MayInt("MIN_LENGTH", segment.DefaultMinLength),
			Extra:     sg.MayCSV("DENYLIST_EXTRA", nil),
		},
	}
}
