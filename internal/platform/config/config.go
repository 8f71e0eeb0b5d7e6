// Package config reads namespaced settings, usually from the environment
//
// Modules take a Conf scoped to their own prefix (CORE_MATCH_, CORE_DRAFTS_ and so on)
// and read optional values with May*. Invalid optional values log a warning and fall back
// to the default; invalid required values panic during startup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"scopetrack/internal/platform/logger"
)

// Lookup resolves a fully qualified key; ok is false when the key is unset
type Lookup func(key string) (string, bool)

// Conf is a prefixed view over a Lookup
type Conf struct {
	prefix string
	lookup Lookup
}

// New returns a root Conf over the process environment
func New() Conf { return Conf{lookup: os.LookupEnv} }

// FromMap returns a root Conf over a fixed set of values
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix returns a child Conf; prefixes nest, so New().Prefix("CORE_").Prefix("MATCH_") reads CORE_MATCH_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, lookup: c.lookup} }

// Key returns the fully qualified name of key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) get(key string) string {
	if c.lookup == nil {
		c.lookup = os.LookupEnv
	}
	v, _ := c.lookup(c.Key(key))
	return strings.TrimSpace(v)
}

// MustString returns the value of key and panics when it is unset or blank
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required setting")
	}
	return v
}

// MustInt is MustString parsed as an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("setting is not an int")
	}
	return n
}

// MustDuration is MustString parsed with time.ParseDuration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("setting is not a duration (250ms, 2s)")
	}
	return d
}

// may parses key with parse, returning def when unset or unparseable
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns key as an int or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayFloat64 returns key as a float64 or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns key as a bool or def; accepts the strconv.ParseBool spellings plus yes/no
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		return strconv.ParseBool(s)
	})
}

// MayDuration returns key as a time.Duration or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits key on commas, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns key lowercased when it is one of allowed (case-insensitive), def when unset
// Any other value panics; a typo in a backend switch should stop startup
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.get(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("setting not in allowed set")
	return ""
}
