package module

import (
	"scopetrack/internal/core/reconcile"
	"scopetrack/internal/core/similarity"
	"scopetrack/internal/platform/config"
)

// Options holds configuration for the daily log module
type Options struct {
	Match            similarity.Options
	OutOfScopeMinLen int
	OutOfScopeLimit  int
	Workers          int
	HistoryEnabled   bool
}

// FromConfig reads CORE_MATCH_, CORE_RECONCILE_ and CORE_HISTORY_ settings
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("CORE_MATCH_")
	rc := cfg.Prefix("CORE_RECONCILE_")
	hc := cfg.Prefix("CORE_HISTORY_")
	return Options{
		Match: similarity.Options{
			Threshold:        mc.MayFloat64("THRESHOLD", similarity.DefaultThreshold),
			PartialThreshold: mc.MayFloat64("PARTIAL", similarity.DefaultPartialThreshold),
			Window:           mc.MayInt("WINDOW", similarity.DefaultWindow),
		},
		OutOfScopeMinLen: rc.MayInt("OUT_OF_SCOPE_MIN_LENGTH", reconcile.DefaultOutOfScopeMinLength),
		OutOfScopeLimit:  rc.MayInt("OUT_OF_SCOPE_LIMIT", 0),
		Workers:          rc.MayInt("WORKERS", 0),
		HistoryEnabled:   hc.MayBool("ENABLED", true),
	}
}

// Engine builds the reconciliation engine these options describe
func (o Options) Engine() (*reconcile.Engine, error) {
	m, err := similarity.New(o.Match)
	if err != nil {
		return nil, err
	}
	return reconcile.New(reconcile.Options{
		Matcher:             m,
		OutOfScopeMinLength: o.OutOfScopeMinLen,
		OutOfScopeLimit:     o.OutOfScopeLimit,
	})
}
