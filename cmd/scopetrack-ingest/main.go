// Command scopetrack-ingest extracts a checklist from a scope document and stores it for a project
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"scopetrack/internal/core/version"
	"scopetrack/internal/modkit"
	"scopetrack/internal/platform/config"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/platform/store"

	scopesmod "scopetrack/internal/services/scopes/module"
)

func main() {
	var (
		project = flag.String("project", "", "project id")
		file    = flag.String("file", "", "scope document (pdf, docx, xlsx, pptx or text)")
		format  = flag.String("format", "", "format hint; defaults to the file extension")
	)
	flag.Parse()

	if *project == "" || *file == "" {
		log.Fatal("-project and -file are required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	hint := *format
	if hint == "" {
		hint = filepath.Base(*file)
	}

	root := config.New()
	l := logger.Get()
	ctx := context.Background()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "ingest", version.For("scopetrack-ingest").Version), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH}
	svc, err := scopesmod.NewService(ctx, deps, scopesmod.FromConfig(root))
	if err != nil {
		l.Fatal().Err(err).Msg("scope store unavailable")
	}

	sc, err := svc.Upload(ctx, *project, data, hint)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("ingest failed")
	}

	fmt.Printf("%s: %d items\n", sc.ProjectID, sc.Count)
	for i, it := range sc.Items {
		fmt.Printf("%3d. %s\n", i+1, it)
	}
}
