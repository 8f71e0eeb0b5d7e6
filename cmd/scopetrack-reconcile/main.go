// Command scopetrack-reconcile compares daily logs against stored scope checklists and prints progress reports
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/progress"
	"scopetrack/internal/core/version"
	"scopetrack/internal/modkit"
	"scopetrack/internal/platform/config"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/platform/store"

	"scopetrack/internal/services/dailylogs/domain"
	logsmod "scopetrack/internal/services/dailylogs/module"
	scopesmod "scopetrack/internal/services/scopes/module"
)

// form is one daily form file; project_id may be omitted when -project is set
type form struct {
	ProjectID string `json:"project_id"`
	checklist.DailyLog
}

// readForm parses a .json daily form; any other file is taken as work performed text
func readForm(path string) (form, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return form{}, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return form{DailyLog: checklist.DailyLog{WorkPerformed: string(b)}}, nil
	}
	var f form
	if err := json.Unmarshal(b, &f); err != nil {
		return form{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// readBatch loads every .json form in dir, sorted by file name
func readBatch(dir, project string) ([]domain.BatchItem, []string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(paths)
	items := make([]domain.BatchItem, 0, len(paths))
	for _, p := range paths {
		f, err := readForm(p)
		if err != nil {
			return nil, nil, err
		}
		if f.ProjectID == "" {
			f.ProjectID = project
		}
		items = append(items, domain.BatchItem{ProjectID: f.ProjectID, Log: f.DailyLog})
	}
	return items, paths, nil
}

func main() {
	var (
		project = flag.String("project", "", "project id; required unless every batch form names one")
		logPath = flag.String("log", "", "daily log file (.json form or plain text)")
		batch   = flag.String("batch", "", "directory of .json daily forms")
		workers = flag.Int("workers", 0, "batch parallelism (0 = GOMAXPROCS)")
		style   = flag.String("style", "text", "report style: text, markdown or json")
		xlsx    = flag.String("xlsx", "", "also write a workbook to this path (single log only)")
	)
	flag.Parse()

	if (*logPath == "") == (*batch == "") {
		log.Fatal("exactly one of -log or -batch is required")
	}
	if *batch != "" && *xlsx != "" {
		log.Fatal("-xlsx works with -log only")
	}
	st, err := progress.ParseStyle(*style)
	if err != nil {
		log.Fatalf("bad -style: %v", err)
	}

	root := config.New()
	l := logger.Get()
	ctx := context.Background()

	db, err := store.Open(ctx, store.ConfigFromEnv(root, "reconcile", version.For("scopetrack-reconcile").Version), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *l, Cfg: root, PG: db.PG, CH: db.CH}
	scopes, err := scopesmod.NewService(ctx, deps, scopesmod.FromConfig(root))
	if err != nil {
		l.Fatal().Err(err).Msg("scope store unavailable")
	}
	o := logsmod.FromConfig(root)
	if *workers > 0 {
		o.Workers = *workers
	}
	svc, err := logsmod.NewService(ctx, deps, o, scopes, nil)
	if err != nil {
		l.Fatal().Err(err).Msg("reconcile engine misconfigured")
	}

	if *batch != "" {
		os.Exit(runBatch(ctx, svc, *batch, *project, st))
	}

	f, err := readForm(*logPath)
	if err != nil {
		log.Fatalf("read -log: %v", err)
	}
	if f.ProjectID == "" {
		f.ProjectID = *project
	}
	res, err := svc.Submit(ctx, f.ProjectID, domain.SubmitInput{
		WorkPerformed: f.WorkPerformed,
		CrewNotes:     f.CrewNotes,
		SafetyNotes:   f.SafetyNotes,
		Extra:         f.Extra,
		Format:        string(st),
	})
	if err != nil {
		l.Fatal().Err(err).Str("project", f.ProjectID).Msg("reconcile failed")
	}
	fmt.Println(res.Rendered)

	if *xlsx != "" {
		b, err := progress.Workbook(res.Report)
		if err != nil {
			l.Fatal().Err(err).Msg("workbook failed")
		}
		if err := os.WriteFile(*xlsx, b, 0o644); err != nil {
			log.Fatalf("write %s: %v", *xlsx, err)
		}
	}
}

// runBatch prints one report per form and returns the process exit code
func runBatch(ctx context.Context, svc domain.ServicePort, dir, project string, st progress.Style) int {
	items, paths, err := readBatch(dir, project)
	if err != nil {
		log.Printf("read -batch: %v", err)
		return 1
	}
	results, err := svc.SubmitBatch(ctx, items)
	if err != nil {
		log.Printf("batch: %v", err)
		return 1
	}
	code := 0
	for i, r := range results {
		name := filepath.Base(paths[i])
		if r.Error != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", name, r.Error)
			code = 1
			continue
		}
		out, err := progress.Render(r.Result.Report, st)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			code = 1
			continue
		}
		fmt.Printf("== %s (%s) ==\n%s\n\n", r.ProjectID, name, out)
	}
	return code
}
