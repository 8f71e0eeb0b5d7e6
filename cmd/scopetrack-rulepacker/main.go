// Command scopetrack-rulepacker merges the TOML rule fragments under rules/ into the embedded rules.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"scopetrack/internal/core/rulepack"
	"scopetrack/internal/platform/logger"

	"github.com/pelletier/go-toml/v2"
)

const coreFile = "core.toml"

// candidates are tried after -root and SCOPETRACK_RULES_ROOT
var candidates = []string{"./rules", "/app/rules"}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Named("rulepacker").Error().Err(err).Msg("rulepacker failed")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fl := flag.NewFlagSet("scopetrack-rulepacker", flag.ContinueOnError)
	root := fl.String("root", "", "rules directory holding core.toml; auto-discovered when empty")
	out := fl.String("out", "./internal/core/rulepack/rules.json", "output path, or - for stdout")
	compact := fl.Bool("compact", false, "write unindented JSON")
	if err := fl.Parse(args); err != nil {
		return err
	}
	log := logger.Named("rulepacker")

	dir, err := findRoot(*root, os.Getenv("SCOPETRACK_RULES_ROOT"))
	if err != nil {
		return err
	}
	doc, err := assemble(os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}

	var b []byte
	if *compact {
		b, err = json.Marshal(doc)
	} else {
		b, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if *out == "-" {
		_, err = stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		return err
	}
	log.Info().Str("root", dir).Str("out", *out).
		Int("denylist", len(doc.Denylist)).Int("stopwords", len(doc.Stopwords)).
		Msg("rules.json written")
	return nil
}

// findRoot returns the first directory holding core.toml
func findRoot(flagRoot, envRoot string) (string, error) {
	var tried []string
	for _, dir := range append([]string{flagRoot, strings.TrimSpace(envRoot)}, candidates...) {
		if dir == "" {
			continue
		}
		tried = append(tried, dir)
		if _, err := os.Stat(filepath.Join(dir, coreFile)); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%s not found; looked in %s", coreFile, strings.Join(tried, ", "))
}

// assemble merges core.toml with every other .toml in lexical path order and checks the result compiles
func assemble(fsys fs.FS) (rulepack.Document, error) {
	var core rulepack.Document
	if err := decode(fsys, coreFile, &core); err != nil {
		return rulepack.Document{}, err
	}
	if core.Version != rulepack.Version {
		return rulepack.Document{}, fmt.Errorf("%s: version %d, want %d", coreFile, core.Version, rulepack.Version)
	}

	var frags []rulepack.Document
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || p == coreFile || !strings.EqualFold(path.Ext(p), ".toml") {
			return err
		}
		var fr rulepack.Document
		if err := decode(fsys, p, &fr); err != nil {
			return err
		}
		frags = append(frags, fr)
		return nil
	})
	if err != nil {
		return rulepack.Document{}, err
	}
	if len(frags) == 0 {
		return rulepack.Document{}, errors.New("no rule fragments next to " + coreFile)
	}

	doc := rulepack.Merge(core, frags...)
	if _, err := rulepack.Compile(doc); err != nil {
		return rulepack.Document{}, err
	}
	return doc, nil
}

func decode(fsys fs.FS, name string, into *rulepack.Document) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
