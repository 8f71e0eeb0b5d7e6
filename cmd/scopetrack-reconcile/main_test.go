package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadForm(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "day.txt")
	if err := os.WriteFile(txt, []byte("Poured concrete pad"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := readForm(txt)
	if err != nil || f.WorkPerformed != "Poured concrete pad" || f.ProjectID != "" {
		t.Fatalf("text form = %+v, %v", f, err)
	}

	js := filepath.Join(dir, "day.json")
	body := `{"project_id":"Main St","work_performed":"Set forms","crew_notes":"Two on site"}`
	if err := os.WriteFile(js, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = readForm(js)
	if err != nil || f.ProjectID != "Main St" || f.WorkPerformed != "Set forms" || f.CrewNotes != "Two on site" {
		t.Fatalf("json form = %+v, %v", f, err)
	}
}

func TestReadBatch(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":    `{"work_performed":"Hung doors"}`,
		"a.json":    `{"project_id":"other","work_performed":"Set forms"}`,
		"notes.txt": "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	items, paths, err := readBatch(dir, "main_st")
	if err != nil || len(items) != 2 || len(paths) != 2 {
		t.Fatalf("batch = %v %v %v", items, paths, err)
	}
	if items[0].ProjectID != "other" || items[1].ProjectID != "main_st" || items[1].Log.WorkPerformed != "Hung doors" {
		t.Fatalf("items = %+v", items)
	}

	if err := os.WriteFile(filepath.Join(dir, "c.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := readBatch(dir, ""); err == nil {
		t.Fatal("bad json must fail")
	}
}
