package checklist

import (
	"encoding/json"
	"strings"
	"testing"

	perr "scopetrack/internal/platform/errors"
)

func TestNewAssignsOrder(t *testing.T) {
	c := New("Excavate trench 2ft wide", "Install 1 inch gas line")
	if c.Len() != 2 {
		t.Fatalf("len = %d", c.Len())
	}
	for i, it := range c.Items() {
		if it.Order != i {
			t.Fatalf("item %d order = %d", i, it.Order)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New("Pour concrete pad at rear")
	items := c.Items()
	items[0].Text = "changed"
	if c.At(0).Text != "Pour concrete pad at rear" {
		t.Fatalf("checklist mutated through Items()")
	}
}

func TestZeroValueIsEmpty(t *testing.T) {
	var c Checklist
	if !c.Empty() || c.Len() != 0 {
		t.Fatalf("zero value should be empty")
	}
	if got := c.Items(); got == nil || len(got) != 0 {
		t.Fatalf("Items() on empty = %#v", got)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("empty checklist should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		items []ScopeItem
	}{
		{"blank text", []ScopeItem{{Text: "   ", Order: 0}}},
		{"order gap", []ScopeItem{{Text: "Frame north wall", Order: 0}, {Text: "Frame south wall", Order: 2}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := FromItems(c.items).Validate()
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestJSONRoundTripKeepsOrder(t *testing.T) {
	c := New("Pour concrete pad", "Excavate trench 2ft wide", "Install 1 inch gas line")
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["Pour concrete pad","Excavate trench 2ft wide","Install 1 inch gas line"]` {
		t.Fatalf("persisted form = %s", b)
	}
	var back Checklist
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(c) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back.Items(), c.Items())
	}

	var fromNull Checklist
	if err := json.Unmarshal([]byte("null"), &fromNull); err != nil || !fromNull.Empty() {
		t.Fatalf("null should decode to empty: %v", err)
	}
}

func TestCorpusLines(t *testing.T) {
	log := DailyLog{
		WorkPerformed: "Dug trench 2 ft wide\r\n\r\nInstalled gas line",
		CrewNotes:     "   ",
		SafetyNotes:   "Toolbox talk held\rNo incidents",
	}
	c := log.Corpus()
	want := []string{"Dug trench 2 ft wide", "Installed gas line", "Toolbox talk held", "No incidents"}
	if len(c.Lines) != len(want) {
		t.Fatalf("lines = %#v", c.Lines)
	}
	for i := range want {
		if c.Lines[i] != want[i] {
			t.Fatalf("line %d = %q want %q", i, c.Lines[i], want[i])
		}
	}
	if fields := log.Fields(); len(fields) != 2 {
		t.Fatalf("Fields() = %#v", fields)
	}

	appended := c.Append("Poured extra concrete patio")
	if len(appended.Lines) != len(want)+1 || appended.Lines[len(want)] != "Poured extra concrete patio" {
		t.Fatalf("Append lines = %#v", appended.Lines)
	}
	if !NewCorpus("", " ").Empty() {
		t.Fatalf("blank corpus should be empty")
	}
}

func TestSplitClauses(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Dug trench. Installed gas line", []string{"Dug trench.", "Installed gas line"}},
		{"Set forms; poured pad! Inspected? yes", []string{"Set forms;", "poured pad!", "Inspected?", "yes"}},
		{"Ran 2.5 inch conduit", []string{"Ran 2.5 inch conduit"}},
		{"Waited... then resumed.", []string{"Waited...", "then resumed."}},
		{"Framed walls.\nHung doors.\tPainted trim", []string{"Framed walls.", "Hung doors.", "Painted trim"}},
		{" . ", []string{"."}},
		{"", []string{}},
	}
	for _, c := range cases {
		got := SplitClauses(c.in)
		if strings.Join(got, "|") != strings.Join(c.want, "|") || len(got) != len(c.want) {
			t.Fatalf("SplitClauses(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestCorpusAppendInsideField(t *testing.T) {
	before := DailyLog{WorkPerformed: "Dug trench 2 ft wide and installed gas line today."}.Corpus()
	after := DailyLog{WorkPerformed: before.Text + " Pour concrete pad"}.Corpus()
	want := []string{"Dug trench 2 ft wide and installed gas line today.", "Pour concrete pad"}
	if strings.Join(after.Lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %#v", after.Lines)
	}
	if after.Lines[0] != before.Lines[0] {
		t.Fatalf("appending changed an earlier line: %q -> %q", before.Lines[0], after.Lines[0])
	}
}

func TestProjectKey(t *testing.T) {
	cases := []struct {
		in, want string
		bad      bool
	}{
		{in: "Main St Reno", want: "main_st_reno"},
		{in: "  Lot\t 12  ", want: "lot_12"},
		{in: "ACME-42", want: "acme-42"},
		{in: "", bad: true},
		{in: "../etc", bad: true},
		{in: "a/b", bad: true},
		{in: `a\b`, bad: true},
	}
	for _, c := range cases {
		got, err := ProjectKey(c.in)
		if c.bad {
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("ProjectKey(%q) want validation error, got %q %v", c.in, got, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("ProjectKey(%q) = %q, %v want %q", c.in, got, err, c.want)
		}
	}
}
