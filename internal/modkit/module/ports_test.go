package module

import (
	"strings"
	"testing"

	phttp "scopetrack/internal/platform/net/http"
)

type ScopeLoader interface{ Load(project string) []string }

type loader struct{ items []string }

func (l loader) Load(string) []string { return l.items }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	type Ports struct {
		Count  int
		Scopes ScopeLoader
		hidden ScopeLoader
	}
	l := loader{items: []string{"Pour concrete pad"}}

	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", ScopeLoader(l), true},
		{"struct field", Ports{Count: 1, Scopes: l}, true},
		{"pointer to struct", &Ports{Scopes: l}, true},
		{"nil pointer", (*Ports)(nil), false},
		{"unexported only", Ports{hidden: l}, false},
		{"scalar", 42, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[ScopeLoader](fakeModule{name: "scopes", ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if ok && got.Load("main_st")[0] != "Pour concrete pad" {
				t.Fatalf("wrong port: %v", got)
			}
		})
	}
}

func TestMustPortsOfPanicNamesModule(t *testing.T) {
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "module drafts") || !strings.Contains(msg, "ScopeLoader") {
			t.Fatalf("panic = %q", msg)
		}
	}()
	MustPortsOf[ScopeLoader](fakeModule{name: "drafts"})
}
