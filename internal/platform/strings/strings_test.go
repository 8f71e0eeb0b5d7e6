package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []int{1, 2, 3}
	def := []int{9}
	got := IfEmpty(in, def)
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	got2 := IfEmpty(empty, []string{"x"})
	if len(got2) != 1 || got2[0] != "x" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString(" scopes ", "module name"); got != " scopes " {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		r := recover()
		if r == nil || r.(string) != "module name is required" {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustString("  ", "module name")
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"scopes":    "/scopes",
		"/logs/":    "/logs",
		" /drafts ": "/drafts",
		"//meta//":  "/meta",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("root prefix must panic")
		}
	}()
	MustPrefix(" / ")
}
