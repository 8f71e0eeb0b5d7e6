package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "scopetrack/internal/platform/errors"
)

type logEntry struct {
	WorkPerformed string `json:"work_performed" validate:"required,max=20"`
	Crew          int    `json:"crew,omitempty" validate:"min=0,max=50"`
	Format        string `json:"format" validate:"oneof_fold=text markdown json"`
	Internal      string `json:"-" validate:"max=3"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/logs/reconcile", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[logEntry](post(`{"work_performed":"poured slab","crew":4,"format":"Markdown"}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.WorkPerformed != "poured slab" || got.Crew != 4 || got.Format != "Markdown" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSONErrors(t *testing.T) {
	cases := []struct {
		name  string
		req   *http.Request
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"no body", httptest.NewRequest(http.MethodPost, "/", http.NoBody), perr.ErrorCodeJSON, "", "empty body"},
		{"nil body", &http.Request{Method: http.MethodPost}, perr.ErrorCodeJSON, "", "empty body"},
		{"broken", post(`{"work_performed":`), perr.ErrorCodeJSON, "", "invalid JSON"},
		{"unknown field", post(`{"work_performed":"x","foreman":"sam"}`), perr.ErrorCodeJSON, "", "foreman"},
		{"trailing", post(`{"work_performed":"x"} {}`), perr.ErrorCodeJSON, "", "trailing"},
		{"oversized", post(`{"work_performed":"` + strings.Repeat("x", int(MaxJSONBytes)) + `"}`), perr.ErrorCodeJSON, "", "invalid JSON"},
		{"required", post(`{}`), perr.ErrorCodeValidation, "work_performed", "required"},
		{"short max", post(`{"work_performed":"` + strings.Repeat("x", 21) + `"}`), perr.ErrorCodeValidation, "work_performed", "must be at most 20"},
		{"numeric max", post(`{"work_performed":"x","crew":51}`), perr.ErrorCodeValidation, "crew", "must be at most 50"},
		{"oneof fold", post(`{"work_performed":"x","format":"pdf"}`), perr.ErrorCodeValidation, "format", "must be one of [text markdown json]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[logEntry](c.req)
			if perr.CodeOf(err) != c.code {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), c.code, err)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Fatalf("err %q missing %q", err, c.msg)
			}
			if c.field != "" {
				e, ok := perr.As(err)
				if !ok || e.Field() != c.field {
					t.Fatalf("field = %v, want %q", err, c.field)
				}
			}
		})
	}
}

func TestStructUsesGoNameWithoutJSONTag(t *testing.T) {
	err := Struct(logEntry{WorkPerformed: "x", Internal: "toolong"})
	e, ok := perr.As(err)
	if !ok || e.Field() != "Internal" {
		t.Fatalf("Struct = %v", err)
	}
	if Struct(logEntry{WorkPerformed: "x", Format: "JSON"}) != nil {
		t.Fatal("valid entry rejected")
	}
}

func TestFieldMessage(t *testing.T) {
	if f, m := FieldMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
	if f, m := FieldMessage(errors.New("plain")); f != "" || m != "plain" {
		t.Fatalf("plain = %q %q", f, m)
	}
}
