package lsp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.tally.dev/pkg/must"
	"src.tally.dev/pkg/tt"
)

func TestDiagnostics(t *testing.T) {
	content := "1 + 2\n# comment\n\n2 +\n(3 * 4\n"
	want := []lsp.Diagnostic{
		{
			Range:    lineRange(3, "2 +"),
			Severity: lsp.Error,
			Source:   "compile",
			Message:  "should be operand or '('",
		},
		{
			Range:    lineRange(4, "(3 * 4"),
			Severity: lsp.Error,
			Source:   "compile",
			Message:  "should be ')'",
		},
	}
	if diff := cmp.Diff(want, diagnostics(content)); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestDiagnostics_CleanDocument(t *testing.T) {
	got := diagnostics("1 + 1\n? * ?\n")
	if diff := cmp.Diff([]lsp.Diagnostic{}, got); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestHover(t *testing.T) {
	s := newServer()
	uri := lsp.DocumentURI("file:///calc.tally")
	s.content[uri] = "2 + 3 * 4\n? / 2\n2 +\n"

	range0 := lineRange(0, "2 + 3 * 4")
	range1 := lineRange(1, "? / 2")
	tests := []struct {
		line int
		want lsp.Hover
	}{
		{0, lsp.Hover{
			Contents: []lsp.MarkedString{
				lsp.RawMarkedString("expression with 3 operands")},
			Range: &range0,
		}},
		{1, lsp.Hover{
			Contents: []lsp.MarkedString{
				lsp.RawMarkedString("expression with 2 operands")},
			Range: &range1,
		}},
		// Lines that don't compile have no hover.
		{2, lsp.Hover{}},
		{100, lsp.Hover{}},
	}
	for _, test := range tests {
		rawParams := must.OK1(json.Marshal(lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: uri},
			Position:     lsp.Position{Line: test.line},
		}))
		got, err := s.hover(context.Background(), nil, rawParams)
		if err != nil {
			t.Fatalf("hover at line %d -> error %v", test.line, err)
		}
		if diff := cmp.Diff(test.want, got,
			cmp.AllowUnexported(lsp.MarkedString{})); diff != "" {
			t.Errorf("hover at line %d (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s := newServer()
	conn := &notifyRecorder{notify: make(chan notification, 1)}
	rawParams := must.OK1(json.Marshal(lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{
			URI: "file:///calc.tally", Text: "1 +\n"}}))
	if _, err := s.didOpen(context.Background(), conn, rawParams); err != nil {
		t.Fatalf("didOpen -> error %v", err)
	}

	select {
	case n := <-conn.notify:
		if n.method != "textDocument/publishDiagnostics" {
			t.Errorf("got notification %q, want publishDiagnostics", n.method)
		}
		params := n.params.(lsp.PublishDiagnosticsParams)
		if len(params.Diagnostics) != 1 {
			t.Errorf("got %d diagnostics, want 1", len(params.Diagnostics))
		}
	case <-time.After(time.Second):
		t.Errorf("no notification received")
	}
}

func TestUTF16Len(t *testing.T) {
	tt.Test(t, tt.Fn("utf16Len", utf16Len), tt.Table{
		tt.Args("").Rets(0),
		tt.Args("2 + 3").Rets(5),
		tt.Args("π").Rets(1),
		// Astral code points take two UTF-16 units.
		tt.Args("𝜋").Rets(2),
	})
}

type notification struct {
	method string
	params any
}

// notifyRecorder implements jsonrpc2.JSONRPC2 and records notifications.
type notifyRecorder struct {
	notify chan notification
}

func (r *notifyRecorder) Call(_ context.Context, method string, params, result any, opt ...jsonrpc2.CallOption) error {
	return nil
}

func (r *notifyRecorder) Notify(_ context.Context, method string, params any, opt ...jsonrpc2.CallOption) error {
	r.notify <- notification{method, params}
	return nil
}

func (r *notifyRecorder) Close() error { return nil }
