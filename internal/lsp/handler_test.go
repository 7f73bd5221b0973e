package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pilasm/internal/lsp"
)

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	require.NotEmpty(t, r.published, "no diagnostics were published")
	return r.published[len(r.published)-1]
}

func open(t *testing.T, h *lsp.Handler, ctx *glsp.Context, uri, text string) {
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: text},
	})
	require.NoError(t, err)
}

func TestDidOpenPublishesNoDiagnosticsForValidSource(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}

	open(t, h, rec.context(), "file:///tmp/main.pil", "namespace Main(16);\ncol witness x;\nx' = x + 1;\n")

	last := rec.last(t)
	assert.Equal(t, "file:///tmp/main.pil", last.URI)
	assert.Empty(t, last.Diagnostics)
	require.NotNil(t, h.PILFile("file:///tmp/main.pil"))
	assert.Len(t, h.PILFile("file:///tmp/main.pil").Statements, 3)
}

func TestDidOpenReportsSyntaxError(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}

	open(t, h, rec.context(), "file:///tmp/main.pil", "col witness x;\ninclude foo;\n")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	assert.Equal(t, "expected file name after 'include', found 'foo'", d.Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 8}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 11}, d.Range.End)
	require.NotNil(t, d.Code)
	assert.Equal(t, "E0101", d.Code.Value)
	require.NotNil(t, d.Source)
	assert.Equal(t, "pilasm", *d.Source)
	assert.Nil(t, h.PILFile("file:///tmp/main.pil"))
}

func TestDiagnosticCarriesHelpText(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}

	open(t, h, rec.context(), "file:///tmp/main.pil", "let x = f(1")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, "found end of input\nhelp: the input ends early")
}

func TestASMDocumentsUseTheMachineGrammar(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}

	open(t, h, rec.context(), "file:///tmp/vm.asm", "machine Main with degre: 8 { reg A; }\n")

	diagnostics := rec.last(t).Diagnostics
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0102", diagnostics[0].Code.Value)
	assert.Contains(t, diagnostics[0].Message, "unknown machine property `degre`")
	assert.Contains(t, diagnostics[0].Message, "help: did you mean 'degree'?")

	err := h.TextDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///tmp/vm.asm"},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "machine Main with degree: 8 { reg A; }\n"},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, rec.last(t).Diagnostics)
	module := h.ASMModule("file:///tmp/vm.asm")
	require.NotNil(t, module)
	require.Len(t, module.Statements, 1)
}

func TestDidChangeAppliesRangedEdits(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	open(t, h, rec.context(), "file:///tmp/a.pil", "let x = 1;\n")

	err := h.TextDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.pil"},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 8},
					End:   protocol.Position{Line: 0, Character: 9},
				},
				Text: "42",
			},
		},
	})
	require.NoError(t, err)

	text, ok := h.Text("file:///tmp/a.pil")
	require.True(t, ok)
	assert.Equal(t, "let x = 42;\n", text)
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	h := lsp.NewHandler()
	rec := &recorder{}
	open(t, h, rec.context(), "file:///tmp/a.pil", "let x = ;\n")
	require.NotEmpty(t, rec.last(t).Diagnostics)

	err := h.TextDocumentDidClose(rec.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/a.pil"},
	})
	require.NoError(t, err)

	_, ok := h.Text("file:///tmp/a.pil")
	assert.False(t, ok)
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewHandler()

	labels := func(uri string) []string {
		result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			},
		})
		require.NoError(t, err)
		var out []string
		for _, item := range result.(*protocol.CompletionList).Items {
			out = append(out, item.Label)
		}
		return out
	}

	pil := labels("file:///tmp/a.pil")
	assert.Contains(t, pil, "namespace")
	assert.Contains(t, pil, "machine")
	assert.NotContains(t, pil, "operation_id")

	assert.Contains(t, labels("file:///tmp/a.asm"), "operation_id")
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewHandler()
	uri := "file:///tmp/main.asm"
	open(t, h, &glsp.Context{}, uri, "machine Main {\n    reg A;\n    A <=X= std::f(0x10, \"s\");\n}\n")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 12)

	assertToken(t, &decoded[0], 1, 1, 7, "keyword", nil)
	assertToken(t, &decoded[1], 1, 9, 4, "type", []string{"declaration"})
	assertToken(t, &decoded[2], 2, 5, 3, "keyword", nil)
	assertToken(t, &decoded[3], 2, 9, 1, "property", []string{"declaration"})
	assertToken(t, &decoded[4], 3, 5, 1, "variable", nil)
	assertToken(t, &decoded[5], 3, 7, 2, "operator", nil)
	assertToken(t, &decoded[6], 3, 9, 1, "variable", nil)
	assertToken(t, &decoded[7], 3, 10, 1, "operator", nil)
	assertToken(t, &decoded[8], 3, 12, 3, "namespace", nil)
	assertToken(t, &decoded[9], 3, 17, 1, "function", nil)
	assertToken(t, &decoded[10], 3, 19, 4, "number", nil)
	assertToken(t, &decoded[11], 3, 25, 3, "string", nil)
}

func TestSemanticTokensRequireOpenDocument(t *testing.T) {
	h := lsp.NewHandler()
	_, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/missing.pil"},
	})
	assert.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1,
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
