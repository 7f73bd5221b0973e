package lsp

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pilasm/internal/ast"
	"pilasm/internal/parser"
)

// SemanticTokenTypes is the legend of token types advertised to clients.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"property",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the legend of token modifiers advertised to clients.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

var log = commonlog.GetLogger("pilasm.lsp")

// document is the last known state of an open editor buffer.
type document struct {
	text string
	pil  *ast.PILFile
	asm  *ast.ASMModule
	err  error
}

// Handler implements the LSP server handlers for PIL and ASM sources.
// Buffers are kept in memory; the file system is never read.
type Handler struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

func NewHandler() *Handler {
	return &Handler{docs: make(map[protocol.DocumentUri]*document)}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen parses the opened buffer and publishes its diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentDidChange applies content changes and reparses the buffer.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	text, _ := h.Text(uri)
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := c.Range.IndexesIn(text)
			text = text[:start] + c.Text + text[end:]
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	h.update(ctx, uri, text)
	return nil
}

// TextDocumentCompletion offers keywords, plus machine properties in ASM files.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	keywords := make([]string, 0, len(parser.KEYWORDS))
	for kw := range parser.KEYWORDS {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	keywordKind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
	}

	if isASM(params.TextDocument.URI) {
		propertyKind := protocol.CompletionItemKindProperty
		for _, prop := range []string{
			ast.PropertyDegree,
			ast.PropertyMinDegree,
			ast.PropertyMaxDegree,
			ast.PropertyLatch,
			ast.PropertyOperationID,
			ast.PropertyCallSelectors,
		} {
			items = append(items, protocol.CompletionItem{Label: prop, Kind: &propertyKind})
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	text, ok := h.Text(uri)
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}

	tokens := collectSemanticTokens(uriToName(uri), text)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// Text returns the current content of an open document.
func (h *Handler) Text(uri protocol.DocumentUri) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	if !ok {
		return "", false
	}
	return doc.text, true
}

// PILFile returns the last successful parse of a PIL document.
func (h *Handler) PILFile(uri protocol.DocumentUri) *ast.PILFile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if doc, ok := h.docs[uri]; ok {
		return doc.pil
	}
	return nil
}

// ASMModule returns the last successful parse of an ASM document.
func (h *Handler) ASMModule(uri protocol.DocumentUri) *ast.ASMModule {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if doc, ok := h.docs[uri]; ok {
		return doc.asm
	}
	return nil
}

// update stores text, reparses it and publishes the resulting diagnostics.
// A failed parse keeps the previous tree.
func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	name := uriToName(uri)

	h.mu.Lock()
	doc, ok := h.docs[uri]
	if !ok {
		doc = &document{}
		h.docs[uri] = doc
	}
	doc.text = text
	if isASM(uri) {
		module, err := parser.ParseASMModule(name, text)
		if err == nil {
			doc.asm = module
		}
		doc.err = err
	} else {
		file, err := parser.ParsePILFile(name, text)
		if err == nil {
			doc.pil = file
		}
		doc.err = err
	}
	err := doc.err
	h.mu.Unlock()

	if err != nil {
		log.Debugf("%s: %s", name, err)
	}
	publishDiagnostics(ctx, uri, ConvertParseError(err))
}

func isASM(uri protocol.DocumentUri) bool {
	return strings.HasSuffix(strings.ToLower(uri), ".asm")
}

// uriToName returns the file name used in positions of a document.
func uriToName(uri protocol.DocumentUri) string {
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return uri
	}
	return path.Base(u.Path)
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
