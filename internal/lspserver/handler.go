// Package lspserver implements the Language Server Protocol handlers for
// the front end: on every open/change notification it re-parses the
// document and republishes whatever diag.Diagnostic values the parser
// collected, adapted from a semantic-tokens-and-completions server into a
// plain diagnostics-on-edit one since this front end has no type-checker
// or symbol index yet for completion/hover to draw on.
package lspserver

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vela/internal/diag"
	"vela/internal/front"
	"vela/internal/parser"
)

// Handler implements the glsp protocol interface for vela source files.
type Handler struct {
	compiler *front.Compiler

	mu      sync.RWMutex
	content map[string]string
}

// NewHandler returns a Handler backed by compiler's shared interner,
// universe, and type store, so re-parses across edits stay
// type-identity-compatible with each other.
func NewHandler(compiler *front.Compiler) *Handler {
	return &Handler{compiler: compiler, content: make(map[string]string)}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("vela-lsp Initialize called")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("vela-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("vela-lsp Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.reparseAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	return h.reparseAndPublish(ctx, params.TextDocument.URI, change.Text)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

func (h *Handler) reparseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	channel := diag.New(nil)
	p := parser.New(path, []byte(text), h.compiler.Interner, h.compiler.Universe, h.compiler.Store, channel, parser.Config{
		PointerSize: h.compiler.Target.PointerSize,
		IntSize:     h.compiler.Target.IntSize,
	})
	p.Parse()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toLSPDiagnostics(channel.All()),
	})
	return nil
}

func toLSPDiagnostics(diags []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(d.Range.Focus.Line - 1),
					Character: uint32(d.Range.Focus.Column - 1),
				},
				End: protocol.Position{
					Line:      uint32(d.Range.Focus.Line - 1),
					Character: uint32(d.Range.Focus.Column),
				},
			},
			Severity: ptrSeverity(toLSPSeverity(d.Severity)),
			Source:   ptrString("vela"),
			Message:  d.Message,
		})
	}
	return out
}

func toLSPSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func uriToPath(rawURI protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(rawURI))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool                                            { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity     { return &s }
func ptrString(s string) *string                                      { return &s }
