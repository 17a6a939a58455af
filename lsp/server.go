// Package lsp serves SPWN diagnostics and document outlines over the
// Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/spwn/parser"
)

const lsName = "spwn"

var log = commonlog.GetLogger("spwn.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	options []parser.Option

	mu        sync.Mutex
	documents map[protocol.DocumentUri]*Document
}

// Document is the last analysed state of an open file.
type Document struct {
	URI         protocol.DocumentUri
	Text        string
	Diagnostics []protocol.Diagnostic
	Symbols     []protocol.DocumentSymbol
}

func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		version:   version,
		options:   opts,
		documents: map[protocol.DocumentUri]*Document{},
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.Update(params.TextDocument.URI, params.TextDocument.Text)
	publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Noticef("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	doc := ls.Update(params.TextDocument.URI, textChange.Text)
	publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.Close(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	doc := ls.Update(params.TextDocument.URI, *params.Text)
	publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := ls.Document(params.TextDocument.URI)
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}
	return doc.Symbols, nil
}

// Update replaces the text of uri and re-analyses it.
func (ls *Server) Update(uri protocol.DocumentUri, text string) *Document {
	diags, symbols := Analyze(uriToPath(uri), text, ls.options...)
	doc := &Document{URI: uri, Text: text, Diagnostics: diags, Symbols: symbols}

	ls.mu.Lock()
	ls.documents[uri] = doc
	ls.mu.Unlock()

	log.Debugf("analysed %s: %d diagnostics", uri, len(diags))
	return doc
}

func (ls *Server) Document(uri protocol.DocumentUri) (*Document, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	doc, ok := ls.documents[uri]
	return doc, ok
}

func (ls *Server) Close(uri protocol.DocumentUri) {
	ls.mu.Lock()
	delete(ls.documents, uri)
	ls.mu.Unlock()
}

func publish(ctx *glsp.Context, doc *Document) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: doc.Diagnostics,
	})
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
