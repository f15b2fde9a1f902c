package codebase

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/skim/java/outline"
	"github.com/dhamidi/skim/java/parser"
)

const lsName = "skim"

// LSPServer keeps a Codebase in sync with an editor. Every open, change,
// save and close re-parses the document and publishes its diagnostics.
type LSPServer struct {
	codebase *Codebase
	opts     []Option
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, opts ...Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
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

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Codebase returns the codebase created by initialize, or nil before it.
func (ls *LSPServer) Codebase() *Codebase {
	return ls.codebase
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if ls.codebase == nil {
		return nil
	}
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Errorf("initial scan: %s", err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	info := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			info := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, info)
		}
	}
	return nil
}

// textDocumentDidClose falls back to the file on disk, dropping the
// document when it was never saved.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	info, err := ls.codebase.ScanFile(path)
	if errors.Is(err, os.ErrNotExist) {
		ls.codebase.RemoveFile(path)
	}
	ls.publish(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil
	}
	var info *FileInfo
	var err error
	if params.Text != nil {
		info = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if info, err = ls.codebase.ScanFile(path); err != nil {
		log.Warningf("save: %s", err)
	}
	ls.publish(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, ok := ls.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	return DocumentSymbols(file.Outline), nil
}

// document maps uri to a path of the codebase. It fails before
// initialize has created the codebase.
func (ls *LSPServer) document(uri protocol.DocumentUri) (string, bool) {
	if ls.codebase == nil {
		log.Warningf("%s: request before initialize", uri)
		return "", false
	}
	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("%s: %s", uri, err)
		return "", false
	}
	return path, true
}

// publish sends the diagnostics of info, or clears them when info is nil.
func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, info *FileInfo) {
	diagnostics := []protocol.Diagnostic{}
	if info != nil {
		diagnostics = Diagnostics(info)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics converts the syntax errors of a parse into LSP diagnostics.
// Each diagnostic covers the token it was reported at.
func Diagnostics(info *FileInfo) []protocol.Diagnostic {
	result := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, d := range info.Diagnostics {
		end := d.Pos
		if tok := tokenAt(info.Fragments, d.Pos.Offset); tok != nil {
			end = tok.Span.End
		}
		result = append(result, protocol.Diagnostic{
			Range:    protocol.Range{Start: toProtocolPosition(d.Pos), End: toProtocolPosition(end)},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return result
}

func tokenAt(frags []parser.Fragment, offset int) *parser.Token {
	for i := range frags {
		f := &frags[i]
		if f.Span.Start.Offset > offset {
			return nil
		}
		if f.IsToken() {
			if f.Token.Span.Start.Offset == offset {
				return &f.Token
			}
			continue
		}
		if f.Span.Contains(offset) {
			if tok := tokenAt(f.Children, offset); tok != nil {
				return tok
			}
		}
	}
	return nil
}

// DocumentSymbols renders an outline as nested LSP document symbols.
func DocumentSymbols(file *outline.File) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if file == nil {
		return symbols
	}
	if m := file.Module; m != nil {
		symbols = append(symbols, symbol(m.Name, "", protocol.SymbolKindModule, m.Span))
	}
	for _, t := range file.Types {
		symbols = append(symbols, typeSymbol(t))
	}
	return symbols
}

func typeSymbol(t *outline.Type) protocol.DocumentSymbol {
	s := symbol(t.Name, string(t.Kind), typeSymbolKind(t.Kind), t.Span)
	for _, c := range t.EnumConstants {
		s.Children = append(s.Children, symbol(c.Name, "", protocol.SymbolKindEnumMember, c.Span))
	}
	for _, f := range t.Fields {
		s.Children = append(s.Children, symbol(f.Name, f.Type, protocol.SymbolKindField, f.Span))
	}
	for _, m := range t.Methods {
		kind := protocol.SymbolKindMethod
		if m.IsConstructor {
			kind = protocol.SymbolKindConstructor
		}
		s.Children = append(s.Children, symbol(m.Name, signature(m), kind, m.Span))
	}
	for _, nested := range t.Types {
		s.Children = append(s.Children, typeSymbol(nested))
	}
	return s
}

func typeSymbolKind(kind outline.Kind) protocol.SymbolKind {
	switch kind {
	case outline.KindInterface, outline.KindAnnotation:
		return protocol.SymbolKindInterface
	case outline.KindEnum:
		return protocol.SymbolKindEnum
	case outline.KindRecord:
		return protocol.SymbolKindStruct
	default:
		return protocol.SymbolKindClass
	}
}

func signature(m outline.Method) string {
	var params []string
	for _, p := range m.Parameters {
		params = append(params, p.Type)
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if m.ReturnType != "" {
		sig += " " + m.ReturnType
	}
	return sig
}

func symbol(name, detail string, kind protocol.SymbolKind, span parser.Span) protocol.DocumentSymbol {
	r := protocol.Range{Start: toProtocolPosition(span.Start), End: toProtocolPosition(span.End)}
	s := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
	if detail != "" {
		s.Detail = &detail
	}
	return s
}

// toProtocolPosition maps 1-based lines and columns to LSP's 0-based ones.
// Columns are byte based.
func toProtocolPosition(pos parser.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
