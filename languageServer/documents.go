package languageServer

import (
	"context"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/util"
)

// documentStore holds the open documents of one connection.
type documentStore struct {
	mu   sync.Mutex
	docs map[DocumentUri]TextDocumentItem
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[DocumentUri]TextDocumentItem)}
}

func (s *documentStore) get(uri DocumentUri) (TextDocumentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) put(doc TextDocumentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.URI] = doc
}

func (s *documentStore) remove(uri DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// assemble reassembles the stored text of uri and caches the result for
// hover requests.
func (s *documentStore) assemble(uri DocumentUri) []assembler.Diagnostic {
	doc, _ := s.get(uri)

	assembledRes := assembler.Assemble(doc.Text)
	if assembledRes.Diagnostics == nil {
		assembledRes.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.URI = uri
	doc.lastAssembledResult = assembledRes
	s.put(doc)
	return assembledRes.Diagnostics
}

func (h *handler) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	h.documents.put(decodedParams.TextDocument)

	diagnostics := h.documents.assemble(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	h.documents.remove(decodedParams.TextDocument.URI)
}

func (h *handler) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}
	if len(decodedParams.ContentChanges) == 0 {
		return
	}

	// only full document sync is registered, so the last change is the whole text
	doc, _ := h.documents.get(decodedParams.TextDocument.URI)
	doc.URI = decodedParams.TextDocument.URI
	doc.Text = decodedParams.ContentChanges[len(decodedParams.ContentChanges)-1].Text
	doc.Version = decodedParams.TextDocument.Version
	h.documents.put(doc)

	diagnostics := h.documents.assemble(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	diagnostics := h.documents.assemble(decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

func (h *handler) documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	doc, _ := h.documents.get(decodedParams.TextDocument.URI)
	lines := strings.Split(doc.Text, "\n")

	edits := make([]TextEdit, 0)
	formatted := FormatSource(doc.Text)
	if formatted != doc.Text {
		edits = append(edits, TextEdit{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 0},
				End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
			},
			NewText: formatted,
		})
	}

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("JCPU Language Server: reformatted %s (%d edits)", decodedParams.TextDocument.URI, len(edits))
}
