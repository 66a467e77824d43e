package languageServer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/util"
)

const DefaultTCPAddress = ":2036"

const languageID = "jcpu"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// Serve runs the protocol over rwc until the peer disconnects or sends exit.
func Serve(ctx context.Context, rwc io.ReadWriteCloser) {
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), newHandler())
	<-conn.DisconnectNotify()
}

func ListenAndServe() {
	// using stdin and stdout
	Serve(context.Background(), stdrwc{})
}

func ListenAndServeTCP(addr string) {
	// using tcp mode for jsonrpc2
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen for tcp traffic on %s: %v", addr, err)
	}
	defer lis.Close()

	log.Println("JCPU Language Server: listening for TCP connections on", addr)

	connectionCount := 0

	for {
		conn, err := lis.Accept()
		if err != nil {
			log.Fatalf("failed to accept incoming connection: %v", err)
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		log.Printf("JCPU Language Server: received incoming connection #%d\n", connectionID)
		go func() {
			Serve(context.Background(), conn)
			log.Printf("JCPU Language Server: connection #%d closed\n", connectionID)
		}()
	}
}

type handler struct {
	documents *documentStore
}

func newHandler() *handler {
	return &handler{documents: newDocumentStore()}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("JCPU Language Server: received request: %s", req.Method)
	switch req.Method {
	case "textDocument/didOpen":
		h.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(conn, req)
	case "initialize":
		h.handleInitialize(conn, req)
	case "initialized":
	case "textDocument/diagnostic":
		h.documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil":
		h.documentWillSaveWaitUntil(conn, req)
	case "textDocument/hover":
		h.hoverRequest(conn, req)

	// quitting
	case "shutdown":
		conn.Reply(context.Background(), req.ID, nil)
	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			conn.ReplyWithError(context.Background(), req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

// decodeParams unmarshals the request parameters into v, replying with an
// invalid params error when they are missing or malformed.
func decodeParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request, v interface{}) bool {
	if req.Params != nil && string(*req.Params) != "null" && json.Unmarshal(*req.Params, v) == nil {
		return true
	}
	util.LogF("JCPU Language Server: invalid parameters for %s", req.Method)
	if !req.Notif {
		conn.ReplyWithError(context.Background(), req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: "invalid parameters",
		})
	}
	return false
}

func (h *handler) handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if !decodeParams(conn, req, &decodedParams) {
		return
	}

	util.LogF("JCPU Language Server: initialize from process %d, root %q", decodedParams.ProcessID, decodedParams.RootURI)

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.DiagnosticProvider = DiagnosticOptions{}
	result.ServerInfo.Name = "JCPU Language Server"
	conn.Reply(context.Background(), req.ID, result)

	registerRemainingCapabilities(conn)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil can only be registered dynamically

	util.LogF("JCPU Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: languageID,
						},
					},
				},
			},
		},
	}

	go func() {
		if err := conn.Call(context.Background(), "client/registerCapability", params, nil); err != nil {
			util.LogF("JCPU Language Server: registering capabilities failed: %v", err)
			return
		}
		util.LogF("JCPU Language Server: registered remaining capabilities")
	}()
}
