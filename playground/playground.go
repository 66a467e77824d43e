// Package playground serves a browser page for assembling JCPU programs.
//
// The page talks to the server over a websocket at /ws. Every message is a
// JSON object with a "type":
//
//	assemble  {"type":"assemble","text":...} -> {"type":"result",...}
//	format    {"type":"format","text":...}   -> {"type":"formatted","text":...}
//
// Anything else is answered with {"type":"error"}.
package playground

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/JCPU-Assembler/util"
)

const DefaultAddress = ":2037"

type request struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type response struct {
	Type        string                 `json:"type"`
	Text        string                 `json:"text,omitempty"`
	Words       []string               `json:"words,omitempty"`
	Listing     string                 `json:"listing,omitempty"`
	Diagnostics []assembler.Diagnostic `json:"diagnostics,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func assemble(text string) response {
	res := assembler.Assemble(text)
	words := make([]string, len(res.Words))
	for i, w := range res.Words {
		words[i] = fmt.Sprintf("%08x", w)
	}
	diagnostics := res.Diagnostics
	if diagnostics == nil {
		diagnostics = []assembler.Diagnostic{}
	}
	return response{
		Type:        "result",
		Words:       words,
		Listing:     res.Listing(),
		Diagnostics: diagnostics,
	}
}

func handleMessage(messageBytes []byte) response {
	var message request
	if err := json.Unmarshal(messageBytes, &message); err != nil {
		return response{Type: "error", Text: "invalid message: " + err.Error()}
	}

	switch message.Type {
	case "assemble":
		return assemble(message.Text)
	case "format":
		return response{Type: "formatted", Text: languageServer.FormatSource(message.Text)}
	}
	return response{Type: "error", Text: "unknown message type: " + message.Type}
}

func handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	// listen on conn for messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}

		reply := handleMessage(messageBytes)
		util.LogF("playground: %d byte message answered with %s", len(messageBytes), reply.Type)
		if err := conn.WriteJSON(reply); err != nil {
			log.Println("write:", err)
			return
		}
	}
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}

// Handler serves the page at / and the websocket at /ws.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleSocket)
	mux.HandleFunc("/", handleGetPage)
	return mux
}

func ListenAndServe(addr string) error {
	log.Printf("Connect to the playground at http://localhost%s", addr)
	return http.ListenAndServe(addr, Handler())
}
