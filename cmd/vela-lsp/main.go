package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"vela/internal/front"
	"vela/internal/lspserver"
)

const lsName = "vela"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	compiler, err := front.LoadConfig(".")
	if err != nil {
		log.Println("failed to load config:", err)
		os.Exit(1)
	}

	h := lspserver.NewHandler(compiler)
	handler = protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentDidChange: h.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting vela LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting vela LSP server:", err)
		os.Exit(1)
	}
}
