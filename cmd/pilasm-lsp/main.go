package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"pilasm/internal/lsp"
)

const lsName = "pilasm"

var version = "0.1.0"

func main() {
	var (
		verbosity int
		debug     bool
	)

	root := &cobra.Command{
		Use:     "pilasm-lsp",
		Short:   "Language server for PIL and ASM files over stdio",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			return run(debug)
		},
		SilenceUsage: true,
	}
	root.Flags().IntVar(&verbosity, "verbosity", 1, "log verbosity (0 is quiet)")
	root.Flags().BoolVar(&debug, "debug", false, "log every protocol message")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(debug bool) error {
	h := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, debug)
	commonlog.GetLogger("pilasm").Infof("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		return fmt.Errorf("running language server: %w", err)
	}
	return nil
}
