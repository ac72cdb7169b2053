package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/K3nZo20/DbMetaTool/internal/cli"
	"github.com/K3nZo20/DbMetaTool/pkg/dbmeta"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dbmeta.ExitPanic)
		}
	}()

	if os.Getenv("DBMETA_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dbmeta.ExitCodeForError(err))
	}
}
