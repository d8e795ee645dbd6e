package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

// version is set at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A dismissed picker exits 1 without an error message
	errorHandler := func(w io.Writer, styles fang.Styles, err error) {
		if errors.Is(err, errDismissed) {
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}

	if err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion(version),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		stop()
		os.Exit(1)
	}
}
