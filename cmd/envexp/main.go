package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command/expand"
)

func main() {
	if err := expand.Command.Run(context.Background(), os.Args); err != nil {
		slog.Error("应用程序运行失败", "error", err)
		os.Exit(1)
	}
}
