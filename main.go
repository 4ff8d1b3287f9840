package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/command/expand"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/command/server"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "递归展开键值配置中的变量引用",
		Version: version.GetVersion(),
		Flags:   command.LogFlags,
		Commands: []*cli.Command{
			version.Command,
			expand.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
