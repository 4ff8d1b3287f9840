// Package version 提供版本信息与 version 子命令。
package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，同时用于默认配置路径。
const AppRawName = "envexp"

// Version 由构建时注入：-ldflags "-X .../internal/version.Version=v1.0.0"。
var Version = ""

// GetVersion 返回版本号，未注入时使用模块版本，仍未知时返回 "dev"。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Command 输出版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (%s %s/%s)\n",
			AppRawName, GetVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)

		return err
	},
}
