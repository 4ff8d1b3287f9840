// Package command 提供 expand 与 server 命令的公共部分。
package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/config"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/logger"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/version"
	"github.com/lwmacct/251215-go-pkg-envexp/pkg/cfgm"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// LogFlags 日志相关 flags，挂在根命令上，子命令可以读取。
var LogFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "log-level",
		Value: Defaults.Log.Level,
		Usage: "日志级别 debug/info/warn/error",
	},
	&cli.StringFlag{
		Name:  "log-format",
		Value: Defaults.Log.Format,
		Usage: "日志格式 text/json",
	},
}

// LoadConfig 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags，并安装日志。
//
// 日志写到 stderr，stdout 留给命令输出。
func LoadConfig(_ context.Context, cmd *cli.Command, opts ...cfgm.Option) (*config.Config, error) {
	base := []cfgm.Option{cfgm.WithEnvPrefix(config.EnvPrefix)}
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	errWriter := cmd.Root().ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	logger.Setup(errWriter, cfg.Log.Level, cfg.Log.Format)

	return cfg, nil
}
