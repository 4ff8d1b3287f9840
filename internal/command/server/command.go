// Package server 提供 HTTP 展开服务命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command"
	"github.com/lwmacct/251215-go-pkg-envexp/internal/version"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:     "server",
	Aliases:  []string{"serve"},
	Usage:    "启动 HTTP 展开服务",
	Action:   action,
	Commands: []*cli.Command{version.Command},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "server-addr",
			Aliases: []string{"a"},
			Value:   command.Defaults.Server.Addr,
			Usage:   "服务器监听地址",
		},
		&cli.DurationFlag{
			Name:  "server-timeout",
			Value: command.Defaults.Server.Timeout,
			Usage: "HTTP 读写超时",
		},
		&cli.DurationFlag{
			Name:  "server-idletime",
			Value: command.Defaults.Server.Idletime,
			Usage: "HTTP 空闲超时",
		},
		&cli.Int64Flag{
			Name:  "server-max-body",
			Value: command.Defaults.Server.MaxBody,
			Usage: "请求体大小上限 (字节)",
		},
		&cli.IntFlag{
			Name:  "expand-max-steps",
			Value: command.Defaults.Expand.MaxSteps,
			Usage: "单个值在原始引用之外的替换步数，请求中的 max_steps 不能超过该值",
		},
	},
}
