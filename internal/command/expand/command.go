// Package expand 提供展开键值文件的命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command"
)

// Command 展开命令
var Command = NewCommand()

// NewCommand 创建展开命令，每次调用返回独立的 flag 实例。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开 YAML/JSON 键值文件中的变量引用",
		ArgsUsage: "[FILE...]",
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "追加配置项 KEY=VALUE，可重复，覆盖文件中的同名项",
			},
			&cli.BoolFlag{
				Name:    "expand-ignore-env",
				Aliases: []string{"i"},
				Value:   command.Defaults.Expand.IgnoreEnv,
				Usage:   "不读取也不修改进程环境变量",
			},
			&cli.IntFlag{
				Name:  "expand-max-steps",
				Value: command.Defaults.Expand.MaxSteps,
				Usage: "单个值在原始引用之外的替换步数",
			},
			&cli.BoolFlag{
				Name:  "expand-legacy",
				Value: command.Defaults.Expand.Legacy,
				Usage: "空字符串视为不存在",
			},
			&cli.StringFlag{
				Name:    "expand-format",
				Aliases: []string{"f"},
				Value:   command.Defaults.Expand.Format,
				Usage:   "输出格式 env/json/yaml",
			},
		},
	}
}
