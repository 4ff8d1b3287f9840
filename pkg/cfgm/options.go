package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// options 配置加载选项。
type options struct {
	appName             string // 用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	baseDir             string // 相对配置路径的解析基准，空表示当前工作目录
	envPrefix           string
	env                 envexp.Env // 环境变量来源，默认为进程环境变量快照
	noTemplateExpansion bool
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，显式设置的 flags 覆盖其他来源。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；相对路径会基于 [WithBaseDir] 解析。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置配置路径的解析基准。
//
// 默认基准为当前工作目录。注意：绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 只绑定配置结构体中定义的 key，值为空的环境变量会被忽略。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEnv 替换环境变量来源，主要用于测试。
//
// 变量展开与前缀绑定都从 env 读取；展开过程中 env 不会被写入。
func WithEnv(env envexp.Env) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithoutTemplateExpansion 禁用默认值与配置文件的变量展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}
