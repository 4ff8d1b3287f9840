// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .envexp.yaml / ~/.envexp.yaml / /etc/envexp/config.yaml 等
//  3. 环境变量 - ENVEXP_ 前缀，例如 ENVEXP_EXPAND_MAX_STEPS
//  4. CLI flags
package config

import (
	"time"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "ENVEXP_"

// Config 应用配置。
type Config struct {
	Expand ExpandConfig `json:"expand" desc:"展开配置"`
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// ExpandConfig 展开配置。
type ExpandConfig struct {
	IgnoreEnv bool   `json:"ignore-env" desc:"不读取也不修改进程环境变量"`
	MaxSteps  int    `json:"max-steps" desc:"单个值在原始引用之外的替换步数"`
	Legacy    bool   `json:"legacy" desc:"空字符串视为不存在"`
	Format    string `json:"format" desc:"输出格式 env/json/yaml"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	MaxBody  int64         `json:"max-body" desc:"请求体大小上限 (字节)"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 debug/info/warn/error"`
	Format string `json:"format" desc:"日志格式 text/json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Expand: ExpandConfig{
			MaxSteps: envexp.DefaultMaxSteps,
			Format:   "env",
		},
		Server: ServerConfig{
			Addr:     `:${PORT:-40118}`,
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
			MaxBody:  1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Options 将展开配置转换为 [envexp.Option]。
func (c ExpandConfig) Options() []envexp.Option {
	opts := []envexp.Option{envexp.WithMaxSteps(c.MaxSteps)}
	if c.IgnoreEnv {
		opts = append(opts, envexp.WithIgnoreEnv())
	}
	if c.Legacy {
		opts = append(opts, envexp.WithLegacyFallback())
	}

	return opts
}
