package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
// 提供 appName 时依次为：
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//
// 最后总是追加 config.yaml 与 config/config.yaml。
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：默认值、配置文件、环境变量(前缀)、CLI flags。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.env == nil {
		o.env = envexp.Snapshot()
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	configMap := structToMap(defaultConfig)

	// 配置文件：命中首个即停止
	for _, path := range resolvePaths(o.baseDir, o.configPaths) {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}
		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)

		break
	}

	if !o.noTemplateExpansion {
		if err := expandStrings(configMap, o.env); err != nil {
			return nil, fmt.Errorf("expand config: %w", err)
		}
	}

	if o.envPrefix != "" {
		bindings := envBindings(o.envPrefix, collectConfigKeys(reflect.TypeOf(defaultConfig), ""))
		for envKey, path := range bindings {
			if val, ok := o.env.Lookup(envKey); ok && val != "" {
				setByPath(configMap, path, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", path)
			}
		}
	}

	if o.cmd != nil {
		applyFlags(o.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// resolvePaths 将相对路径拼接到 baseDir，baseDir 为空时原样返回。
func resolvePaths(baseDir string, paths []string) []string {
	if baseDir == "" {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(baseDir, p)
		}
	}

	return out
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
//
// 示例：
//
//	cfg := cfgm.MustLoad(DefaultConfig(),
//	    cfgm.WithAppName("myapp"),
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// LoadCmd 是 [Load] 的便捷版本，注入 [WithCommand]，appName 非空时注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd), WithAppName(appName)}

	return Load(defaultConfig, append(base, opts...)...)
}

// MustLoadCmd 调用 [LoadCmd]，失败时 panic。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// collectConfigKeys 收集叶子字段的点号路径，如 expand.max-steps。
func collectConfigKeys(typ reflect.Type, prefix string) []string {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := joinKey(prefix, configTagName(field))
		if key == prefix {
			continue
		}
		if isStructType(field.Type) {
			keys = append(keys, collectConfigKeys(field.Type, key)...)

			continue
		}
		keys = append(keys, key)
	}

	return keys
}

// envBindings 生成 环境变量名 → 配置路径 的映射。
func envBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return out
}

// applyFlags 将显式设置的 CLI flags 写入配置 map。
//
// 支持 string、bool、int、int64、float64、time.Duration 与 []string。
func applyFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := joinKey(prefix, configTagName(field))
		if key == prefix {
			continue
		}
		if isStructType(field.Type) {
			applyFlags(cmd, config, field.Type, key)

			continue
		}

		name := strings.ReplaceAll(key, ".", "-")
		if !cmd.IsSet(name) {
			continue
		}

		switch {
		case field.Type == durationType:
			setByPath(config, key, cmd.Duration(name))
		case field.Type.Kind() == reflect.String:
			setByPath(config, key, cmd.String(name))
		case field.Type.Kind() == reflect.Bool:
			setByPath(config, key, cmd.Bool(name))
		case field.Type.Kind() == reflect.Int:
			setByPath(config, key, cmd.Int(name))
		case field.Type.Kind() == reflect.Int64:
			setByPath(config, key, cmd.Int64(name))
		case field.Type.Kind() == reflect.Float64:
			setByPath(config, key, cmd.Float64(name))
		case field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.String:
			setByPath(config, key, cmd.StringSlice(name))
		default:
			slog.Debug("Unsupported flag type", "flag", name, "type", field.Type.String())
		}
	}
}
