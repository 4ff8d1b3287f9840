package envexp

import (
	"fmt"
	"os"
	"strings"
)

// Env 是展开时使用的环境上下文。
//
// 展开过程会通过 Lookup 读取，并在结束时通过 Set 写回全部结果。
type Env interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// Validator 可由 [Env] 实现，用于在写回前校验全部结果。
//
// [Expand] 在第一次调用 Set 之前校验每个配置项，任一项不合法时不写入任何值。
type Validator interface {
	Validate(key, value string) error
}

// MapEnv 是基于 map 的环境上下文，不涉及进程环境变量。
type MapEnv map[string]string

// Lookup 实现 [Env]。
func (m MapEnv) Lookup(key string) (string, bool) {
	value, ok := m[key]

	return value, ok
}

// Set 实现 [Env]。
func (m MapEnv) Set(key, value string) error {
	m[key] = value

	return nil
}

// ProcessEnv 直接读写当前进程的环境变量。
type ProcessEnv struct{}

// Lookup 实现 [Env]。
func (ProcessEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set 实现 [Env]。
func (ProcessEnv) Set(key, value string) error {
	return os.Setenv(key, value)
}

// Validate 实现 [Validator]，拒绝进程环境变量无法保存的 key 与值。
func (ProcessEnv) Validate(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("invalid environment key %q", key)
	}
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("invalid value for %s: contains NUL", key)
	}

	return nil
}

// Snapshot 生成当前进程环境变量的快照。
//
// 对快照的写入不会影响进程环境变量。
func Snapshot() MapEnv {
	return ParseEnviron(os.Environ())
}

// ParseEnviron 将 "KEY=VALUE" 形式的列表转换为 [MapEnv]，缺少 "=" 的项被忽略。
func ParseEnviron(environ []string) MapEnv {
	env := make(MapEnv, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			env[key] = value
		}
	}

	return env
}
