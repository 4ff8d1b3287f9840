package envexp

import (
	"fmt"
	"log/slog"
)

// Expand 展开 set 中的所有配置项，并将结果写回环境上下文。
//
// 处理流程：
//  1. 选择环境上下文：[WithIgnoreEnv] 或 env 为 nil 时使用新的空 [MapEnv]
//  2. 按插入顺序处理每个配置项：环境中已有该 key 时直接使用环境值，否则调用 [Interpolate]
//  3. 对结果执行 [Unescape]
//  4. 全部处理完成后，若环境上下文实现了 [Validator]，先校验全部结果
//  5. 将每个结果写入环境上下文
//
// 返回新的 [Set]，不修改传入的 set；展开时引用的同级配置项始终是 set 中的原始值。
// 展开或校验出错时返回错误，且不会写入环境上下文。
// 未实现 [Validator] 的环境在 Set 中途失败时，之前的写入会保留。
func Expand(set *Set, env Env, opts ...Option) (*Set, error) {
	o := newOptions(opts)
	if o.ignoreEnv || env == nil {
		env = MapEnv{}
	}

	out := NewSet()
	for key, raw := range set.All() {
		value, ok := env.Lookup(key)
		if ok {
			slog.Debug("Entry taken from environment", "key", key)
		} else {
			var steps int
			var err error
			value, steps, err = o.interpolate(key, raw, env, set)
			if err != nil {
				return nil, err
			}
			slog.Debug("Entry interpolated", "key", key, "steps", steps)
		}
		out.Put(key, Unescape(value))
	}

	if v, ok := env.(Validator); ok {
		for key, value := range out.All() {
			if err := v.Validate(key, value); err != nil {
				return nil, fmt.Errorf("envexp: set %s: %w", key, err)
			}
		}
	}

	for key, value := range out.All() {
		if err := env.Set(key, value); err != nil {
			return nil, fmt.Errorf("envexp: set %s: %w", key, err)
		}
	}

	return out, nil
}
