package envexp

// Interpolate 展开单个值中的引用，不做转义还原。
//
// env 为 nil 时视为空环境；set 提供同级配置项的原始值，可以为 nil。
// 超过步数上限时返回 [*DepthError]。
func Interpolate(value string, env Env, set *Set, opts ...Option) (string, error) {
	if env == nil {
		env = MapEnv{}
	}
	out, _, err := newOptions(opts).interpolate("", value, env, set)

	return out, err
}

// interpolate 每一步替换最右侧的引用，直到没有可替换的引用。
//
// 步数上限为 maxSteps 加上原始值中未转义 "$" 的个数，
// 因此不含循环的长值只要展开不引入新的引用就不会触发上限。
//
// 替换结果恰好等于该 key 的环境值时直接返回，
// 用于处理环境值本身包含 "$" 的情况，例如 PASSWORD=pas$word。
func (o *options) interpolate(key, value string, env Env, set *Set) (string, int, error) {
	limit := o.maxSteps + countMarkers(value)
	for step := 0; ; step++ {
		at := lastMarker(value)
		if at < 0 {
			return value, step, nil
		}
		ref, ok := parseReference(value, at)
		if !ok {
			return value, step, nil
		}
		if step >= limit {
			return "", step, &DepthError{Key: key, Steps: step}
		}

		value = value[:ref.start] + o.resolve(ref, env, set) + value[ref.end:]

		if envValue, ok := o.lookup(env, ref.key); ok && value == envValue {
			return value, step + 1, nil
		}
	}
}

// resolve 依次尝试环境值、默认值、配置项原始值。
func (o *options) resolve(ref reference, env Env, set *Set) string {
	if value, ok := o.lookup(env, ref.key); ok {
		return value
	}
	if ref.hasDef && o.present(ref.def) {
		return ref.def
	}
	if value, ok := set.Get(ref.key); ok && o.present(value) {
		return value
	}

	return ""
}

func (o *options) lookup(env Env, key string) (string, bool) {
	value, ok := env.Lookup(key)

	return value, ok && o.present(value)
}

func (o *options) present(value string) bool {
	return !o.legacy || value != ""
}
