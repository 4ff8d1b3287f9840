package envexp

// DefaultMaxSteps 是单个值在原始引用之外允许的替换步数。
const DefaultMaxSteps = 1024

// options 展开选项。
type options struct {
	ignoreEnv bool // 使用空的环境上下文
	maxSteps  int
	legacy    bool // 空字符串视为不存在
}

// Option 展开选项函数。
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxSteps <= 0 {
		o.maxSteps = DefaultMaxSteps
	}

	return o
}

// WithIgnoreEnv 使用空的环境上下文展开。
//
// 传入 [Expand] 的 env 既不会被读取，也不会被写入。
func WithIgnoreEnv() Option {
	return func(o *options) {
		o.ignoreEnv = true
	}
}

// WithMaxSteps 设置单个值的替换步数余量，n <= 0 时使用 [DefaultMaxSteps]。
//
// 实际上限为 n 加上原始值中未转义 "$" 的个数。
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

// WithLegacyFallback 启用旧的取值规则：空字符串视为不存在。
//
// 该规则作用于环境值、默认值与配置项的值，例如 ${A:-} 会继续回退到配置项 A。
// 环境中已存在的 key 是否跳过展开仍按是否存在判断。
func WithLegacyFallback() Option {
	return func(o *options) {
		o.legacy = true
	}
}
