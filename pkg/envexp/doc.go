// Package envexp 展开配置项中的变量引用。
//
// 每个配置项的值可以包含 $NAME、${NAME} 或 ${NAME:-default} 形式的引用，
// 引用会被递归替换，直到值中不再有未转义的 "$"。
//
// # 查找顺序
//
// 引用 NAME 按以下顺序取值：
//
//  1. 环境上下文 ([Env]) 中的 NAME
//  2. 引用自带的默认值 (":-" 之后的部分)
//  3. 同一 [Set] 中 NAME 的原始值
//  4. 空字符串
//
// 默认按"是否存在"判断，空字符串也算存在；
// [WithLegacyFallback] 切换为旧行为，空字符串视为不存在。
//
// # 语义说明
//
//  1. 从右向左展开：每一步只替换最右侧的引用，再从头查找
//  2. "\$" 表示字面量 "$"，在全部替换结束后统一还原
//  3. 环境上下文中已存在的 key 不做展开，直接使用环境中的值
//  4. 展开结束后所有结果写回环境上下文 (见 [Expand])
//  5. 循环引用不会无限递归，超过 [DefaultMaxSteps] 步返回 [ErrDepthExceeded]
//
// # 快速开始
//
//	set := envexp.NewSet(
//	    "HOST", "localhost",
//	    "URL", "http://${HOST}:${PORT:-8080}",
//	)
//	out, err := envexp.Expand(set, envexp.ProcessEnv{})
//	// out.Get("URL") == "http://localhost:8080"
//
// 不读取也不修改进程环境变量：
//
//	out, err := envexp.Expand(set, nil, envexp.WithIgnoreEnv())
package envexp
