// Package cfgm 加载应用自身的配置。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 设置，仅显式传入的 flag 生效
//
// # 变量展开
//
// 默认值与配置文件中的字符串会经过 [envexp.Expand] 展开，
// 配置项以点号路径作为 key，因此可以相互引用：
//
//	# config.yaml
//	server:
//	  addr: ":${PORT:-40118}"
//	  public-url: "http://localhost${server.addr}"
//	expand:
//	  format: "${ENVEXP_FORMAT:-env}"
//
// 引用先查找进程环境变量的快照，再查找其他配置项；进程环境变量不会被修改。
// 环境变量层与 CLI flags 层的值视为最终值，不再展开。
// 使用 [WithoutTemplateExpansion] 可禁用展开。
//
// # 环境变量(前缀)
//
// 前缀 + 大写的配置 key，点号 (.) 和连字符 (-) 转为下划线 (_)：
//   - ENVEXP_SERVER_ADDR → server.addr
//   - ENVEXP_EXPAND_MAX_STEPS → expand.max-steps
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - server.addr → --server-addr
//   - expand.ignore-env → --expand-ignore-env
package cfgm
