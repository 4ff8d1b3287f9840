// Package kvfile 读取与输出扁平的键值文件。
//
// 支持 YAML 与 JSON，根节点必须是只包含标量值的对象，读取时保留 key 的顺序。
// 结果是 [envexp.Set]，可直接交给 [envexp.Expand]。
//
//	# vars.yaml
//	HOST: localhost
//	PORT: 8080
//	URL: http://${HOST}:${PORT}
//
// 输出格式见 [Format]。
package kvfile
