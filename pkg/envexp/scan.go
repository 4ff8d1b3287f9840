package envexp

import (
	"regexp"
	"strings"
)

const (
	marker = '$'
	escape = '\\'
)

// referencePattern 匹配以 "$" 开头的引用，花括号各自可选：
//
//	\$ \{? ([\w.]+) (?: :- ([^}\\]*) )? \}?
var referencePattern = regexp.MustCompile(`^\$\{?([\w.]+)(?::-([^}\\]*))?\}?`)

// reference 是一次匹配的结果，[start, end) 为完整引用在原字符串中的位置。
type reference struct {
	start, end int
	key        string
	def        string
	hasDef     bool
}

// lastMarker 返回最后一个未转义 "$" 的下标，没有时返回 -1。
func lastMarker(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == marker && (i == 0 || s[i-1] != escape) {
			return i
		}
	}

	return -1
}

// countMarkers 返回未转义 "$" 的个数。
func countMarkers(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == marker && (i == 0 || s[i-1] != escape) {
			n++
		}
	}

	return n
}

// parseReference 从 s[at] 处的 "$" 开始匹配最长的引用。
func parseReference(s string, at int) (reference, bool) {
	loc := referencePattern.FindStringSubmatchIndex(s[at:])
	if loc == nil {
		return reference{}, false
	}

	ref := reference{
		start: at,
		end:   at + loc[1],
		key:   s[at+loc[2] : at+loc[3]],
	}
	if loc[4] >= 0 {
		ref.def = s[at+loc[4] : at+loc[5]]
		ref.hasDef = true
	}

	return ref, true
}

// Unescape 将所有 "\$" 还原为 "$"。
//
// [Expand] 在每个配置项替换结束后调用一次。
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\$`, "$")
}
