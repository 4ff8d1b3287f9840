package envexp

import (
	"iter"
	"slices"
)

// Set 是保持插入顺序的配置项集合，key 唯一。
//
// 对已有 key 再次 [Set.Put] 会覆盖值，但保留其首次出现的位置。
// Set 不支持并发修改。
type Set struct {
	keys   []string
	values map[string]string
}

// NewSet 按参数顺序创建集合，参数为 key, value 交替排列。
//
// 参数个数为奇数时，最后一个 key 的值为空字符串。
func NewSet(kv ...string) *Set {
	s := &Set{values: make(map[string]string, (len(kv)+1)/2)}
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		s.Put(kv[i], value)
	}

	return s
}

// Put 写入一个配置项。
func (s *Set) Put(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get 返回 key 的值以及 key 是否存在。
func (s *Set) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[key]

	return value, ok
}

// Len 返回配置项数量。
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}

// Keys 按插入顺序返回所有 key 的副本。
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}

	return slices.Clone(s.keys)
}

// All 按插入顺序遍历配置项。
func (s *Set) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}
		for _, key := range s.keys {
			if !yield(key, s.values[key]) {
				return
			}
		}
	}
}

// Clone 返回集合的深拷贝。
func (s *Set) Clone() *Set {
	out := &Set{values: make(map[string]string, s.Len())}
	for key, value := range s.All() {
		out.Put(key, value)
	}

	return out
}

// Map 返回无序的 map 副本，便于比较与序列化。
func (s *Set) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for key, value := range s.All() {
		out[key] = value
	}

	return out
}
