package kvfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// ErrNotFlat 表示文件中出现了嵌套对象或数组。
var ErrNotFlat = errors.New("kvfile: only scalar values are supported")

// Load 依次读取文件并合并，后面的文件覆盖前面同名的 key。
//
// 扩展名为 .json 的文件按 JSON 解析，其余按 YAML 解析。
func Load(paths ...string) (*envexp.Set, error) {
	out := envexp.NewSet()
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is given by the user
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		set, err := Parse(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		Merge(out, set)
	}

	return out, nil
}

// Parse 按 path 的扩展名解析 content。
func Parse(path string, content []byte) (*envexp.Set, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSON(content)
	}

	return parseYAML(content)
}

// Merge 将 src 写入 dst，已存在的 key 保留原位置。
func Merge(dst, src *envexp.Set) {
	for key, value := range src.All() {
		dst.Put(key, value)
	}
}

// ParseAssignments 解析 "KEY=VALUE" 列表，VALUE 可以为空。
func ParseAssignments(items []string) (*envexp.Set, error) {
	out := envexp.NewSet()
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("kvfile: invalid assignment %q, want KEY=VALUE", item)
		}
		out.Put(key, value)
	}

	return out, nil
}

// parseYAML 只接受单个文档，根节点为 key 与值均为标量的映射。
func parseYAML(content []byte) (*envexp.Set, error) {
	out := envexp.NewSet()

	dec := yamlv3.NewDecoder(bytes.NewReader(content))
	var doc yamlv3.Node
	if err := dec.Decode(&doc); errors.Is(err, io.EOF) {
		return out, nil
	} else if err != nil {
		return nil, err
	}
	var extra yamlv3.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}

		return nil, fmt.Errorf("kvfile: multiple documents (line %d)", extra.Line)
	}
	if len(doc.Content) == 0 {
		return out, nil
	}

	root := doc.Content[0]
	if root.Kind == yamlv3.ScalarNode && root.Tag == "!!null" {
		return out, nil
	}
	if root.Kind != yamlv3.MappingNode {
		return nil, errors.New("kvfile: root must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := resolveAlias(root.Content[i]), resolveAlias(root.Content[i+1])
		if key.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("kvfile: key must be a scalar (line %d)", key.Line)
		}
		if value.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("%w: %s (line %d)", ErrNotFlat, key.Value, value.Line)
		}
		if value.Tag == "!!null" {
			out.Put(key.Value, "")

			continue
		}
		out.Put(key.Value, value.Value)
	}

	return out, nil
}

func resolveAlias(n *yamlv3.Node) *yamlv3.Node {
	if n.Kind == yamlv3.AliasNode && n.Alias != nil {
		return n.Alias
	}

	return n
}

func parseJSON(content []byte) (*envexp.Set, error) {
	out := envexp.NewSet()

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, errors.New("kvfile: root must be an object")
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case string:
			out.Put(key, v)
		case json.Number:
			out.Put(key, v.String())
		case bool:
			out.Put(key, fmt.Sprint(v))
		case nil:
			out.Put(key, "")
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotFlat, key)
		}
	}

	if _, err = dec.Token(); err != nil {
		return nil, err
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("kvfile: unexpected data after the root object")
	}

	return out, nil
}
