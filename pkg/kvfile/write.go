package kvfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

// Format 输出格式。
type Format string

const (
	FormatEnv  Format = "env"  // KEY='value'，每行一项
	FormatJSON Format = "json" // 保持顺序的 JSON 对象
	FormatYAML Format = "yaml" // 保持顺序的 YAML 映射
)

// ParseFormat 解析输出格式名称，大小写不敏感。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatEnv, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatEnv, nil
	default:
		return "", fmt.Errorf("kvfile: unknown format %q", s)
	}
}

// Write 按 format 输出 set，保持插入顺序。
func Write(w io.Writer, set *envexp.Set, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, set)
	case FormatYAML:
		return writeYAML(w, set)
	case FormatEnv, "":
		return writeEnv(w, set)
	default:
		return fmt.Errorf("kvfile: unknown format %q", format)
	}
}

func writeEnv(w io.Writer, set *envexp.Set) error {
	bw := bufio.NewWriter(w)
	for key, value := range set.All() {
		quoted := "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
		if _, err := fmt.Fprintf(bw, "%s=%s\n", key, quoted); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeJSON(w io.Writer, set *envexp.Set) error {
	var b strings.Builder
	b.WriteString("{")
	i := 0
	for key, value := range set.All() {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		b.Write(k)
		b.WriteString(": ")
		b.Write(v)
		i++
	}
	if i > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

func writeYAML(w io.Writer, set *envexp.Set) error {
	root := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	for key, value := range set.All() {
		root.Content = append(root.Content,
			&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: key},
			&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}

	return enc.Close()
}
