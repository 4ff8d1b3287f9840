package cfgm

import (
	"encoding/json"
	"maps"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// configTagName 返回 json tag 中的名称，"-" 与空值返回 ""。
func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || !field.IsExported() {
		return ""
	}

	return name
}

func joinKey(prefix, name string) string {
	switch {
	case name == "":
		return prefix
	case prefix == "":
		return name
	default:
		return prefix + "." + name
	}
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType && typ != timeType
}

// structToMap 将配置结构体转换为以 json tag 为 key 的嵌套 map。
func structToMap(cfg any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(cfg))
	out := make(map[string]any)
	if val.Kind() != reflect.Struct {
		return out
	}

	for i := range val.NumField() {
		field := val.Type().Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}
		fieldVal := val.Field(i)
		if isStructType(field.Type) {
			if fieldVal.Kind() == reflect.Pointer && fieldVal.IsNil() {
				continue
			}
			out[key] = structToMap(fieldVal.Interface())

			continue
		}
		out[key] = fieldVal.Interface()
	}

	return out
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	out := map[string]any{}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &out)
	} else {
		err = yamlv3.Unmarshal(content, &out)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// mergeMaps 递归合并，src 覆盖 dst。
func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		srcChild, srcOK := value.(map[string]any)
		dstChild, dstOK := dst[key].(map[string]any)
		if srcOK && dstOK {
			mergeMaps(dstChild, srcChild)

			continue
		}
		dst[key] = value
	}
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}

// ═══════════════════════════════════════════════════════════════════════════
// 变量展开
// ═══════════════════════════════════════════════════════════════════════════

// lookupOnly 丢弃 [envexp.Expand] 结束时的写回。
type lookupOnly struct{ envexp.Env }

func (lookupOnly) Set(string, string) error { return nil }

// expandStrings 展开 configMap 中所有字符串叶子。
//
// 叶子按点号路径排序后放入同一个 [envexp.Set]，因此可以相互引用。
func expandStrings(configMap map[string]any, env envexp.Env) error {
	set := envexp.NewSet()
	collectStrings(configMap, "", set)
	if set.Len() == 0 {
		return nil
	}

	out, err := envexp.Expand(set, lookupOnly{env})
	if err != nil {
		return err
	}
	for key, value := range out.All() {
		setByPath(configMap, key, value)
	}

	return nil
}

func collectStrings(data map[string]any, prefix string, set *envexp.Set) {
	for _, key := range slices.Sorted(maps.Keys(data)) {
		fullKey := joinKey(prefix, key)
		switch v := data[key].(type) {
		case string:
			set.Put(fullKey, v)
		case map[string]any:
			collectStrings(v, fullKey, set)
		}
	}
}
