// Package conv 提供类型转换、map/slice 转换等泛型工具，用于简化各模块中的重复逻辑。
package conv

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SliceAnyToString 将 []any 或 []string 转为 []string，忽略非字符串元素。
// 输入不是切片时返回 nil。
func SliceAnyToString(v any) []string {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// MapToFloat64 将 map[string]any 转为 map[string]float64，忽略无法转换的值。
func MapToFloat64(m map[string]any) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := ToFloat64(v); ok {
			out[k] = f
		}
	}
	return out
}

// ConfigGet 从配置 map 中读取指定类型的值，不存在或类型不匹配时返回默认值。
func ConfigGet[T any](config map[string]any, key string, defaultValue T) T {
	if config == nil {
		return defaultValue
	}
	v, ok := config[key]
	if !ok {
		return defaultValue
	}
	typed, ok := v.(T)
	if !ok {
		return defaultValue
	}
	return typed
}

// ConfigGetInt64 从配置 map 中读取整数值；YAML/JSON 解析出的
// int/int64/float64 都能接受，不存在时返回默认值。
func ConfigGetInt64(config map[string]any, key string, defaultValue int64) int64 {
	if config == nil {
		return defaultValue
	}
	v, ok := config[key]
	if !ok {
		return defaultValue
	}
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case int32:
		return int64(val)
	case float64:
		return int64(val)
	default:
		return defaultValue
	}
}
