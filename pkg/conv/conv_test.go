package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3.14, 3.14, true},
		{float32(2), 2, true},
		{7, 7, true},
		{int64(8), 8, true},
		{true, 1, true},
		{false, 0, true},
		{"1.5", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	if got := SliceAnyToString([]string{"a", "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
	// 非字符串元素被忽略
	if got := SliceAnyToString([]any{"a", 1, "b"}); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
	if got := SliceAnyToString(42); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestConfigGet(t *testing.T) {
	config := map[string]any{
		"name":  "feed",
		"count": 5,
	}
	if got := ConfigGet(config, "name", "default"); got != "feed" {
		t.Fatalf("got %q", got)
	}
	if got := ConfigGet(config, "missing", "default"); got != "default" {
		t.Fatalf("got %q", got)
	}
	// 类型不匹配时回退默认值
	if got := ConfigGet(config, "count", "default"); got != "default" {
		t.Fatalf("got %q", got)
	}
	if got := ConfigGet[string](nil, "name", "default"); got != "default" {
		t.Fatalf("got %q", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	config := map[string]any{
		"a": 5,
		"b": int64(6),
		"c": 7.0, // JSON 解析出的数字
		"d": "oops",
	}
	tests := []struct {
		key  string
		want int64
	}{
		{"a", 5},
		{"b", 6},
		{"c", 7},
		{"d", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := ConfigGetInt64(config, tt.key, -1); got != tt.want {
			t.Fatalf("ConfigGetInt64(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
