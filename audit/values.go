package audit

import (
	"bytes"
	"encoding/json"
)

// Values 保持插入顺序的列值集合。
// 审计记录的序列化文本需要稳定的键顺序（按字段声明顺序），
// 普通 map 的乱序遍历做不到这一点。
type Values struct {
	keys []string
	vals map[string]any
}

// NewValues 创建空集合。
func NewValues() *Values {
	return &Values{vals: make(map[string]any)}
}

// Set 写入列值；已存在的键保持原有顺序位置。
func (v *Values) Set(key string, value any) {
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get 读取列值。
func (v *Values) Get(key string) (any, bool) {
	value, ok := v.vals[key]
	return value, ok
}

// Len 返回元素个数。
func (v *Values) Len() int { return len(v.keys) }

// Keys 返回插入顺序的键列表。
func (v *Values) Keys() []string { return v.keys }

// MarshalJSON 按插入顺序输出 JSON 对象。
func (v *Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		val, err := json.Marshal(v.vals[key])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 读回 JSON 对象（顺序按原始文本）。
func (v *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}
	v.keys = nil
	v.vals = make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		v.Set(key, value)
	}
	_, err = dec.Token()
	return err
}
