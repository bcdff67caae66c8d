package textrep

import (
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/dadrian/ssds"
)

// FromYAML writes a YAML mapping to w. Keys become field names and mapping
// values become structs whose group is named after the key. Sequences write
// the same field once per element and null values are omitted. Scalars map
// to string, bool, sint64 (uint64 above math.MaxInt64) and double.
func FromYAML(src []byte, w *ssds.Writer) error {
	var doc any
	if err := yaml.UnmarshalWithOptions(src, &doc, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("textrep: yaml: %w", err)
	}
	switch doc := doc.(type) {
	case nil:
		return nil
	case yaml.MapSlice:
		return fromMapSlice(w, doc)
	case map[string]any:
		return fromMap(w, doc)
	}
	return fmt.Errorf("textrep: yaml: top level is %T, not a mapping", doc)
}

func fromMapSlice(w *ssds.Writer, m yaml.MapSlice) error {
	for _, item := range m {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		if err := fromValue(w, key, item.Value, false); err != nil {
			return err
		}
	}
	return nil
}

func fromMap(w *ssds.Writer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fromValue(w, k, m[k], false); err != nil {
			return err
		}
	}
	return nil
}

func fromValue(w *ssds.Writer, name string, v any, inSeq bool) error {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return w.WriteString(name, v)
	case bool:
		return w.WriteBool(name, v)
	case int:
		return w.WriteSint64(name, int64(v))
	case int64:
		return w.WriteSint64(name, v)
	case uint64:
		if v > math.MaxInt64 {
			return w.WriteUint64(name, v)
		}
		return w.WriteSint64(name, int64(v))
	case float64:
		return w.WriteDouble(name, v)
	case yaml.MapSlice:
		if err := w.WriteStart(name, name); err != nil {
			return err
		}
		if err := fromMapSlice(w, v); err != nil {
			return err
		}
		return w.WriteEnd()
	case map[string]any:
		if err := w.WriteStart(name, name); err != nil {
			return err
		}
		if err := fromMap(w, v); err != nil {
			return err
		}
		return w.WriteEnd()
	case []any:
		if inSeq {
			return fmt.Errorf("textrep: yaml: %q: nested sequences are not supported", name)
		}
		for _, elem := range v {
			if err := fromValue(w, name, elem, true); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("textrep: yaml: %q: unsupported value %T", name, v)
}

// ToYAML renders the remaining records of rd as a YAML mapping. Repeated
// field names collapse into sequences, enums render as their value name and
// bytes as hex.
func ToYAML(rd *ssds.Reader) ([]byte, error) {
	type frame struct {
		name string
		m    yaml.MapSlice
	}
	stack := []*frame{{m: yaml.MapSlice{}}}
	pop := func() {
		done := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		addItem(&stack[len(stack)-1].m, done.name, done.m)
	}
	for rec, err := range rd.Records() {
		if err != nil {
			return nil, err
		}
		switch {
		case rec.IsStart():
			stack = append(stack, &frame{name: rec.Name, m: yaml.MapSlice{}})
		case rec.IsEnd():
			if len(stack) < 2 {
				return nil, fmt.Errorf("textrep: unbalanced end of %q", rec.Name)
			}
			pop()
		default:
			top := stack[len(stack)-1]
			addItem(&top.m, rec.Name, yamlValue(rec.Value))
		}
	}
	// groups left open by a lenient reader
	for len(stack) > 1 {
		pop()
	}
	out, err := yaml.Marshal(stack[0].m)
	if err != nil {
		return nil, fmt.Errorf("textrep: yaml: %w", err)
	}
	return out, nil
}

// addItem appends key to m, turning a repeated key into a sequence.
func addItem(m *yaml.MapSlice, key string, v any) {
	for i := range *m {
		item := &(*m)[i]
		if item.Key != key {
			continue
		}
		if seq, ok := item.Value.([]any); ok {
			item.Value = append(seq, v)
		} else {
			item.Value = []any{item.Value, v}
		}
		return
	}
	*m = append(*m, yaml.MapItem{Key: key, Value: v})
}

func yamlValue(v ssds.Value) any {
	switch v := v.(type) {
	case ssds.Bytes:
		return hex.EncodeToString(v)
	case ssds.Enum:
		return v.Name
	case nil:
		return nil
	}
	return v.Interface()
}
