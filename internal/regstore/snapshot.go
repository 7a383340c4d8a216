package regstore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Snapshot formats accepted by DecodeSnapshot.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// LoadSnapshot reads a snapshot file into a new MemStore. The format is
// chosen by extension: .yaml/.yml or .toml.
//
// A snapshot maps key paths to value names to values:
//
//	HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VC:
//	  ProductDir: 'C:\Program Files\Microsoft Visual Studio 8\VC\'
//	HKLM\SOFTWARE\Microsoft\DevDiv\VS\Servicing\8.0:
//	  SP: 1
//
// Strings become REG_SZ, integers REG_DWORD, and {expand: "..."} REG_EXPAND_SZ.
func LoadSnapshot(path string) (*MemStore, error) {
	format, err := formatForFile(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	store, err := DecodeSnapshot(data, format)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return store, nil
}

// DecodeSnapshot parses snapshot data in the given format.
func DecodeSnapshot(data []byte, format string) (*MemStore, error) {
	raw := make(map[string]map[string]any)

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	store := NewMemStore()
	for _, key := range keys {
		path, err := ParsePath(key)
		if err != nil {
			return nil, err
		}
		store.CreateKey(path)

		for name, rawValue := range raw[key] {
			v, err := snapshotValue(rawValue)
			if err != nil {
				return nil, fmt.Errorf("%s\\%s: %w", key, name, err)
			}
			store.Set(path, name, v)
		}
	}

	return store, nil
}

func formatForFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot file %q: want .yaml, .yml or .toml", path)
	}
}

func snapshotValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case int:
		return dword(int64(v))
	case int64:
		return dword(v)
	case uint64:
		if v > math.MaxUint32 {
			return Value{}, fmt.Errorf("integer %d does not fit in a DWORD", v)
		}
		return DWordValue(uint32(v)), nil
	case float64:
		if v != math.Trunc(v) {
			return Value{}, fmt.Errorf("non-integral number %v", v)
		}
		return dword(int64(v))
	case map[string]any:
		if s, ok := v["expand"].(string); ok {
			return ExpandStringValue(s), nil
		}
		return Value{}, fmt.Errorf("unsupported value table: want {expand: \"...\"}")
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func dword(n int64) (Value, error) {
	if n < 0 || n > math.MaxUint32 {
		return Value{}, fmt.Errorf("integer %d does not fit in a DWORD", n)
	}
	return DWordValue(uint32(n)), nil
}
