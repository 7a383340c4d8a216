package regstore

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// MemStore is an in-memory Reader. Key and value names are matched
// case-insensitively, like the Windows registry.
type MemStore struct {
	keys map[string]*memKey
}

type memKey struct {
	path   Path
	values map[string]memValue
}

type memValue struct {
	name  string
	value Value
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{keys: make(map[string]*memKey)}
}

// CreateKey creates path and all of its ancestors.
func (s *MemStore) CreateKey(path Path) {
	s.ensureKey(path)
}

// Set stores a value under path, creating the key if needed.
func (s *MemStore) Set(path Path, name string, v Value) {
	k := s.ensureKey(path)
	k.values[fold(name)] = memValue{name: name, value: v}
}

// SetString stores a REG_SZ value.
func (s *MemStore) SetString(path Path, name, value string) {
	s.Set(path, name, StringValue(value))
}

// SetExpandString stores a REG_EXPAND_SZ value.
func (s *MemStore) SetExpandString(path Path, name, value string) {
	s.Set(path, name, ExpandStringValue(value))
}

// SetInt stores a REG_DWORD value.
func (s *MemStore) SetInt(path Path, name string, value uint32) {
	s.Set(path, name, DWordValue(value))
}

// DeleteValue removes a single value. The key itself is kept.
func (s *MemStore) DeleteValue(path Path, name string) {
	if k, ok := s.keys[foldPath(path)]; ok {
		delete(k.values, fold(name))
	}
}

// DeleteKey removes path and every key below it.
func (s *MemStore) DeleteKey(path Path) {
	prefix := foldPath(path)
	for id := range s.keys {
		if id == prefix || strings.HasPrefix(id, prefix+pathSeparator) {
			delete(s.keys, id)
		}
	}
}

// Keys returns the stored key paths in sorted order.
func (s *MemStore) Keys() []Path {
	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Path, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.keys[id].path)
	}
	return out
}

// ReadString implements Reader.
func (s *MemStore) ReadString(path Path, name string) (string, error) {
	v, err := s.lookup(path, name)
	if err != nil {
		return "", err
	}
	if !v.isString() {
		return "", &ReadError{Kind: KindWrongType, Path: path, Name: name}
	}
	return v.Str, nil
}

// ReadInt implements Reader.
func (s *MemStore) ReadInt(path Path, name string) (uint32, error) {
	v, err := s.lookup(path, name)
	if err != nil {
		return 0, err
	}
	if v.Kind != KindDWord {
		return 0, &ReadError{Kind: KindWrongType, Path: path, Name: name}
	}
	return v.Int, nil
}

func (s *MemStore) lookup(path Path, name string) (Value, error) {
	k, ok := s.keys[foldPath(path)]
	if !ok {
		return Value{}, &ReadError{Kind: KindPathNotFound, Path: path, Name: name}
	}
	mv, ok := k.values[fold(name)]
	if !ok {
		return Value{}, &ReadError{Kind: KindValueNotFound, Path: path, Name: name}
	}
	return mv.value, nil
}

func (s *MemStore) ensureKey(path Path) *memKey {
	id := foldPath(path)
	if k, ok := s.keys[id]; ok {
		return k
	}

	k := &memKey{path: path, values: make(map[string]memValue)}
	s.keys[id] = k
	if parent, ok := path.Parent(); ok {
		s.ensureKey(parent)
	}
	return k
}

// fold builds a fresh Caser each call; Casers carry state.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldPath(p Path) string {
	return fold(p.String())
}
