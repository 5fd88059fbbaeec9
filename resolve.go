// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

package globalconf

import (
	"fmt"
	"reflect"
	"sort"
)

// Resolve method walks through the configuration tree and replaces marker keys
// by plain keys. The value of a marker key is replaced by the value of the
// corresponding environment variable from env, if the variable is non-empty.
// Values that are neither maps nor slices are returned unchanged. The tree is
// not modified; maps and slices of the result are new.
//
// If several keys of one map resolve to the same name, marker keys win over the
// plain key, and "@name:var" wins over "@name".
func Resolve(node any, env Env) any {
	value := resolve(reflect.ValueOf(node), env)

	if !value.IsValid() {
		return nil
	}

	return value.Interface()
}

// ResolveMap is a convenience wrapper around Resolve for the configuration
// root.
func ResolveMap(m M, env Env) M {
	if m == nil {
		return nil
	}

	return Resolve(m, env).(M)
}

func resolve(node reflect.Value, env Env) reflect.Value {
	node = strip(node)

	switch {
	case !node.IsValid():
		return node
	case node.Kind() == reflect.Map:
		if node.IsNil() {
			return node
		}

		return resolveMap(node, env)
	case isSlice(node):
		if node.IsNil() {
			return node
		}

		return resolveSlice(node, env)
	}

	return node
}

type entry struct {
	raw   string
	key   Key
	value reflect.Value
}

func resolveMap(m reflect.Value, env Env) reflect.Value {
	entries := make([]entry, 0, m.Len())
	iter := m.MapRange()

	for iter.Next() {
		raw := keyString(iter.Key())

		entries = append(entries,
			entry{
				raw:   raw,
				key:   ParseKey(raw),
				value: iter.Value(),
			},
		)
	}

	sort.Slice(entries,
		func(i, j int) bool {
			if entries[i].key.Kind != entries[j].key.Kind {
				return entries[i].key.Kind < entries[j].key.Kind
			}

			return entries[i].raw < entries[j].raw
		},
	)

	result := make(M, len(entries))

	for _, e := range entries {
		value := resolve(e.value, env)

		if e.key.Kind != KeyPlain {
			if envValue := env.Get(e.key.EnvName()); envValue != "" {
				result[e.key.Name] = envValue
				continue
			}
		}

		result[e.key.Name] = valueOf(value)
	}

	return reflect.ValueOf(result)
}

func resolveSlice(s reflect.Value, env Env) reflect.Value {
	sliceLen := s.Len()
	result := make(A, sliceLen)

	for i := 0; i < sliceLen; i++ {
		result[i] = valueOf(resolve(s.Index(i), env))
	}

	return reflect.ValueOf(result)
}

func isSlice(value reflect.Value) bool {
	return value.Kind() == reflect.Slice &&
		value.Type().Elem().Kind() != reflect.Uint8
}

func keyString(key reflect.Value) string {
	key = strip(key)

	if key.Kind() == reflect.String {
		return key.String()
	}

	return fmt.Sprintf("%v", key.Interface())
}

func valueOf(value reflect.Value) any {
	if !value.IsValid() {
		return nil
	}

	return value.Interface()
}

func strip(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Interface {
		return value.Elem()
	}

	return value
}
