// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

// Package merger recursively merges configuration layers into a new tree.
// Maps are merged key by key, slices are concatenated, and for values of any
// other kind the right side has precedence. Maps in the result are always of
// type map[string]any and merged slices are of type []any. Input layers are
// never modified.
package merger

import (
	"fmt"
	"reflect"
)

// Merge method performs recursive merge of configuration layers into new one.
// Layers are merged from left to right, so the rightmost layer has the highest
// priority. Nil layers are skipped.
func Merge(layers ...any) any {
	var result reflect.Value

	for _, layer := range layers {
		value := strip(reflect.ValueOf(layer))

		if !value.IsValid() {
			continue
		}

		if !result.IsValid() {
			result = clone(value)
			continue
		}

		result = merge(result, value)
	}

	if !result.IsValid() {
		return nil
	}

	return result.Interface()
}

func merge(left, right reflect.Value) reflect.Value {
	left = strip(left)
	right = strip(right)

	if !right.IsValid() {
		return right
	}
	if !left.IsValid() {
		return clone(right)
	}

	leftKind := left.Kind()
	rightKind := right.Kind()

	if leftKind == reflect.Map &&
		rightKind == reflect.Map {

		return mergeMap(left, right)
	}

	if isSlice(left) && isSlice(right) {
		return mergeSlice(left, right)
	}

	return clone(right)
}

func mergeMap(left, right reflect.Value) reflect.Value {
	result := make(map[string]any, left.Len()+right.Len())

	iter := left.MapRange()

	for iter.Next() {
		result[keyString(iter.Key())] = valueOf(clone(iter.Value()))
	}

	iter = right.MapRange()

	for iter.Next() {
		key := keyString(iter.Key())
		leftValue, ok := result[key]

		if !ok {
			result[key] = valueOf(clone(iter.Value()))
			continue
		}

		value := merge(reflect.ValueOf(leftValue), iter.Value())
		result[key] = valueOf(value)
	}

	return reflect.ValueOf(result)
}

func mergeSlice(left, right reflect.Value) reflect.Value {
	leftLen := left.Len()
	rightLen := right.Len()
	result := make([]any, 0, leftLen+rightLen)

	for i := 0; i < leftLen; i++ {
		result = append(result, valueOf(clone(left.Index(i))))
	}

	for i := 0; i < rightLen; i++ {
		result = append(result, valueOf(clone(right.Index(i))))
	}

	return reflect.ValueOf(result)
}

// clone makes a deep copy of maps and slices. Values of other kinds are
// returned as is.
func clone(value reflect.Value) reflect.Value {
	value = strip(value)

	switch {
	case !value.IsValid():
		return value
	case value.Kind() == reflect.Map:
		if value.IsNil() {
			return value
		}

		result := make(map[string]any, value.Len())
		iter := value.MapRange()

		for iter.Next() {
			result[keyString(iter.Key())] = valueOf(clone(iter.Value()))
		}

		return reflect.ValueOf(result)
	case isSlice(value):
		if value.IsNil() {
			return value
		}

		valueLen := value.Len()
		result := make([]any, valueLen)

		for i := 0; i < valueLen; i++ {
			result[i] = valueOf(clone(value.Index(i)))
		}

		return reflect.ValueOf(result)
	}

	return value
}

// isSlice reports whether the value is a slice that is not a byte string.
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
