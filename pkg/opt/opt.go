// Package opt описывает необязательные поля для частичного обновления сущностей.
//
// Field различает «ключ отсутствует» и «ключ присутствует»: при декодировании
// JSON поле помечается установленным, если ключ встретился в объекте, даже со
// значением null. Решение об изменении принимается по наличию ключа.
package opt

import (
	"bytes"
	"encoding/json"
)

// Field — необязательное значение с признаком наличия.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some возвращает установленное поле.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON вызывается только для присутствующих ключей.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON кодирует значение либо null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}

	return json.Marshal(f.Value)
}

// Apply записывает значение в dst, если поле установлено. Возвращает true при записи.
func (f Field[T]) Apply(dst *T) bool {
	if !f.Set {
		return false
	}
	*dst = f.Value

	return true
}
