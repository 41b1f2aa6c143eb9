// Package jitter считает паузы между повторами с экспоненциальным ростом и случайным разбросом.
package jitter

import (
	"math/rand"
	"time"
)

// Backoff задаёт паузы между повторами: Base удваивается с каждой попыткой, пока не упрётся в Max.
// Нулевое значение даёт нулевые паузы.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay возвращает паузу перед повтором attempt (нумерация с нуля).
// Результат лежит в [c/2, c], где c = min(Base*2^attempt, Max).
func (b Backoff) Delay(attempt int) time.Duration {
	c := b.Ceiling(attempt)
	if c <= 0 {
		return 0
	}
	half := c / 2
	return half + time.Duration(rand.Int63n(int64(c-half+1)))
}

// Ceiling возвращает верхнюю границу паузы для attempt без разброса.
func (b Backoff) Ceiling(attempt int) time.Duration {
	if b.Base <= 0 {
		return 0
	}
	limit := b.Max
	if limit < b.Base {
		limit = b.Base
	}

	d := b.Base
	for i := 0; i < attempt; i++ {
		if d >= limit/2 {
			return limit
		}
		d *= 2
	}
	return d
}
