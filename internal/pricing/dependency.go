package pricing

import (
	"github.com/DRSN-tech/bikeshop-backend/internal/domain"
	"github.com/google/uuid"
)

// Set — множество выбранных вариантов.
type Set map[uuid.UUID]struct{}

func NewSet(ids []uuid.UUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Dedupe убирает повторы, сохраняя порядок первых вхождений.
func Dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(Set, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Allowed проверяет правило зависимости против выбранного набора.
// Restrictions — список допустимых пар: вариант разрешён, если выбран хотя бы один из них.
// Сам вариант в своём списке не учитывается. Пустой список (или отсутствие правила) ничего не ограничивает.
func Allowed(dep *domain.VariantDependency, selected Set) bool {
	if dep == nil {
		return true
	}

	required := 0
	for _, id := range dep.Restrictions {
		if id == dep.VariantID {
			continue
		}
		required++
		if selected.Has(id) {
			return true
		}
	}

	return required == 0
}
