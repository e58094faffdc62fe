package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CategoryParams struct {
	Name  string
	Icon  string
	Color string
	Type  TxType
}

type CategoryPatch struct {
	Name  *string
	Icon  *string
	Color *string
}

// CreateCategory adds a category. Name uniqueness is not enforced; two
// categories may share a name and stay distinct through their IDs.
func (s *Service) CreateCategory(ctx context.Context, p CategoryParams) (*Category, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	if p.Type != TypeIncome && p.Type != TypeExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.now()
	c := &Category{
		ID:        uuid.New(),
		UserID:    s.userID(),
		Name:      p.Name,
		Icon:      p.Icon,
		Color:     p.Color,
		Type:      p.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.categories = append(s.store.categories, c)

	s.persist(ctx)

	return c, nil
}

// UpdateCategory patches name, icon and color. The type is fixed at
// creation; budgets and aggregations key on the category ID, so renames
// never detach history.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c := s.store.categoryByID(id)
	if c == nil {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrValidation)
		}

		c.Name = *patch.Name
	}

	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}

	if patch.Color != nil {
		c.Color = *patch.Color
	}

	c.UpdatedAt = s.now()

	s.persist(ctx)

	return c, nil
}

// DeleteCategory removes the category without touching transactions or
// budgets that reference it. Readers resolve such dangling references
// as an unknown category.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.categoryByID(id) == nil {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}

	for i, c := range s.store.categories {
		if c.ID == id {
			s.store.categories = append(s.store.categories[:i], s.store.categories[i+1:]...)
			break
		}
	}

	s.persist(ctx)

	return nil
}
