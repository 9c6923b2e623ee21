package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	st *state
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	if err := r.checkUnique(user); err != nil {
		return err
	}
	u := *user
	r.st.users[u.ID] = &u
	return nil
}

func (r *userRepo) checkUnique(user *entity.User) error {
	for _, u := range r.st.users {
		if u.ID == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if strings.EqualFold(u.Username, user.Username) {
			return domain.ErrUsernameTaken
		}
	}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.st.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.st.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.st.users[user.ID]; !ok {
		return nil
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	u := *user
	r.st.users[u.ID] = &u
	return nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	delete(r.st.users, id)
	return nil
}

func (r *userRepo) Search(_ context.Context, query string, limit, offset int) ([]*entity.User, int, error) {
	q := strings.ToLower(query)
	var found []*entity.User
	for _, u := range r.st.users {
		if containsAny(q, u.Email, u.Username, u.FirstName, u.LastName) {
			cp := *u
			found = append(found, &cp)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].ID < found[j].ID
		}
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return page(found, limit, offset), len(found), nil
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
