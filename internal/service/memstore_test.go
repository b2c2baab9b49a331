package service_test

import (
	"context"
	"sync"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/google/uuid"
)

// memStore backs both fake repositories so user deletion can cascade.
type memStore struct {
	mu    sync.Mutex
	users []model.User
	tasks []model.Task
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memUserRepo struct{ *memStore }

var _ repository.UserRepositoryInterface = memUserRepo{}

func (r memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	user.CreatedAt = r.tick()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, *user)
	return nil
}

func (r memUserRepo) find(match func(model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r memUserRepo) List(_ context.Context, offset, limit int) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.users, offset, limit), nil
}

func (r memUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == user.ID {
			user.UpdatedAt = r.tick()
			r.users[i] = *user
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (r memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.OwnerID != id {
			kept = append(kept, t)
		}
	}
	r.tasks = kept

	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type memTaskRepo struct{ *memStore }

var _ repository.TaskRepositoryInterface = memTaskRepo{}

func (r memTaskRepo) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = uuid.New()
	task.CreatedAt = r.tick()
	task.UpdatedAt = task.CreatedAt
	stored := *task
	stored.Owner = nil
	r.tasks = append(r.tasks, stored)
	return nil
}

func (r memTaskRepo) withOwner(t model.Task) *model.Task {
	for _, u := range r.users {
		if u.ID == t.OwnerID {
			owner := u
			t.Owner = &owner
		}
	}
	return &t
}

func (r memTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return r.withOwner(t), nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (r memTaskRepo) GetOwned(_ context.Context, taskID, ownerID uuid.UUID) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == taskID && t.OwnerID == ownerID {
			return r.withOwner(t), nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (r memTaskRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, offset, limit int) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []model.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			owned = append(owned, *r.withOwner(t))
		}
	}
	return page(owned, offset, limit), nil
}

func (r memTaskRepo) Update(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			task.UpdatedAt = r.tick()
			stored := *task
			stored.Owner = nil
			r.tasks[i] = stored
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func (r memTaskRepo) Delete(_ context.Context, taskID, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tasks {
		if t.ID == taskID && t.OwnerID == ownerID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrTaskNotFound
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out
}

type services struct {
	store *memStore
	users *service.UserService
	tasks *service.TaskService
}

func newServices() services {
	store := newMemStore()
	users := service.NewUserService(memUserRepo{store})
	return services{
		store: store,
		users: users,
		tasks: service.NewTaskService(memTaskRepo{store}, users),
	}
}
