package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"esep-backend/internal/domain"
	"esep-backend/internal/repository"
)

// recordingPublisher captures change notifications instead of going through
// Postgres.
type recordingPublisher struct {
	tables []string
}

func (p *recordingPublisher) Publish(_ context.Context, table string) error {
	p.tables = append(p.tables, table)
	return nil
}

func duplicateErr() error {
	return &pgconn.PgError{Code: "23505"}
}

type fakeRegistrationStore struct {
	regs   []domain.Registration
	nextID int64
}

func (s *fakeRegistrationStore) List(context.Context) ([]domain.Registration, error) {
	return s.regs, nil
}

func (s *fakeRegistrationStore) GetByID(_ context.Context, id int64) (*domain.Registration, error) {
	for i := range s.regs {
		if s.regs[i].ID == id {
			reg := s.regs[i]
			return &reg, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeRegistrationStore) ExistsByMobile(_ context.Context, mobile string) (bool, error) {
	for i := range s.regs {
		if s.regs[i].Mobile == mobile {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRegistrationStore) Create(_ context.Context, p repository.CreateRegistrationParams) (*domain.Registration, error) {
	s.nextID++
	reg := domain.Registration{
		ID:           s.nextID,
		CustomerID:   p.CustomerID,
		Name:         p.Name,
		Address:      p.Address,
		Mobile:       p.Mobile,
		Panchayath:   p.Panchayath,
		Ward:         p.Ward,
		Category:     p.Category,
		AgentDetails: p.AgentDetails,
		Status:       domain.RegistrationPending,
		FeeAmount:    p.FeeAmount,
	}
	s.regs = append(s.regs, reg)
	return &reg, nil
}

func (s *fakeRegistrationStore) UpdateStatus(_ context.Context, id int64, status domain.RegistrationStatus) error {
	for i := range s.regs {
		if s.regs[i].ID == id {
			s.regs[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeRegistrationStore) Delete(_ context.Context, id int64) error {
	for i := range s.regs {
		if s.regs[i].ID == id {
			s.regs = append(s.regs[:i], s.regs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeRegistrationStore) FindByMobile(_ context.Context, mobile string) (*domain.Registration, error) {
	return s.findExactlyOne(func(r domain.Registration) bool { return r.Mobile == mobile })
}

func (s *fakeRegistrationStore) FindByCustomerID(_ context.Context, customerID string) (*domain.Registration, error) {
	return s.findExactlyOne(func(r domain.Registration) bool { return r.CustomerID == customerID })
}

func (s *fakeRegistrationStore) findExactlyOne(match func(domain.Registration) bool) (*domain.Registration, error) {
	var found []domain.Registration
	for _, r := range s.regs {
		if match(r) {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

type fakeCategoryStore struct {
	categories []domain.Category
}

func (s *fakeCategoryStore) List(_ context.Context, activeOnly bool) ([]domain.Category, error) {
	if !activeOnly {
		return s.categories, nil
	}
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) Get(_ context.Context, id string) (*domain.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCategoryStore) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			return nil, duplicateErr()
		}
	}
	s.categories = append(s.categories, c)
	return &c, nil
}

func (s *fakeCategoryStore) Update(_ context.Context, id string, c domain.Category) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			c.ID = id
			s.categories[i] = c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeCategoryStore) SetActive(_ context.Context, id string, active bool) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].IsActive = active
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeCategoryStore) Delete(_ context.Context, id string) error {
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePanchayathStore struct {
	panchayaths []domain.Panchayath
	nextID      int64
}

func (s *fakePanchayathStore) List(context.Context) ([]domain.Panchayath, error) {
	return s.panchayaths, nil
}

func (s *fakePanchayathStore) Create(_ context.Context, name, district string) (*domain.Panchayath, error) {
	for _, p := range s.panchayaths {
		if p.Name == name && p.District == district {
			return nil, duplicateErr()
		}
	}
	s.nextID++
	p := domain.Panchayath{ID: s.nextID, Name: name, District: district}
	s.panchayaths = append(s.panchayaths, p)
	return &p, nil
}

func (s *fakePanchayathStore) Update(_ context.Context, id int64, name, district string) error {
	for i := range s.panchayaths {
		if s.panchayaths[i].ID == id {
			s.panchayaths[i].Name = name
			s.panchayaths[i].District = district
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakePanchayathStore) Delete(_ context.Context, id int64) error {
	for i := range s.panchayaths {
		if s.panchayaths[i].ID == id {
			s.panchayaths = append(s.panchayaths[:i], s.panchayaths[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeAdminUserStore struct {
	users  []domain.AdminUser
	nextID int64
}

func (s *fakeAdminUserStore) List(context.Context) ([]domain.AdminUser, error) {
	return s.users, nil
}

func (s *fakeAdminUserStore) GetByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeAdminUserStore) Create(_ context.Context, p repository.CreateAdminUserParams) (*domain.AdminUser, error) {
	for _, u := range s.users {
		if u.Username == p.Username {
			return nil, duplicateErr()
		}
	}
	s.nextID++
	u := domain.AdminUser{
		ID:          s.nextID,
		Username:    p.Username,
		Password:    p.Password,
		Role:        p.Role,
		Permissions: p.Permissions,
		Status:      domain.AdminActive,
	}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *fakeAdminUserStore) SetStatus(_ context.Context, id int64, status domain.AdminStatus) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

// decodeBody unwraps the response envelope and returns the data field.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) (data any, message string) {
	t.Helper()
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data, body.Message
}
