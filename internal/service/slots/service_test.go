package slots

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	slotRepo "github.com/m04kA/MedDir-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// fakeSlotRepo in-memory репозиторий для тестов
type fakeSlotRepo struct {
	slots map[int64]*domain.DoctorSlot

	setActiveCalls int
}

func newFakeSlotRepo(slots ...*domain.DoctorSlot) *fakeSlotRepo {
	out := &fakeSlotRepo{slots: map[int64]*domain.DoctorSlot{}}
	for _, s := range slots {
		out.slots[s.ID] = s
	}
	return out
}

func (r *fakeSlotRepo) GetOwned(_ context.Context, id int64, doctorID int64) (*domain.DoctorSlot, error) {
	s, ok := r.slots[id]
	if !ok || s.DoctorID != doctorID {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*domain.DoctorSlot, error) {
	var out []*domain.DoctorSlot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && s.IsActive {
			out = append(out, s)
		}
	}

	// Хранилище отдаёт слоты в порядке (день недели, время начала)
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
}

func (r *fakeSlotRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.setActiveCalls++

	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.IsActive = active
	return nil
}

type fakeStaffClient struct {
	err error
}

func (c *fakeStaffClient) GetDoctor(_ context.Context, doctorID int64) (*staffservice.Doctor, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &staffservice.Doctor{ID: doctorID, Name: "Dr. Smith", IsActive: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func makeSlot(id, doctorID int64, day int, start, end string, active bool) *domain.DoctorSlot {
	return &domain.DoctorSlot{
		ID:         id,
		DoctorID:   doctorID,
		HospitalID: 20,
		Type:       domain.SlotTypeOutPatients,
		DayOfWeek:  day,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		StartDate:  time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		Schedule:   domain.ScheduleWeekly,
		IsActive:   active,
	}
}

func TestList(t *testing.T) {
	repo := newFakeSlotRepo(
		makeSlot(1, 10, 5, "09:00", "13:00", true),
		makeSlot(2, 10, 1, "14:00", "18:00", true),
		makeSlot(3, 10, 1, "08:00", "12:00", true),
		makeSlot(4, 10, 3, "09:00", "13:00", false), // деактивирован
		makeSlot(5, 99, 1, "09:00", "13:00", true),  // чужой
	)
	svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

	resp, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	// Порядок: (день недели, время начала)
	assert.Equal(t, int64(3), resp.Slots[0].ID)
	assert.Equal(t, int64(2), resp.Slots[1].ID)
	assert.Equal(t, int64(1), resp.Slots[2].ID)

	assert.Equal(t, "Monday", resp.Slots[0].DayName)
	assert.Equal(t, "Friday", resp.Slots[2].DayName)
}

func TestList_DoctorNotFound(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := NewService(repo, &fakeStaffClient{err: staffservice.ErrDoctorNotFound}, nopLogger{})

	_, err := svc.List(context.Background(), 10)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetByID(t *testing.T) {
	repo := newFakeSlotRepo(makeSlot(1, 10, 3, "09:00", "13:00", true))
	svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

	t.Run("own slot", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Wednesday", resp.DayName)
	})

	t.Run("foreign slot looks like missing", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("missing slot", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, 10)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestSoftDelete(t *testing.T) {
	t.Run("deactivates active slot", func(t *testing.T) {
		repo := newFakeSlotRepo(makeSlot(1, 10, 3, "09:00", "13:00", true))
		svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

		require.NoError(t, svc.SoftDelete(context.Background(), 1, 10))

		// Слот остаётся в хранилище, но становится неактивным
		assert.False(t, repo.slots[1].IsActive)
		assert.Equal(t, 1, repo.setActiveCalls)
	})

	t.Run("repeated delete is a no-op success", func(t *testing.T) {
		repo := newFakeSlotRepo(makeSlot(1, 10, 3, "09:00", "13:00", false))
		svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

		require.NoError(t, svc.SoftDelete(context.Background(), 1, 10))
		assert.Zero(t, repo.setActiveCalls, "already inactive slot is not written again")
	})

	t.Run("foreign slot looks like missing", func(t *testing.T) {
		repo := newFakeSlotRepo(makeSlot(1, 10, 3, "09:00", "13:00", true))
		svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

		err := svc.SoftDelete(context.Background(), 1, 999)
		assert.ErrorIs(t, err, ErrSlotNotFound)
		assert.True(t, repo.slots[1].IsActive, "foreign slot is left untouched")
	})

	t.Run("missing slot", func(t *testing.T) {
		repo := newFakeSlotRepo()
		svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

		err := svc.SoftDelete(context.Background(), 42, 10)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestList_RepositoryError(t *testing.T) {
	repo := &errorListRepo{}
	svc := NewService(repo, &fakeStaffClient{}, nopLogger{})

	_, err := svc.List(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInternal)
}

// errorListRepo репозиторий, у которого всегда падает список
type errorListRepo struct {
	fakeSlotRepo
}

func (r *errorListRepo) ListByDoctor(context.Context, int64) ([]*domain.DoctorSlot, error) {
	return nil, errors.New("connection refused")
}
