package update_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	slotRepo "github.com/m04kA/MedDir-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
	"github.com/m04kA/MedDir-SlotService/pkg/ptr"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// fakeSlotRepo in-memory репозиторий для тестов
type fakeSlotRepo struct {
	slots map[int64]*domain.DoctorSlot

	listCalls   int
	updateCalls int
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

func (r *fakeSlotRepo) ListActive(_ context.Context, doctorID, hospitalID int64, dayOfWeek int) ([]*domain.DoctorSlot, error) {
	r.listCalls++

	var out []*domain.DoctorSlot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && s.HospitalID == hospitalID && s.DayOfWeek == dayOfWeek && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Update(_ context.Context, id int64, upd domain.SlotUpdate, startDate *time.Time) (*domain.DoctorSlot, error) {
	r.updateCalls++

	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}

	merged := upd.Apply(s)
	if startDate != nil {
		merged.StartDate = *startDate
	}
	merged.UpdatedAt = time.Now()

	r.slots[id] = &merged
	copied := merged
	return &copied, nil
}

type fakeHospitalClient struct {
	err   error
	calls int
}

func (c *fakeHospitalClient) GetHospital(_ context.Context, hospitalID int64) (*hospitalservice.Hospital, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &hospitalservice.Hospital{ID: hospitalID, Name: "City Hospital"}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, v string) types.TimeString {
	t.Helper()
	out, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return out
}

// ownedSlot слот врача 10 в больнице 20: среда 09:00-13:00 с якорем 2026-09-02
func ownedSlot(t *testing.T) *domain.DoctorSlot {
	t.Helper()
	return &domain.DoctorSlot{
		ID:         1,
		DoctorID:   10,
		HospitalID: 20,
		Type:       domain.SlotTypeOutPatients,
		DayOfWeek:  3,
		StartTime:  mustTime(t, "09:00"),
		EndTime:    mustTime(t, "13:00"),
		StartDate:  time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		Schedule:   domain.ScheduleWeekly,
		IsActive:   true,
	}
}

func newUseCase(repo *fakeSlotRepo, hospital *fakeHospitalClient) *UseCase {
	return NewUseCase(repo, hospital, fakeTxManager{}, nopLogger{})
}

func TestExecute_UpdatesTimeWindow(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	newStart := mustTime(t, "10:00")
	newEnd := mustTime(t, "14:00")

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes: domain.SlotUpdate{
			StartTime: &newStart,
			EndTime:   &newEnd,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.Slot.StartTime)
	assert.Equal(t, newEnd, resp.Slot.EndTime)
	assert.Equal(t, 3, resp.Slot.DayOfWeek, "untouched fields keep their values")
	assert.Equal(t, domain.SlotTypeOutPatients, resp.Slot.Type)
}

func TestExecute_DayChangeRecomputesAnchor(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{DayOfWeek: ptr.Ptr(5)},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Slot.DayOfWeek)
	// Пятница после прежнего якоря (среда 2026-09-02) - это 2026-09-04
	assert.Equal(t, "2026-09-04", resp.Slot.StartDate.Format(domain.DateFormat))
}

func TestExecute_ConflictRejectsWholeUpdate(t *testing.T) {
	other := &domain.DoctorSlot{
		ID:         2,
		DoctorID:   10,
		HospitalID: 20,
		Type:       domain.SlotTypeConsultation,
		DayOfWeek:  3,
		StartTime:  mustTime(t, "14:00"),
		EndTime:    mustTime(t, "16:00"),
		StartDate:  time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		Schedule:   domain.ScheduleWeekly,
		IsActive:   true,
	}

	repo := newFakeSlotRepo(ownedSlot(t), other)
	uc := newUseCase(repo, &fakeHospitalClient{})

	newEnd := mustTime(t, "15:00")

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{EndTime: &newEnd},
	})
	require.ErrorIs(t, err, ErrSlotConflict)

	// Ни одно поле не применено
	current, getErr := repo.GetOwned(context.Background(), 1, 10)
	require.NoError(t, getErr)
	assert.Equal(t, mustTime(t, "13:00"), current.EndTime)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_SlotDoesNotConflictWithItself(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	// Сдвиг внутри собственного окна
	newStart := mustTime(t, "10:00")

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{StartTime: &newStart},
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, resp.Slot.StartTime)
}

func TestExecute_DescriptionOnlySkipsConflictCheck(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	hospital := &fakeHospitalClient{}
	uc := newUseCase(repo, hospital)

	resp, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{Description: ptr.Ptr("morning rounds")},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Slot.Description)
	assert.Equal(t, "morning rounds", *resp.Slot.Description)
	assert.Zero(t, repo.listCalls, "non-schedule changes skip the conflict scan")
	assert.Zero(t, hospital.calls)
}

func TestExecute_ForeignSlotLooksLikeMissing(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 999,
		Changes:  domain.SlotUpdate{Description: ptr.Ptr("x")},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_OwnershipCheckedBeforeChangeValidation(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	// Чужой слот с заведомо некорректным изменением: ответ не должен
	// раскрывать, что слот существует
	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 999,
		Changes:  domain.SlotUpdate{DayOfWeek: ptr.Ptr(9)},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NotErrorIs(t, err, ErrInvalidDayOfWeek)
}

func TestExecute_OwnershipCheckedBeforeHospitalLookup(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	hospital := &fakeHospitalClient{}
	uc := newUseCase(repo, hospital)

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 999,
		Changes:  domain.SlotUpdate{HospitalID: ptr.Ptr(int64(99))},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Zero(t, hospital.calls, "hospital directory is not consulted until ownership is proven")
}

func TestExecute_EmptyChangesOnForeignSlot(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 999,
		Changes:  domain.SlotUpdate{},
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NotErrorIs(t, err, ErrNoChanges)
}

func TestExecute_MergedInvalidTimeRange(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	// Новое начало позже прежнего конца
	newStart := mustTime(t, "14:00")

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{StartTime: &newStart},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_EmptyChanges(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	uc := newUseCase(repo, &fakeHospitalClient{})

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{},
	})
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestExecute_HospitalNotFound(t *testing.T) {
	repo := newFakeSlotRepo(ownedSlot(t))
	hospital := &fakeHospitalClient{err: hospitalservice.ErrHospitalNotFound}
	uc := newUseCase(repo, hospital)

	_, err := uc.Execute(context.Background(), &Request{
		SlotID:   1,
		DoctorID: 10,
		Changes:  domain.SlotUpdate{HospitalID: ptr.Ptr(int64(99))},
	})
	assert.ErrorIs(t, err, ErrHospitalNotFound)
	assert.Zero(t, repo.updateCalls)
}
