package create_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// fakeSlotRepo in-memory репозиторий для тестов
type fakeSlotRepo struct {
	slots          []*domain.DoctorSlot
	nextID         int64
	createErrByDay map[int]error
	listErr        error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1, createErrByDay: map[int]error{}}
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.DoctorSlot) (*domain.DoctorSlot, error) {
	if err := r.createErrByDay[s.DayOfWeek]; err != nil {
		return nil, err
	}

	created := *s
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.nextID++

	r.slots = append(r.slots, &created)
	return &created, nil
}

func (r *fakeSlotRepo) ListActive(_ context.Context, doctorID, hospitalID int64, dayOfWeek int) ([]*domain.DoctorSlot, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []*domain.DoctorSlot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && s.HospitalID == hospitalID && s.DayOfWeek == dayOfWeek && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeStaffClient struct {
	err   error
	calls int
}

func (c *fakeStaffClient) GetDoctor(_ context.Context, doctorID int64) (*staffservice.Doctor, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &staffservice.Doctor{ID: doctorID, Name: "Dr. Smith", IsActive: true}, nil
}

type fakeHospitalClient struct {
	err error
}

func (c *fakeHospitalClient) GetHospital(_ context.Context, hospitalID int64) (*hospitalservice.Hospital, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &hospitalservice.Hospital{ID: hospitalID, Name: "City Hospital"}, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo     *fakeSlotRepo
	staff    *fakeStaffClient
	hospital *fakeHospitalClient
	tx       *fakeTxManager
	uc       *UseCase
}

func newFixture() *fixture {
	repo := newFakeSlotRepo()
	staff := &fakeStaffClient{}
	hospital := &fakeHospitalClient{}
	tx := &fakeTxManager{}

	return &fixture{
		repo:     repo,
		staff:    staff,
		hospital: hospital,
		tx:       tx,
		uc:       NewUseCase(repo, staff, hospital, tx, nopLogger{}),
	}
}

func mustTime(t *testing.T, v string) types.TimeString {
	t.Helper()
	out, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return out
}

// baseRequest запрос на Пн/Ср/Пт от вторника 2026-09-01
func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		DoctorID:   10,
		HospitalID: 20,
		Type:       domain.SlotTypeOutPatients,
		DaysOfWeek: []int{1, 3, 5},
		StartTime:  mustTime(t, "09:00"),
		EndTime:    mustTime(t, "13:00"),
		StartDate:  time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_CreatesSlotForEachDay(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	require.Len(t, resp.Created, 3)
	assert.Empty(t, resp.Errors)
	assert.False(t, resp.PartialSuccess)

	// Якоря считаются от базовой даты независимо для каждого дня
	anchors := map[int]string{}
	for _, slot := range resp.Created {
		anchors[slot.DayOfWeek] = slot.StartDate.Format(domain.DateFormat)
		assert.True(t, slot.IsActive)
		assert.Equal(t, domain.ScheduleWeekly, slot.Schedule, "schedule defaults to weekly")
	}

	assert.Equal(t, "2026-09-07", anchors[1], "Monday wraps to next week")
	assert.Equal(t, "2026-09-02", anchors[3], "Wednesday is the day after the base date")
	assert.Equal(t, "2026-09-04", anchors[5], "Friday is later the same week")

	// Каждый день создается в собственной транзакции
	assert.Equal(t, 3, f.tx.calls)
}

func TestExecute_PartialSuccessOnConflict(t *testing.T) {
	f := newFixture()

	// Действующий слот врача в среду пересекается с запрошенным окном
	_, err := f.repo.Create(context.Background(), &domain.DoctorSlot{
		DoctorID:   10,
		HospitalID: 20,
		Type:       domain.SlotTypeConsultation,
		DayOfWeek:  3,
		StartTime:  mustTime(t, "10:00"),
		EndTime:    mustTime(t, "12:00"),
		StartDate:  time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		Schedule:   domain.ScheduleWeekly,
		IsActive:   true,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	assert.True(t, resp.PartialSuccess)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].DayOfWeek)
	assert.Equal(t, "Wednesday", resp.Errors[0].DayName)
	assert.Equal(t, reasonConflict, resp.Errors[0].Reason)
}

func TestExecute_AllDaysFailed(t *testing.T) {
	f := newFixture()

	// Конфликты на всех трёх запрошенных днях
	for _, day := range []int{1, 3, 5} {
		_, err := f.repo.Create(context.Background(), &domain.DoctorSlot{
			DoctorID:   10,
			HospitalID: 20,
			Type:       domain.SlotTypeOutPatients,
			DayOfWeek:  day,
			StartTime:  mustTime(t, "08:00"),
			EndTime:    mustTime(t, "18:00"),
			StartDate:  time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC),
			Schedule:   domain.ScheduleWeekly,
			IsActive:   true,
		})
		require.NoError(t, err)
	}

	before := len(f.repo.slots)

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))
	require.ErrorIs(t, err, ErrAllDaysFailed)
	require.NotNil(t, resp, "response carries per-day reasons even on total failure")

	assert.Empty(t, resp.Created)
	assert.Len(t, resp.Errors, 3)
	assert.Len(t, f.repo.slots, before, "no slots created when all days fail")
}

func TestExecute_StorageErrorDoesNotStopOtherDays(t *testing.T) {
	f := newFixture()
	f.repo.createErrByDay[3] = errors.New("insert failed")

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	assert.True(t, resp.PartialSuccess)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].DayOfWeek)
	assert.Equal(t, reasonStorage, resp.Errors[0].Reason)
}

func TestExecute_ListFailureMarksDayAsStorageError(t *testing.T) {
	f := newFixture()
	f.repo.listErr = errors.New("connection reset")

	req := baseRequest(t)
	req.DaysOfWeek = []int{1}

	resp, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrAllDaysFailed)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, reasonStorage, resp.Errors[0].Reason)
}

func TestExecute_DuplicateDaysCollapse(t *testing.T) {
	f := newFixture()

	req := baseRequest(t)
	req.DaysOfWeek = []int{5, 1, 5, 1}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Created, 2)
	assert.Empty(t, resp.Errors)
}

func TestExecute_ValidationFailsFast(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"day out of range", func(r *Request) { r.DaysOfWeek = []int{7} }, ErrInvalidDayOfWeek},
		{"negative day", func(r *Request) { r.DaysOfWeek = []int{-1} }, ErrInvalidDayOfWeek},
		{"empty days", func(r *Request) { r.DaysOfWeek = nil }, ErrInvalidInput},
		{"start equals end", func(r *Request) { r.EndTime = r.StartTime }, ErrInvalidTimeRange},
		{"start after end", func(r *Request) {
			r.StartTime = types.TimeString("15:00")
			r.EndTime = types.TimeString("09:00")
		}, ErrInvalidTimeRange},
		{"unknown slot type", func(r *Request) { r.Type = "WALK_IN" }, ErrUnknownSlotType},
		{"unknown schedule", func(r *Request) { r.Schedule = "daily" }, ErrUnknownSchedule},
		{"zero start date", func(r *Request) { r.StartDate = time.Time{} }, ErrInvalidInput},
		{"missing doctor id", func(r *Request) { r.DoctorID = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			req := baseRequest(t)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.staff.calls, "validation must fail before integration calls")
			assert.Empty(t, f.repo.slots)
		})
	}
}

func TestExecute_DoctorNotFound(t *testing.T) {
	f := newFixture()
	f.staff.err = staffservice.ErrDoctorNotFound

	_, err := f.uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.Empty(t, f.repo.slots)
}

func TestExecute_HospitalNotFound(t *testing.T) {
	f := newFixture()
	f.hospital.err = hospitalservice.ErrHospitalNotFound

	_, err := f.uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrHospitalNotFound)
	assert.Empty(t, f.repo.slots)
}

func TestExecute_ContextCancelledBeforeProcessing(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := f.uc.Execute(ctx, baseRequest(t))
	require.ErrorIs(t, err, ErrAllDaysFailed)
	require.NotNil(t, resp)

	// Необработанные дни фиксируются явно, а не пропадают молча
	require.Len(t, resp.Errors, 3)
	for _, dayErr := range resp.Errors {
		assert.Equal(t, reasonDeadline, dayErr.Reason)
	}
	assert.Empty(t, f.repo.slots)
}

func TestExecute_KeepsExplicitSchedule(t *testing.T) {
	f := newFixture()

	req := baseRequest(t)
	req.DaysOfWeek = []int{3}
	req.Schedule = domain.ScheduleBiweekly

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, domain.ScheduleBiweekly, resp.Created[0].Schedule)
}
