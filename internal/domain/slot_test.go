package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/MedDir-SlotService/pkg/ptr"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

func TestSlotUpdateIsEmpty(t *testing.T) {
	assert.True(t, (&SlotUpdate{}).IsEmpty())
	assert.False(t, (&SlotUpdate{Description: ptr.Ptr("x")}).IsEmpty())
	assert.False(t, (&SlotUpdate{DayOfWeek: ptr.Ptr(1)}).IsEmpty())
}

func TestSlotUpdateTouchesSchedule(t *testing.T) {
	start := types.TimeString("10:00")

	assert.False(t, (&SlotUpdate{}).TouchesSchedule())
	assert.False(t, (&SlotUpdate{Description: ptr.Ptr("x")}).TouchesSchedule())
	assert.False(t, (&SlotUpdate{Type: ptr.Ptr(SlotTypeSurgery)}).TouchesSchedule())

	assert.True(t, (&SlotUpdate{DayOfWeek: ptr.Ptr(1)}).TouchesSchedule())
	assert.True(t, (&SlotUpdate{StartTime: &start}).TouchesSchedule())
	assert.True(t, (&SlotUpdate{HospitalID: ptr.Ptr(int64(2))}).TouchesSchedule())
}

func TestSlotUpdateApply(t *testing.T) {
	original := &DoctorSlot{
		ID:         1,
		DoctorID:   10,
		HospitalID: 20,
		Type:       SlotTypeOutPatients,
		DayOfWeek:  3,
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("13:00"),
		StartDate:  time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
		Schedule:   ScheduleWeekly,
		IsActive:   true,
	}

	upd := SlotUpdate{
		DayOfWeek: ptr.Ptr(5),
		StartTime: ptr.Ptr(types.TimeString("10:00")),
	}

	merged := upd.Apply(original)

	assert.Equal(t, 5, merged.DayOfWeek)
	assert.Equal(t, types.TimeString("10:00"), merged.StartTime)
	assert.Equal(t, types.TimeString("13:00"), merged.EndTime, "untouched fields keep their values")
	assert.Equal(t, SlotTypeOutPatients, merged.Type)

	// Активность обновлением не меняется: деактивация идёт отдельным путём
	assert.True(t, merged.IsActive)

	// Исходный слот не модифицируется
	assert.Equal(t, 3, original.DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), original.StartTime)
}
