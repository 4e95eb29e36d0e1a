package slotsRepo

import (
	"sync"
	"testing"

	"fixpoint/models"
	"fixpoint/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSlot(t *testing.T, store *MemorySlotStore, max int) models.SlotRef {
	t.Helper()
	slot := models.AppointmentSlot{
		Date:        "2026-03-02",
		Time:        "10:00",
		DurationMin: 60,
		MaxBookings: max,
	}
	require.NoError(t, store.Put([]models.AppointmentSlot{slot}))
	return slot.Ref()
}

func TestMemoryStorePutKeepsExistingCounters(t *testing.T) {
	store := NewMemorySlotStore()
	ref := seedSlot(t, store, 3)

	_, err := store.Reserve(ref)
	require.NoError(t, err)

	// Re-putting the same coordinates must not reset the counter.
	require.NoError(t, store.Put([]models.AppointmentSlot{{
		Date: ref.Date, Time: ref.Time, DurationMin: 60, MaxBookings: 3,
	}}))

	slot, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.CurrentBookings)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemorySlotStore()
	_, err := store.Get(models.SlotRef{Date: "2026-03-02", Time: "10:00"})
	assert.ErrorIs(t, err, scheduling.ErrSlotNotFound)
}

func TestMemoryStoreReserveNeverOversells(t *testing.T) {
	store := NewMemorySlotStore()
	ref := seedSlot(t, store, 3)

	var granted int
	for i := 0; i < 10; i++ {
		if _, err := store.Reserve(ref); err == nil {
			granted++
		} else {
			assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 3, granted)

	slot, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, 3, slot.CurrentBookings)
}

func TestMemoryStoreConcurrentLastUnit(t *testing.T) {
	store := NewMemorySlotStore()
	ref := seedSlot(t, store, 1)

	const contenders = 16
	var wg sync.WaitGroup
	results := make(chan error, contenders)
	start := make(chan struct{})

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.Reserve(ref)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, contenders-1, losses)
}

func TestMemoryStoreReleaseFloorsAtZero(t *testing.T) {
	store := NewMemorySlotStore()
	ref := seedSlot(t, store, 2)

	require.NoError(t, store.Release(ref))
	require.NoError(t, store.Release(ref))

	slot, err := store.Get(ref)
	require.NoError(t, err)
	assert.Zero(t, slot.CurrentBookings)
}

func TestMemoryStoreReleaseUnknown(t *testing.T) {
	store := NewMemorySlotStore()
	err := store.Release(models.SlotRef{Date: "2026-03-02", Time: "10:00"})
	assert.ErrorIs(t, err, scheduling.ErrSlotNotFound)
}

func TestMemoryStoreListRangeSorted(t *testing.T) {
	store := NewMemorySlotStore()
	require.NoError(t, store.Put([]models.AppointmentSlot{
		{Date: "2026-03-04", Time: "09:00", MaxBookings: 3},
		{Date: "2026-03-02", Time: "11:00", MaxBookings: 3},
		{Date: "2026-03-02", Time: "09:00", MaxBookings: 3},
		{Date: "2026-03-09", Time: "09:00", MaxBookings: 3},
	}))

	slots, err := store.List("2026-03-02", "2026-03-04")
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "2026-03-02", slots[0].Date)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "11:00", slots[1].Time)
	assert.Equal(t, "2026-03-04", slots[2].Date)
}
