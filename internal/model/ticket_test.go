package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) *int { return &n }

func limitedTicket(id string, until time.Time, n int) Ticket {
	return Ticket{
		ID:               id,
		CenterID:         "c1",
		ValidFrom:        until.AddDate(0, -1, 0),
		ValidUntil:       until,
		RemainingEntries: entries(n),
		Lifecycle:        LifecycleActive,
	}
}

func TestTicket_DebitDeactivatesAtZero(t *testing.T) {
	tk := limitedTicket("t1", time.Now().Add(time.Hour), 2)

	require.NoError(t, tk.Debit())
	assert.Equal(t, 1, *tk.RemainingEntries)
	assert.Equal(t, LifecycleActive, tk.Lifecycle)

	require.NoError(t, tk.Debit())
	assert.Equal(t, 0, *tk.RemainingEntries)
	assert.Equal(t, LifecycleDeactivated, tk.Lifecycle)

	assert.ErrorIs(t, tk.Debit(), ErrEntriesExhausted)
	assert.Equal(t, 0, *tk.RemainingEntries)
}

func TestTicket_CreditReactivates(t *testing.T) {
	tk := limitedTicket("t1", time.Now().Add(-time.Hour), 0)
	tk.Lifecycle = LifecycleDeactivated

	tk.CreditN(1)

	assert.Equal(t, 1, *tk.RemainingEntries)
	assert.Equal(t, LifecycleActive, tk.Lifecycle)
}

func TestTicket_UnlimitedNeverChanges(t *testing.T) {
	tk := Ticket{ID: "u", CenterID: "c1", Lifecycle: LifecycleActive}

	for i := 0; i < 5; i++ {
		require.NoError(t, tk.Debit())
		tk.CreditN(1)
	}

	assert.Nil(t, tk.RemainingEntries)
	assert.True(t, tk.Lifecycle.IsActive())
}

func TestTicket_CreditN(t *testing.T) {
	tk := limitedTicket("t1", time.Now().Add(time.Hour), 3)
	tk.CreditN(10)
	assert.Equal(t, 13, *tk.RemainingEntries)

	tk.CreditN(0)
	assert.Equal(t, 13, *tk.RemainingEntries)
}

func TestTicket_Qualifies(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Ticket)
		want   bool
	}{
		{"valid", func(*Ticket) {}, true},
		{"other center", func(t *Ticket) { t.CenterID = "c2" }, false},
		{"deactivated", func(t *Ticket) { t.Lifecycle = LifecycleDeactivated }, false},
		{"not started", func(t *Ticket) { t.ValidFrom = now.Add(time.Minute) }, false},
		{"expired", func(t *Ticket) { t.ValidUntil = now.Add(-time.Minute) }, false},
		{"no entries", func(t *Ticket) { t.RemainingEntries = entries(0) }, false},
		{"unlimited", func(t *Ticket) { t.RemainingEntries = nil }, true},
		{"ends exactly now", func(t *Ticket) { t.ValidUntil = now }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := limitedTicket("t1", now.Add(24*time.Hour), 5)
			tt.mutate(&tk)
			assert.Equal(t, tt.want, tk.Qualifies("c1", now))
		})
	}
}

func TestBestTicket_PrefersLimitedSoonestExpiry(t *testing.T) {
	now := time.Now()
	unlimited := Ticket{
		ID:         "a-unlimited",
		CenterID:   "c1",
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		Lifecycle:  LifecycleActive,
	}
	later := limitedTicket("b-later", now.Add(72*time.Hour), 4)
	sooner := limitedTicket("c-sooner", now.Add(48*time.Hour), 4)

	best, ok := BestTicket([]Ticket{unlimited, later, sooner}, "c1", now)

	require.True(t, ok)
	assert.Equal(t, "c-sooner", best.ID)
}

func TestBestTicket_TieBreaksOnID(t *testing.T) {
	now := time.Now()
	until := now.Add(24 * time.Hour)

	best, ok := BestTicket([]Ticket{
		limitedTicket("t-2", until, 1),
		limitedTicket("t-1", until, 1),
	}, "c1", now)

	require.True(t, ok)
	assert.Equal(t, "t-1", best.ID)
}

func TestBestTicket_FallsBackToUnlimited(t *testing.T) {
	now := time.Now()
	exhausted := limitedTicket("t-1", now.Add(time.Hour), 0)
	unlimited := Ticket{
		ID:         "t-2",
		CenterID:   "c1",
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		Lifecycle:  LifecycleActive,
	}

	best, ok := BestTicket([]Ticket{exhausted, unlimited}, "c1", now)

	require.True(t, ok)
	assert.Equal(t, "t-2", best.ID)
}

func TestBestTicket_None(t *testing.T) {
	_, ok := BestTicket(nil, "c1", time.Now())
	assert.False(t, ok)
}

func TestPlan_NewTicket(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tenPack := TicketPlan{ID: "p1", MaxEntries: entries(10)}
	tk := tenPack.NewTicket("u1", "c1", now)
	assert.Equal(t, 10, *tk.RemainingEntries)
	assert.Equal(t, now.AddDate(10, 0, 0), tk.ValidUntil)

	monthly := TicketPlan{ID: "p2", DurationDays: entries(30)}
	tk = monthly.NewTicket("u1", "c1", now)
	assert.Nil(t, tk.RemainingEntries)
	assert.Equal(t, now.AddDate(0, 0, 30), tk.ValidUntil)
	assert.Equal(t, LifecycleActive, tk.Lifecycle)
}

func TestTicket_ExtendUntilNeverShrinks(t *testing.T) {
	now := time.Now()
	tk := limitedTicket("t1", now.Add(48*time.Hour), 1)

	tk.ExtendUntil(now.Add(time.Hour))
	assert.Equal(t, now.Add(48*time.Hour), tk.ValidUntil)

	tk.ExtendUntil(now.Add(96 * time.Hour))
	assert.Equal(t, now.Add(96*time.Hour), tk.ValidUntil)
}
