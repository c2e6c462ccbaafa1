package scheduler

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 14, hour, 0, 0, 0, time.UTC)
}

func span(startHour, endHour int) Interval {
	return Interval{Start: at(startHour), End: at(endHour)}
}

func storeWith(t *testing.T, spans ...Interval) *intervalStore {
	t.Helper()
	store := &intervalStore{}
	for i, iv := range spans {
		if !store.canFit(iv) {
			t.Fatalf("fixture interval %v does not fit", iv)
		}
		store.insert(string(rune('a'+i)), iv)
	}
	return store
}

func TestIntervalStore_CanFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		existing  []Interval
		candidate Interval
		want      bool
	}{
		{
			name:      "empty store accepts anything",
			candidate: span(10, 12),
			want:      true,
		},
		{
			name:      "gap between bookings",
			existing:  []Interval{span(8, 10), span(14, 16)},
			candidate: span(11, 13),
			want:      true,
		},
		{
			name:      "back to back with predecessor",
			existing:  []Interval{span(10, 12)},
			candidate: span(12, 14),
			want:      true,
		},
		{
			name:      "back to back with successor",
			existing:  []Interval{span(12, 14)},
			candidate: span(10, 12),
			want:      true,
		},
		{
			name:      "predecessor extends into candidate",
			existing:  []Interval{span(10, 12)},
			candidate: span(11, 13),
			want:      false,
		},
		{
			name:      "candidate extends into successor",
			existing:  []Interval{span(12, 14)},
			candidate: span(10, 13),
			want:      false,
		},
		{
			name:      "candidate spans multiple bookings",
			existing:  []Interval{span(10, 12), span(14, 16)},
			candidate: span(9, 15),
			want:      false,
		},
		{
			name:      "identical range",
			existing:  []Interval{span(10, 12)},
			candidate: span(10, 12),
			want:      false,
		},
		{
			name:      "candidate contained in booking",
			existing:  []Interval{span(8, 18)},
			candidate: span(10, 11),
			want:      false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := storeWith(t, tt.existing...)
			if got := store.canFit(tt.candidate); got != tt.want {
				t.Fatalf("canFit(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestIntervalStore_InsertKeepsStartOrder(t *testing.T) {
	t.Parallel()

	store := &intervalStore{}
	store.insert("late", span(14, 16))
	store.insert("early", span(8, 10))
	store.insert("middle", span(10, 12))

	wantOrder := []string{"early", "middle", "late"}
	if len(store.bookings) != len(wantOrder) {
		t.Fatalf("expected %d bookings, got %d", len(wantOrder), len(store.bookings))
	}
	for i, id := range wantOrder {
		if store.bookings[i].id != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, store.bookings[i].id)
		}
	}
}

func TestIntervalStore_Remove(t *testing.T) {
	t.Parallel()

	store := &intervalStore{}
	store.insert("first", span(8, 10))
	store.insert("second", span(10, 12))

	if !store.remove("first", span(8, 10)) {
		t.Fatal("expected removal of known booking to succeed")
	}
	if store.len() != 1 || store.bookings[0].id != "second" {
		t.Fatalf("unexpected store contents after removal: %+v", store.bookings)
	}

	if store.remove("first", span(8, 10)) {
		t.Fatal("expected second removal of same booking to fail")
	}

	// Wrong id at a matching start must not remove anything.
	if store.remove("impostor", span(10, 12)) {
		t.Fatal("expected removal with mismatched id to fail")
	}
	if store.len() != 1 {
		t.Fatalf("store mutated by failed removal: %+v", store.bookings)
	}
}

func TestIntervalStore_FreedSlotIsReusable(t *testing.T) {
	t.Parallel()

	store := storeWith(t, span(8, 10), span(10, 12), span(12, 14))
	if store.canFit(span(10, 12)) {
		t.Fatal("occupied slot reported as free")
	}

	if !store.remove("b", span(10, 12)) {
		t.Fatal("expected removal to succeed")
	}
	if !store.canFit(span(10, 12)) {
		t.Fatal("freed slot still reported as occupied")
	}
}
