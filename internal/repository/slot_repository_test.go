package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unifylabs/unify-backend/internal/model"
)

// fakeSlotRows implements pgx.Rows over fixed row values so scanSlots
// can be exercised without a database. Column order matches the slot
// SELECT: id, course_code, section, day, start_min, end_min, kind.
type fakeSlotRows struct {
	rows [][]any
	idx  int
}

func (f *fakeSlotRows) Next() bool {
	f.idx++
	return f.idx <= len(f.rows)
}

func (f *fakeSlotRows) Scan(dest ...any) error {
	row := f.rows[f.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = row[i].(int)
		case *string:
			*p = row[i].(string)
		}
	}
	return nil
}

func (f *fakeSlotRows) Close()                                       {}
func (f *fakeSlotRows) Err() error                                   { return nil }
func (f *fakeSlotRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeSlotRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeSlotRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeSlotRows) RawValues() [][]byte                          { return nil }
func (f *fakeSlotRows) Conn() *pgx.Conn                              { return nil }

// The day column stores the Saturday-first ordinal as an integer; the
// scanner must read exactly what insertSlots writes.
func TestScanSlotsReadsWeekdayOrdinals(t *testing.T) {
	rows := &fakeSlotRows{rows: [][]any{
		{1, "CS101", 1, int(model.Monday), 9 * 60, 10 * 60, "lecture"},
		{2, "CS101", 1, int(model.Saturday), 11 * 60, 12 * 60, "lab"},
		{3, "MA201", 2, int(model.Friday), 13 * 60, 14 * 60, "tutorial"},
	}}

	slots, err := scanSlots(pgx.Rows(rows))
	if err != nil {
		t.Fatalf("scanSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}

	want := []model.Weekday{model.Monday, model.Saturday, model.Friday}
	for i, s := range slots {
		if s.Day != want[i] {
			t.Errorf("slot %d: day = %v, want %v", s.ID, s.Day, want[i])
		}
	}
	if slots[0].Start != 9*60 || slots[0].End != 10*60 {
		t.Errorf("slot 1 times = %d-%d, want %d-%d", slots[0].Start, slots[0].End, 9*60, 10*60)
	}
	if slots[1].Kind != model.SlotLab {
		t.Errorf("slot 2 kind = %q, want lab", slots[1].Kind)
	}
}

func TestScanSlotsRejectsOutOfRangeDay(t *testing.T) {
	for _, day := range []int{-1, 7, 42} {
		rows := &fakeSlotRows{rows: [][]any{
			{1, "CS101", 1, day, 9 * 60, 10 * 60, "lecture"},
		}}
		if _, err := scanSlots(pgx.Rows(rows)); err == nil {
			t.Errorf("day ordinal %d accepted, want error", day)
		}
	}
}
