package export

import (
	"bytes"
	"testing"
	"time"

	"poolbot/internal/schedule"

	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWeekWorkbook(t *testing.T) {
	days := []Day{
		{Date: "2025-08-09", Open: true, Slots: []string{"08:00", "09:00"}, Booked: []string{"09:00", "09:00"}},
		{Date: "2025-08-10", Open: false},
		{Date: "2025-08-11", Open: true, Slots: []string{"07:00", "08:00"}},
	}

	data, err := WeekWorkbook(days)
	if err != nil {
		t.Fatalf("WeekWorkbook: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}

	f := openWorkbook(t, data)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d: %v", len(rows), rows)
	}

	header := []string{"Дата", "07:00", "08:00", "09:00"}
	for i, want := range header {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}

	tests := []struct {
		cell string
		want string
	}{
		{"A2", "2025-08-09"},
		{"B2", ""},
		{"C2", "Свободно"},
		{"D2", "Занято (2)"},
		{"B3", "Выходной"},
		{"B4", "Свободно"},
		{"C4", "Свободно"},
		{"D4", ""},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(sheetName, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestWeekWorkbook_Empty(t *testing.T) {
	data, err := WeekWorkbook(nil)
	if err != nil {
		t.Fatalf("WeekWorkbook: %v", err)
	}
	f := openWorkbook(t, data)

	if v, _ := f.GetCellValue(sheetName, "A1"); v != "Дата" {
		t.Errorf("A1 = %q", v)
	}
}

func TestDaysFromWeek(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	s, err := schedule.New(schedule.Options{
		Location: loc,
		Weekly: schedule.WeeklyHours{
			time.Sunday: {Open: schedule.NewClock(9, 0), Close: schedule.NewClock(12, 0)},
		},
		SlotMinutes: 60,
	})
	if err != nil {
		t.Fatalf("schedule.New: %v", err)
	}

	week := []schedule.DaySlots{
		{Date: "2025-08-10", Open: true, Free: []string{"09:00", "11:00"}},
		{Date: "2025-08-11", Open: false, Free: []string{}},
	}
	days, err := DaysFromWeek(s, week, map[string][]string{"2025-08-10": {"10:00"}})
	if err != nil {
		t.Fatalf("DaysFromWeek: %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if got := days[0].Slots; len(got) != 3 || got[1] != "10:00" {
		t.Errorf("sunday slots must include booked ones: %v", got)
	}
	if len(days[0].Booked) != 1 {
		t.Errorf("booked = %v", days[0].Booked)
	}
	if days[1].Open || len(days[1].Slots) != 0 {
		t.Errorf("monday must be closed: %+v", days[1])
	}

	if _, err := DaysFromWeek(s, []schedule.DaySlots{{Date: "bad"}}, nil); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestSheetWriter_KeepsFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f, sheet: "Sheet1"}
	w.cell(1, 1, "ok", -1)
	if w.err != nil {
		t.Fatalf("unexpected error: %v", w.err)
	}

	w.cell(0, 1, "bad column", -1)
	first := w.err
	if first == nil {
		t.Fatal("expected error for column 0")
	}

	w.cell(2, 1, "skipped", -1)
	w.width("A", "A", 10)
	if w.err != first {
		t.Errorf("first error must be kept, got %v", w.err)
	}
	if v, _ := f.GetCellValue("Sheet1", "B1"); v != "" {
		t.Errorf("writes after an error must be skipped, B1 = %q", v)
	}

	missing := &sheetWriter{f: f, sheet: "Нет такого листа"}
	missing.cell(1, 1, "x", -1)
	if missing.err == nil {
		t.Error("expected error for missing sheet")
	}
}
