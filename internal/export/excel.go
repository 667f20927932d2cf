package export

import (
	"fmt"
	"sort"

	"poolbot/internal/schedule"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Бронирования"

// Day строка выгрузки: все слоты рабочего дня и уже занятые из них.
type Day struct {
	Date   string
	Open   bool
	Slots  []string
	Booked []string
}

// WeekWorkbook строит xlsx: по строкам даты, по колонкам время слотов.
// Занятые слоты выделяются красным, свободные зеленым, выходные серым.
func WeekWorkbook(days []Day) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	columns := slotColumns(days)
	w := &sheetWriter{f: f, sheet: sheetName}

	// Заголовки: дата + время слотов
	w.cell(1, 1, "Дата", st.header)
	for i, slot := range columns {
		w.cell(i+2, 1, slot, st.header)
	}

	for r, day := range days {
		row := r + 2
		w.cell(1, row, day.Date, -1)

		if !day.Open {
			w.cell(2, row, "Выходной", st.closed)
			continue
		}

		booked := make(map[string]int, len(day.Booked))
		for _, t := range day.Booked {
			booked[t]++
		}
		own := make(map[string]struct{}, len(day.Slots))
		for _, s := range day.Slots {
			own[s] = struct{}{}
		}

		for i, slot := range columns {
			if _, ok := own[slot]; !ok {
				continue
			}
			if n := booked[slot]; n > 0 {
				w.cell(i+2, row, fmt.Sprintf("Занято (%d)", n), st.booked)
			} else {
				w.cell(i+2, row, "Свободно", st.free)
			}
		}
	}

	w.width("A", "A", 14)
	if len(columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(columns) + 1)
		if err != nil {
			return nil, fmt.Errorf("error naming column: %w", err)
		}
		w.width("B", last, 12)
	}
	if w.err != nil {
		return nil, fmt.Errorf("error filling sheet: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter запоминает первую ошибку excelize и пропускает остальные вызовы.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

// cell пишет значение в ячейку (col, row); style < 0 оставляет стиль по умолчанию.
func (w *sheetWriter) cell(col, row int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, name, value); err != nil {
		w.err = fmt.Errorf("set %s: %w", name, err)
		return
	}
	if style >= 0 {
		if err := w.f.SetCellStyle(w.sheet, name, name, style); err != nil {
			w.err = fmt.Errorf("style %s: %w", name, err)
		}
	}
}

func (w *sheetWriter) width(from, to string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(w.sheet, from, to, width); err != nil {
		w.err = fmt.Errorf("width %s:%s: %w", from, to, err)
	}
}

// slotColumns объединение времен слотов всех дней по возрастанию.
func slotColumns(days []Day) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, day := range days {
		for _, s := range day.Slots {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			columns = append(columns, s)
		}
	}
	// "HH:MM" сортируется лексикографически
	sort.Strings(columns)
	return columns
}

type styles struct {
	header, free, booked, closed int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	fill := func(color string) *excelize.Style {
		return &excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("error creating style: %w", err)
	}
	if s.free, err = f.NewStyle(fill("#C6EFCE")); err != nil {
		return s, fmt.Errorf("error creating style: %w", err)
	}
	if s.booked, err = f.NewStyle(fill("#FFC7CE")); err != nil {
		return s, fmt.Errorf("error creating style: %w", err)
	}
	if s.closed, err = f.NewStyle(fill("#D9D9D9")); err != nil {
		return s, fmt.Errorf("error creating style: %w", err)
	}
	return s, nil
}

// DaysFromWeek собирает строки выгрузки из недельных слотов.
func DaysFromWeek(s *schedule.Schedule, week []schedule.DaySlots, booked map[string][]string) ([]Day, error) {
	days := make([]Day, 0, len(week))
	for _, d := range week {
		day, err := s.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.Date, err)
		}
		days = append(days, Day{
			Date:   d.Date,
			Open:   d.Open,
			Slots:  s.Slots(day),
			Booked: booked[d.Date],
		})
	}
	return days, nil
}
