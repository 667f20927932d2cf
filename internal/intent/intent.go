package intent

import "strings"

// Intent распознанное намерение свободного текста
type Intent int

const (
	Unknown Intent = iota
	Items
	OpenStatus
	HowToBook
	FreeSlots
	MinAge
)

func (i Intent) String() string {
	switch i {
	case Items:
		return "items"
	case OpenStatus:
		return "open_status"
	case HowToBook:
		return "how_to_book"
	case FreeSlots:
		return "free_slots"
	case MinAge:
		return "min_age"
	default:
		return "unknown"
	}
}

// rule срабатывает, если в тексте есть хотя бы одно слово из Any и,
// когда All не пуст, хотя бы одно слово из All.
type rule struct {
	Intent Intent
	Any    []string
	All    []string
}

// Порядок важен: побеждает первое совпавшее правило.
var rules = []rule{
	{Intent: Items, Any: []string{"что взять", "с собой", "шапочка", "полотенце"}},
	{Intent: OpenStatus, Any: []string{"работает", "открыт", "сегодня"}},
	{Intent: HowToBook, Any: []string{"как запис", "записат", "запись"}},
	{Intent: FreeSlots, Any: []string{"свободн"}, All: []string{"время", "слоты", "окна", "недел"}},
	{Intent: MinAge, Any: []string{"возраст", "скольки лет", "ребен", "дет"}},
}

// Classify сопоставляет текст с ключевыми словами без учета регистра.
func Classify(text string) Intent {
	low := strings.ToLower(strings.TrimSpace(text))
	if low == "" {
		return Unknown
	}

	for _, r := range rules {
		if containsAny(low, r.Any) && (len(r.All) == 0 || containsAny(low, r.All)) {
			return r.Intent
		}
	}
	return Unknown
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
