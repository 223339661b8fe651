package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsedLine — одна позиция состава заказа из строки импорта.
type ParsedLine struct {
	Article  string
	Quantity int
}

// ParseOrderLines разбирает строку вида "А112Т4, 2, F635R4, 2" на пары
// артикул/количество. Непарный хвост отбрасывается, нечисловое количество —
// ошибка всей строки.
func ParseOrderLines(s string) ([]ParsedLine, error) {
	var lines []ParsedLine
	parts := strings.Split(s, ",")
	for i := 0; i+1 < len(parts); i += 2 {
		article := strings.TrimSpace(parts[i])
		qtyRaw := strings.TrimSpace(parts[i+1])
		if article == "" {
			continue
		}
		qty, err := strconv.Atoi(qtyRaw)
		if err != nil {
			return nil, fmt.Errorf("bad quantity %q for article %q: %w", qtyRaw, article, err)
		}
		lines = append(lines, ParsedLine{Article: article, Quantity: qty})
	}
	return lines, nil
}

// ParseImportDate принимает DD.MM.YYYY и YYYY-MM-DD. Часть после пробела
// (время из выгрузки) отбрасывается. Нераспознанная дата — сегодняшняя,
// ок передаётся вторым значением, чтобы вызывающий мог залогировать.
func ParseImportDate(s string, now func() time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	if strings.Contains(s, ".") {
		if t, err := time.Parse("02.01.2006", s); err == nil {
			return t, true
		}
	}
	if strings.Contains(s, "-") {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
	}
	return now(), false
}

// headerIndex сопоставляет обязательные имена колонок с их позициями.
// Отсутствие колонки — ошибка с перечислением того, что есть и чего не хватает.
func headerIndex(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			// BOM из выгрузок Windows приклеивается к первой ячейке заголовка.
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns %v (file has %v)", missing, header)
	}
	return index, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
