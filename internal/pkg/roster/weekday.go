package roster

import (
	"errors"
	"fmt"
	"strings"
)

// Weekday is a day of the roster week. The week starts on Monday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Week lists the weekdays in emission order.
var Week = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var ErrUnknownWeekday = errors.New("unknown weekday")

// Labels holds the display names of the weekdays and the export headers of
// one locale.
type Labels struct {
	Locale  string
	Days    [7]string
	Headers [7]string
}

var (
	English = Labels{
		Locale:  "en",
		Days:    [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Headers: [7]string{"Agent", "Shift", "Contract Type", "Day", "Working Window", "Break", "Meal"},
	}
	Spanish = Labels{
		Locale:  "es",
		Days:    [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},
		Headers: [7]string{"Agente", "Turno", "Tipo Contrato", "Día", "Jornada", "Break", "Refrigerio"},
	}
)

// LabelsFor returns the labels of a locale, English when unknown.
func LabelsFor(locale string) Labels {
	if strings.EqualFold(strings.TrimSpace(locale), Spanish.Locale) {
		return Spanish
	}
	return English
}

// Label returns the display name of the day.
func (l Labels) Label(d Weekday) string {
	if d < Monday || d > Sunday {
		return ""
	}
	return l.Days[d]
}

func (d Weekday) String() string {
	return English.Label(d)
}

var weekdayNames = map[string]Weekday{}

func init() {
	for _, labels := range []Labels{English, Spanish} {
		for i, name := range labels.Days {
			weekdayNames[foldName(name)] = Weekday(i)
		}
	}
}

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

func foldName(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseWeekday reads an English or Spanish weekday name, ignoring case and
// accents.
func ParseWeekday(s string) (Weekday, error) {
	d, ok := weekdayNames[foldName(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
	}
	return d, nil
}

// IsWeekday reports whether s names a weekday.
func IsWeekday(s string) bool {
	_, err := ParseWeekday(s)
	return err == nil
}
