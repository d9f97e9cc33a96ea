package sim

// anchorYear is the calendar year of simulated day zero (1 January).
// Only elapsed day counts matter; the value fixes where leap days fall.
const anchorYear = 2025

// horizonDays is the number of days walked for a horizon of the given years.
// It approximates leap days as years/4 and adds one extra day, so it can
// overshoot the exact calendar span by a day or two. Results depend on it;
// keep it as is.
func horizonDays(years int) int {
	return 365*years + years/4 + 1
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month-1]
}

// day is a calendar position advanced one day at a time.
type day struct {
	year  int
	month int // 1-12
	dom   int // 1-based day of month
}

func startDay() day {
	return day{year: anchorYear, month: 1, dom: 1}
}

func (d day) isMonthEnd() bool {
	return d.dom == daysInMonth(d.year, d.month)
}

func (d day) isYearEnd() bool {
	return d.month == 12 && d.dom == 31
}

// simYear is the 1-indexed simulation year, capped at years.
func (d day) simYear(years int) int {
	y := d.year - anchorYear + 1
	if y > years {
		return years
	}
	return y
}

func (d *day) next() {
	if !d.isMonthEnd() {
		d.dom++
		return
	}
	d.dom = 1
	if d.month < 12 {
		d.month++
		return
	}
	d.month = 1
	d.year++
}
