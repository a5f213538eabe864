package dev

import "strconv"

// Display is the character display capability used by Readout. The
// hd44780i2c driver satisfies it directly.
type Display interface {
	SetCursor(col, row uint8) error
	Print(data []byte) error
}

// Column width reserved for the whole-millisecond part of a travel time.
const travelWholeDigits = 3

// Readout renders measurements on a small character display: both per-sensor
// exposures on row 0, opening and closing curtain travel on row 1.
type Readout struct {
	disp  Display
	width uint8
}

func NewReadout(d Display, width uint8) *Readout {
	return &Readout{disp: d, width: width}
}

func (r *Readout) Show(m Measurement) error {
	err := r.writeRow(0,
		FormatExposure(roundUS(m.Exposure1US)),
		FormatExposure(roundUS(m.Exposure2US)))
	if err != nil {
		return err
	}
	return r.writeRow(1,
		FormatTravel(roundUS(m.TravelOpenUS)),
		FormatTravel(roundUS(m.TravelCloseUS)))
}

// writeRow blanks the row, then writes left at column 0 and right flush
// against the last column. Blanking first keeps the row clean when the
// previous content was wider.
func (r *Readout) writeRow(row uint8, left, right string) error {
	if err := r.clearRow(row); err != nil {
		return err
	}
	if err := r.disp.SetCursor(0, row); err != nil {
		return err
	}
	if err := r.disp.Print([]byte(left)); err != nil {
		return err
	}
	col := int(r.width) - len(right)
	if col < 0 {
		col = 0
	}
	if err := r.disp.SetCursor(uint8(col), row); err != nil {
		return err
	}
	return r.disp.Print([]byte(right))
}

func (r *Readout) clearRow(row uint8) error {
	if err := r.disp.SetCursor(0, row); err != nil {
		return err
	}
	blank := make([]byte, r.width)
	for i := range blank {
		blank[i] = ' '
	}
	return r.disp.Print(blank)
}

// FormatExposure renders an exposure the way shutter speeds are quoted:
// reciprocal seconds below one second, whole milliseconds at or above.
func FormatExposure(us uint64) string {
	if us == 0 {
		return "----"
	}
	if us < 1_000_000 {
		return "1/" + strconv.FormatUint((1_000_000+us/2)/us, 10)
	}
	return strconv.FormatUint(us/1000, 10) + "ms"
}

// FormatTravel renders a duration as milliseconds with hundredths. The whole
// part is right-aligned on its digit count so the decimal point stays in a
// fixed column. A whole part of zero is one digit wide and must not go
// through log10.
func FormatTravel(us uint64) string {
	whole := us / 1000
	hund := (us % 1000) / 10

	pad := travelWholeDigits - 1
	if whole > 0 {
		pad = travelWholeDigits - 1 - int(log10(whole))
	}

	buf := make([]byte, 0, travelWholeDigits+3)
	for ; pad > 0; pad-- {
		buf = append(buf, ' ')
	}
	buf = strconv.AppendUint(buf, whole, 10)
	buf = append(buf, '.')
	if hund < 10 {
		buf = append(buf, '0')
	}
	buf = strconv.AppendUint(buf, hund, 10)
	return string(buf)
}

func roundUS(v float64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v + 0.5)
}

// log10 calculates the integer base-10 logarithm of n: the largest x such
// that 10^x <= n.
func log10(n uint64) uint64 {
	var l uint64
	for n >= 10 {
		n /= 10
		l++
	}
	return l
}
