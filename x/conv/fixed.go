package conv

// Quarters formats a signed quarter-unit count as a decimal with two fraction
// digits, e.g. -447 -> "-111.75", 0 -> "0.00", -2 -> "-0.50".
// buf should be length >= 24. No allocations; no fmt/strconv dependency.
func Quarters(buf []byte, q int64) []byte {
	if len(buf) < 4 {
		return buf[:0]
	}
	neg := q < 0
	if neg {
		q = -q
	}
	whole := q / 4
	frac := (q % 4) * 25 // 0, 25, 50, 75

	// Fraction and dot first (fixed width), then the integer part.
	i := len(buf)
	i--
	buf[i] = byte('0' + frac%10)
	i--
	buf[i] = byte('0' + frac/10)
	i--
	buf[i] = '.'

	digits := Itoa(buf[:i], whole)
	start := i - len(digits)
	if neg {
		if start == 0 {
			return buf[:0] // buffer too small
		}
		start--
		buf[start] = '-'
	}
	return buf[start:]
}
