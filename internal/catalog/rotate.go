package catalog

// Rotate returns items rotated left by dayOfYear mod len(items), so the
// featured list starts at a different product each day.
func Rotate[T any](items []T, dayOfYear int) []T {
	n := len(items)
	out := make([]T, 0, n)
	if n == 0 {
		return out
	}
	k := dayOfYear % n
	if k < 0 {
		k += n
	}
	out = append(out, items[k:]...)
	return append(out, items[:k]...)
}
