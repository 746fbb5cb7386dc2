package profile

// Window returns the range [from, to) of a list of total entries that is
// visible in a viewport of height rows scrolled to pos.
//
// The scroll position is clamped so that the viewport never extends past
// the last entry, and is 0 whenever every entry fits.
func Window(total, height, pos int) (from, to int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}

	if total <= height {
		return 0, total
	}

	from = min(max(pos, 0), total-height)

	return from, from + height
}
