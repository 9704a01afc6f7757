package events

// TotalPages computes the page count for a filtered set. Even an empty set
// has one (empty) page so the pager always has something to render.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces a page index into [0, TotalPages(count, pageSize)-1].
// Callers must re-clamp (or reset to 0) whenever the filtered count
// changes so a stale out-of-range page is never shown.
func ClampPage(pageIndex, count, pageSize int) int {
	if pageIndex < 0 {
		return 0
	}
	if max := TotalPages(count, pageSize) - 1; pageIndex > max {
		return max
	}
	return pageIndex
}

// Paginate slices one page out of the filtered, sorted set.
func Paginate(evs []SecurityEvent, pageIndex, pageSize int) ([]SecurityEvent, int) {
	total := TotalPages(len(evs), pageSize)
	pageIndex = ClampPage(pageIndex, len(evs), pageSize)
	start := pageIndex * pageSize
	if start >= len(evs) {
		return []SecurityEvent{}, total
	}
	end := start + pageSize
	if end > len(evs) {
		end = len(evs)
	}
	return evs[start:end], total
}
