package pagination

// Page is a normalized page/limit pair (page is 1-based).
type Page struct {
	Page  int
	Limit int
}

// Window is a normalized skip/limit pair.
type Window struct {
	Skip  int
	Limit int
}

// NormalizePage applies defaults and caps to a page/limit request.
// maxLimit <= 0 disables the cap.
func NormalizePage(page int, limit int, defaultLimit int, maxLimit int) Page {
	if page <= 0 {
		page = 1
	}
	return Page{Page: page, Limit: clampLimit(limit, defaultLimit, maxLimit)}
}

// NormalizeWindow applies defaults and caps to a skip/limit request.
func NormalizeWindow(skip int, limit int, defaultLimit int, maxLimit int) Window {
	if skip < 0 {
		skip = 0
	}
	return Window{Skip: skip, Limit: clampLimit(limit, defaultLimit, maxLimit)}
}

// Offset returns the number of rows to skip for the page.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window converts the page into the equivalent skip/limit pair.
func (p Page) Window() Window {
	return Window{Skip: p.Offset(), Limit: p.Limit}
}

// TotalPages is ceil(total/limit). Zero matches yield zero pages.
func TotalPages(total int, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Bounds returns the [start,end) slice bounds of the window over total items.
func (w Window) Bounds(total int) (int, int) {
	start := w.Skip
	if start < 0 {
		start = 0
	}
	if start >= total {
		return total, total
	}
	end := total
	if w.Limit > 0 && start+w.Limit < total {
		end = start + w.Limit
	}
	return start, end
}

func clampLimit(limit int, defaultLimit int, maxLimit int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
