package utils

import (
	"net/http"
	"strconv"
)

// Page is page-number pagination driven by the `page` and `limit` query
// parameters.
type Page struct {
	Number int
	Limit  int
}

func ParsePage(r *http.Request, defaultLimit, maxLimit int) Page {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Page{Number: page, Limit: limit}
}

func (p Page) Skip() int64 {
	return int64((p.Number - 1) * p.Limit)
}

func (p Page) Limit64() int64 {
	return int64(p.Limit)
}

func (p Page) pageURL(r *http.Request, number int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()

	u.Host = r.Host
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	return u.String()
}

// Envelope wraps results in the {count,next,previous,results} shape.
func (p Page) Envelope(r *http.Request, count int64, results interface{}) M {
	var next, previous interface{}
	if int64(p.Number*p.Limit) < count {
		next = p.pageURL(r, p.Number+1)
	}
	if p.Number > 1 {
		previous = p.pageURL(r, p.Number-1)
	}
	return M{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}
