package transport

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kkpa/jbh/internal/core/common/pagination"
)

const TotalCountHeader = "X-Total-Count"

// HeaderUtil writes the alert headers the web client turns into toasts.
type HeaderUtil struct {
	AppName string
}

func (u HeaderUtil) AlertHeader() string  { return "X-" + u.AppName + "-alert" }
func (u HeaderUtil) ErrorHeader() string  { return "X-" + u.AppName + "-error" }
func (u HeaderUtil) ParamsHeader() string { return "X-" + u.AppName + "-params" }

func (u HeaderUtil) Alert(h http.Header, message, param string) {
	h.Set(u.AlertHeader(), message)
	h.Set(u.ParamsHeader(), param)
}

func (u HeaderUtil) EntityCreationAlert(h http.Header, entity, id string) {
	u.Alert(h, u.AppName+"."+entity+".created", id)
}

func (u HeaderUtil) EntityUpdateAlert(h http.Header, entity, id string) {
	u.Alert(h, u.AppName+"."+entity+".updated", id)
}

func (u HeaderUtil) EntityDeletionAlert(h http.Header, entity, id string) {
	u.Alert(h, u.AppName+"."+entity+".deleted", id)
}

func (u HeaderUtil) FailureAlert(h http.Header, entity, errorKey string) {
	h.Set(u.ErrorHeader(), "error."+errorKey)
	h.Set(u.ParamsHeader(), entity)
}

// SetPaginationHeaders writes X-Total-Count and an RFC 5988 Link header with
// next, prev, last and first relations for page, relative to baseURL.
func SetPaginationHeaders[T any](h http.Header, page pagination.Page[T], baseURL string) {
	h.Set(TotalCountHeader, strconv.FormatInt(page.Total, 10))

	totalPages := page.TotalPages()
	var links []string
	if page.HasNext() {
		links = append(links, link(baseURL, page.Number+1, page.Size, "next"))
	}
	if page.HasPrevious() {
		links = append(links, link(baseURL, page.Number-1, page.Size, "prev"))
	}
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}
	links = append(links,
		link(baseURL, lastPage, page.Size, "last"),
		link(baseURL, 0, page.Size, "first"),
	)
	h.Set("Link", strings.Join(links, ","))
}

func link(baseURL string, page, size int, rel string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return "<" + baseURL + "?" + q.Encode() + `>; rel="` + rel + `"`
}
