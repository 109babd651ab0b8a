// Package filter normalizes raw task-listing query parameters into a
// model.TaskFilter. Parsing never fails: listing is a read path and a
// mistyped page number degrades to a default instead of a 400.
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func Parse(query url.Values, principal *auth.Principal) model.TaskFilter {
	f := model.TaskFilter{
		Page:      parsePage(query.Get("page")),
		PageSize:  parsePageSize(query.Get("limit")),
		Search:    strings.TrimSpace(query.Get("search")),
		Statuses:  parseStatuses(query.Get("statuses")),
		SortBy:    parseSortKey(query.Get("sortBy")),
		SortOrder: parseSortOrder(query.Get("sortOrder")),
	}

	// myTasks is ignored for anonymous callers rather than rejected.
	if query.Get("myTasks") == "true" && principal != nil {
		id := principal.ID
		f.OwnedOrAssignedTo = &id
	}

	return f
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil {
		return defaultPageSize
	}
	if size < 1 {
		return 1
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func parseStatuses(raw string) []model.TaskStatus {
	if raw == "" {
		return nil
	}
	var statuses []model.TaskStatus
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		statuses = append(statuses, model.TaskStatus(token))
	}
	return statuses
}

// parseSortKey allow-lists the sortable columns so raw input never
// reaches an ORDER BY.
func parseSortKey(raw string) model.SortKey {
	switch model.SortKey(raw) {
	case model.SortByTitle:
		return model.SortByTitle
	case model.SortByStatus:
		return model.SortByStatus
	default:
		return model.SortByCreatedAt
	}
}

func parseSortOrder(raw string) model.SortOrder {
	if raw == "asc" {
		return model.SortAsc
	}
	return model.SortDesc
}
