package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is an offset/limit window read from the query string
type Pagination struct {
	Skip  int
	Limit int
}

// QueryParamError represents a query parameter that is not a valid integer
type QueryParamError struct {
	Param string
	Value string
}

func (e *QueryParamError) Error() string {
	return fmt.Sprintf("query parameter %q must be an integer, got %q", e.Param, e.Value)
}

// ParsePagination reads ?skip= and ?limit=, falling back to the given defaults
// when a parameter is absent
func ParsePagination(c *gin.Context, defaultSkip, defaultLimit int) (Pagination, error) {
	skip, err := intQuery(c, "skip", defaultSkip)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Skip: skip, Limit: limit}, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &QueryParamError{Param: name, Value: raw}
	}
	return value, nil
}
