package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusly/campusly/core"
)

const orderingParam = "ordering"

// Ordering binds the `ordering` query param, e.g. `?ordering=-created_at,name`.
// Blank and repeated fields are dropped; the first occurrence wins.
type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	seen := make(map[string]struct{})
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if field == "" {
			continue
		}
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}
