// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/piggybank/backend/internal/application/filter"
)

const dateLayout = "2006-01-02"

// queryUints reads a repeatable query parameter as a list of ids. Values that
// do not parse are skipped.
func queryUints(ctx *gin.Context, name string) []uint {
	values := ctx.QueryArray(name)
	if len(values) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// setList adds a list filter when at least one id was supplied.
func setList(set filter.Set, ctx *gin.Context, name string) {
	if ids := queryUints(ctx, name); len(ids) > 0 {
		set[name] = ids
	}
}

// setKeywords adds a keyword filter when at least one keyword was supplied.
func setKeywords(set filter.Set, ctx *gin.Context, name string) {
	if values := ctx.QueryArray(name); len(values) > 0 {
		set[name] = values
	}
}

// setDateBound adds an inclusive date bound filter when supplied.
func setDateBound(set filter.Set, ctx *gin.Context, name string) {
	value := ctx.Query(name)
	if value == "" {
		return
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return
	}
	set[name] = date
}

// setDecimalBound adds an inclusive decimal bound filter when supplied.
func setDecimalBound(set filter.Set, ctx *gin.Context, name string) {
	value := ctx.Query(name)
	if value == "" {
		return
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return
	}
	set[name] = d
}
