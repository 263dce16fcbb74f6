/*
 * Copyright 2025 Onyx Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/onyxlabs/onyx/pkg/models"
)

// QueryBuilder translates generic query parameters into a Mongo filter,
// sort, and page window. It is a pure transformation; the same parameters
// always build the same query.
type QueryBuilder struct {
	// DefaultSortField is the natural-key field used when no sort is
	// requested. Results are then ascending by natural key.
	DefaultSortField string

	// TimestampField is the designated creation-timestamp field the date
	// range applies to.
	TimestampField string
}

// BuiltQuery is the store-native form of one list query.
type BuiltQuery struct {
	Filter bson.D
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// Build validates the parameters and produces the store-native query.
// Mismatched filter arrays and non-positive page numbers are caller errors
// reported before any store access. A date range is applied only when both
// bounds are supplied; a single bound is ignored.
func (qb QueryBuilder) Build(params *models.QueryParams) (*BuiltQuery, error) {
	if params == nil {
		params = models.DefaultQueryParams()
	}

	if len(params.FilterField) != len(params.FilterValue) {
		return nil, fmt.Errorf("%w: %d filter fields but %d filter values",
			ErrInvalidQuery, len(params.FilterField), len(params.FilterValue))
	}

	if params.Page <= 0 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, params.Page)
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	return &BuiltQuery{
		Filter: qb.buildFilter(params),
		Sort:   qb.buildSort(params),
		Skip:   int64(params.Page-1) * int64(pageSize),
		Limit:  int64(pageSize),
	}, nil
}

// buildFilter combines one equality predicate per filter pair, plus the
// date range when both bounds are present, into a single conjunction.
func (qb QueryBuilder) buildFilter(params *models.QueryParams) bson.D {
	predicates := make([]bson.D, 0, len(params.FilterField)+1)

	for i, field := range params.FilterField {
		predicates = append(predicates, bson.D{{Key: field, Value: params.FilterValue[i]}})
	}

	if params.FromDate != nil && params.ToDate != nil {
		predicates = append(predicates, bson.D{{
			Key: qb.TimestampField,
			Value: bson.D{
				{Key: "$gte", Value: *params.FromDate},
				{Key: "$lte", Value: *params.ToDate},
			},
		}})
	}

	switch len(predicates) {
	case 0:
		return bson.D{}
	case 1:
		return predicates[0]
	default:
		return bson.D{{Key: "$and", Value: predicates}}
	}
}

// buildSort returns the requested sort, or ascending natural-key order when
// none was requested. No secondary tie-break is applied; ties resolve in
// store-native order.
func (qb QueryBuilder) buildSort(params *models.QueryParams) bson.D {
	if params.SortBy == "" {
		return bson.D{{Key: qb.DefaultSortField, Value: 1}}
	}

	direction := 1
	if !params.IsAscending {
		direction = -1
	}

	return bson.D{{Key: params.SortBy, Value: direction}}
}
