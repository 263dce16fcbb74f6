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

// Package models defines the wire and storage types shared across Onyx.
package models

import "time"

const (
	// DefaultPage is the first page of a result set. Pages are 1-based.
	DefaultPage = 1

	// DefaultPageSize is the number of records returned per page when the
	// caller does not specify one.
	DefaultPageSize = 10
)

// QueryParams describes a single list query: conjunctive equality filters,
// an optional date range on the record's creation timestamp, sorting, and
// pagination. A QueryParams value is built once per request and consumed
// once by the query builder.
type QueryParams struct {
	// FilterField and FilterValue are parallel: FilterValue[i] is the
	// required value of the field named by FilterField[i]. All pairs are
	// combined with AND.
	FilterField []string `json:"filterField,omitempty"`
	FilterValue []string `json:"filterValue,omitempty"`

	// SortBy names the field to sort on. Empty means the family's
	// natural-key field, ascending.
	SortBy      string `json:"sortBy,omitempty"`
	IsAscending bool   `json:"isAscending"`

	// FromDate and ToDate bound the creation timestamp. The range is only
	// applied when both are present.
	FromDate *time.Time `json:"fromDate,omitempty"`
	ToDate   *time.Time `json:"toDate,omitempty"`

	// Page is 1-based.
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DefaultQueryParams returns query parameters for the first page with
// default sizing and natural-key ordering.
func DefaultQueryParams() *QueryParams {
	return &QueryParams{
		IsAscending: true,
		Page:        DefaultPage,
		PageSize:    DefaultPageSize,
	}
}
