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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/onyxlabs/onyx/pkg/models"
)

func testBuilder() QueryBuilder {
	return QueryBuilder{
		DefaultSortField: "DUT.serial_nr",
		TimestampField:   "DUT.created_at",
	}
}

func TestQueryBuilderDefaults(t *testing.T) {
	qb := testBuilder()

	built, err := qb.Build(models.DefaultQueryParams())
	require.NoError(t, err)

	assert.Equal(t, bson.D{}, built.Filter)
	assert.Equal(t, bson.D{{Key: "DUT.serial_nr", Value: 1}}, built.Sort)
	assert.Equal(t, int64(0), built.Skip)
	assert.Equal(t, int64(models.DefaultPageSize), built.Limit)
}

func TestQueryBuilderNilParams(t *testing.T) {
	qb := testBuilder()

	built, err := qb.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, bson.D{}, built.Filter)
	assert.Equal(t, int64(0), built.Skip)
}

func TestQueryBuilderFilters(t *testing.T) {
	qb := testBuilder()

	tests := []struct {
		name     string
		params   *models.QueryParams
		expected bson.D
	}{
		{
			name: "single equality predicate",
			params: &models.QueryParams{
				FilterField: []string{"DUT.type_id"},
				FilterValue: []string{"7"},
				IsAscending: true,
				Page:        1,
			},
			expected: bson.D{{Key: "DUT.type_id", Value: "7"}},
		},
		{
			name: "two predicates are conjoined",
			params: &models.QueryParams{
				FilterField: []string{"DUT.type_id", "DUT.machine_id"},
				FilterValue: []string{"7", "L1"},
				IsAscending: true,
				Page:        1,
			},
			expected: bson.D{{Key: "$and", Value: []bson.D{
				{{Key: "DUT.type_id", Value: "7"}},
				{{Key: "DUT.machine_id", Value: "L1"}},
			}}},
		},
		{
			name: "no filters",
			params: &models.QueryParams{
				IsAscending: true,
				Page:        1,
			},
			expected: bson.D{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := qb.Build(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, built.Filter)
		})
	}
}

func TestQueryBuilderDateRange(t *testing.T) {
	qb := testBuilder()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("both bounds applied as closed range", func(t *testing.T) {
		built, err := qb.Build(&models.QueryParams{
			FromDate:    &from,
			ToDate:      &to,
			IsAscending: true,
			Page:        1,
		})
		require.NoError(t, err)

		expected := bson.D{{
			Key: "DUT.created_at",
			Value: bson.D{
				{Key: "$gte", Value: from},
				{Key: "$lte", Value: to},
			},
		}}
		assert.Equal(t, expected, built.Filter)
	})

	t.Run("lower bound alone is ignored", func(t *testing.T) {
		built, err := qb.Build(&models.QueryParams{
			FromDate:    &from,
			IsAscending: true,
			Page:        1,
		})
		require.NoError(t, err)
		assert.Equal(t, bson.D{}, built.Filter)
	})

	t.Run("upper bound alone is ignored", func(t *testing.T) {
		built, err := qb.Build(&models.QueryParams{
			ToDate:      &to,
			IsAscending: true,
			Page:        1,
		})
		require.NoError(t, err)
		assert.Equal(t, bson.D{}, built.Filter)
	})
}

func TestQueryBuilderSort(t *testing.T) {
	qb := testBuilder()

	tests := []struct {
		name     string
		params   *models.QueryParams
		expected bson.D
	}{
		{
			name:     "default sort is ascending natural key",
			params:   &models.QueryParams{IsAscending: true, Page: 1},
			expected: bson.D{{Key: "DUT.serial_nr", Value: 1}},
		},
		{
			name:     "explicit ascending",
			params:   &models.QueryParams{SortBy: "DUT.created_at", IsAscending: true, Page: 1},
			expected: bson.D{{Key: "DUT.created_at", Value: 1}},
		},
		{
			name:     "explicit descending",
			params:   &models.QueryParams{SortBy: "DUT.created_at", IsAscending: false, Page: 1},
			expected: bson.D{{Key: "DUT.created_at", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := qb.Build(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, built.Sort)
		})
	}
}

func TestQueryBuilderPagination(t *testing.T) {
	qb := testBuilder()

	// Three consecutive pages of 10 over 25 records must be disjoint
	// windows covering offsets 0..24.
	windows := make(map[int64]int64)

	for page := 1; page <= 3; page++ {
		built, err := qb.Build(&models.QueryParams{IsAscending: true, Page: page, PageSize: 10})
		require.NoError(t, err)

		assert.Equal(t, int64(10), built.Limit)
		windows[built.Skip] = built.Limit
	}

	assert.Equal(t, map[int64]int64{0: 10, 10: 10, 20: 10}, windows)
}

func TestQueryBuilderPageSizeFallback(t *testing.T) {
	qb := testBuilder()

	built, err := qb.Build(&models.QueryParams{IsAscending: true, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(models.DefaultPageSize), built.Limit)
	assert.Equal(t, int64(models.DefaultPageSize), built.Skip)
}

func TestQueryBuilderValidation(t *testing.T) {
	qb := testBuilder()

	tests := []struct {
		name   string
		params *models.QueryParams
	}{
		{
			name: "mismatched filter arrays",
			params: &models.QueryParams{
				FilterField: []string{"DUT.type_id", "DUT.machine_id"},
				FilterValue: []string{"7"},
				IsAscending: true,
				Page:        1,
			},
		},
		{
			name:   "zero page",
			params: &models.QueryParams{IsAscending: true, Page: 0},
		},
		{
			name:   "negative page",
			params: &models.QueryParams{IsAscending: true, Page: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := qb.Build(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.Nil(t, built)
		})
	}
}
