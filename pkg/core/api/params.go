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

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/onyxlabs/onyx/pkg/models"
)

// parseQueryParams maps the request query string onto models.QueryParams.
// Absent values fall back to the listing defaults.
func parseQueryParams(values url.Values) (*models.QueryParams, error) {
	params := models.DefaultQueryParams()

	params.FilterField = values["filterField"]
	params.FilterValue = values["filterValue"]
	params.SortBy = values.Get("sortBy")

	if v := values.Get("isAscending"); v != "" {
		asc, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid isAscending value %q", v)
		}

		params.IsAscending = asc
	}

	if v := values.Get("fromDate"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid fromDate value %q", v)
		}

		params.FromDate = &from
	}

	if v := values.Get("toDate"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("invalid toDate value %q", v)
		}

		params.ToDate = &to
	}

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page value %q", v)
		}

		params.Page = page
	}

	if v := values.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid pageSize value %q", v)
		}

		params.PageSize = size
	}

	return params, nil
}
