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

import "errors"

var (
	// ErrNotFound reports a lookup, update, or delete that matched no
	// document. It is a business-level miss, not an infrastructure fault.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey reports an insert rejected by the store's unique
	// index. The store enforces uniqueness atomically; callers never
	// pre-check.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidQuery reports malformed query parameters. It is returned
	// before any store access.
	ErrInvalidQuery = errors.New("invalid query parameters")
)
