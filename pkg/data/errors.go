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

package data

import (
	"fmt"

	"github.com/onyxlabs/onyx/pkg/db"
)

// ConflictError reports a create rejected because a record with the same
// serial number already exists. The offending serial travels with the
// error so callers can name it.
type ConflictError struct {
	Serial string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unit %s already exists", e.Serial)
}

// Unwrap lets errors.Is match the store-level duplicate-key sentinel.
func (e *ConflictError) Unwrap() error {
	return db.ErrDuplicateKey
}
