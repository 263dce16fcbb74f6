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
	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

// Field paths inside the stored documents. Each family has its own serial
// and timestamp spelling, inherited from the equipment's output format.
const (
	processSerialField  = "DUT.serial_nr"
	processTimeField    = "DUT.created_at"
	acousticSerialField = "DUT.serialnr"
	acousticTimeField   = "DUT.duttime"
)

// ProcessRepository is the repository for the process record family.
type ProcessRepository = Repository[models.ProcessRecord, *models.ProcessRecord]

// AcousticRepository is the repository for the acoustic record family.
type AcousticRepository = Repository[models.AcousticRecord, *models.AcousticRecord]

// NewProcessRepository builds the process-family repository on top of the
// given store. notifier may be nil when live updates are not wired.
func NewProcessRepository(store Store[models.ProcessRecord], notifier Notifier, log logger.Logger) *ProcessRepository {
	queries := db.QueryBuilder{
		DefaultSortField: processSerialField,
		TimestampField:   processTimeField,
	}

	return newRepository[models.ProcessRecord, *models.ProcessRecord](
		store, queries, processSerialField, notifier, log.WithComponent("process-data"))
}

// NewAcousticRepository builds the acoustic-family repository on top of the
// given store. notifier may be nil when live updates are not wired.
func NewAcousticRepository(store Store[models.AcousticRecord], notifier Notifier, log logger.Logger) *AcousticRepository {
	queries := db.QueryBuilder{
		DefaultSortField: acousticSerialField,
		TimestampField:   acousticTimeField,
	}

	return newRepository[models.AcousticRecord, *models.AcousticRecord](
		store, queries, acousticSerialField, notifier, log.WithComponent("acoustic-data"))
}
