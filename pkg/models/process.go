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

package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProcessRecord is one stored process-test result. The identity is assigned
// by the store on insert and never changes; the DUT serial number is the
// uniqueness boundary for creates.
type ProcessRecord struct {
	ID    bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DUT   ProcessDUT    `bson:"DUT" json:"DUT"`
	Steps []ProcessStep `bson:"Steps" json:"Steps"`
}

// ProcessDUT describes the device under test for the process family. Field
// names mirror the documents written by the test equipment.
type ProcessDUT struct {
	SerialNr    string    `bson:"serial_nr" json:"serial_nr"`
	TypeID      int       `bson:"type_id" json:"type_id"`
	CountryCode string    `bson:"country_code" json:"country_code"`
	SystemType  int       `bson:"system_type" json:"system_type"`
	Track       *int      `bson:"track_nr,omitempty" json:"track_nr,omitempty"`
	Press       *int      `bson:"ps01_press_nr,omitempty" json:"ps01_press_nr,omitempty"`
	WpcNumber   *int      `bson:"wpc_number,omitempty" json:"wpc_number,omitempty"`
	WpcHeight   *int      `bson:"wpc_height,omitempty" json:"wpc_height,omitempty"`
	Line        string    `bson:"machine_id" json:"machine_id"`
	Pass        bool      `bson:"pass" json:"pass"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ProcessStep is one step of a process test, owned by its parent record.
type ProcessStep struct {
	Stepname     string               `bson:"stepname" json:"stepname"`
	UnitX        string               `bson:"unitx" json:"unitx"`
	UnitY        string               `bson:"unity" json:"unity"`
	Measurements []ProcessMeasurement `bson:"Measurements" json:"Measurements"`
}

// ProcessMeasurement is a single timestamped scalar measurement.
type ProcessMeasurement struct {
	TimeStamp string `bson:"Date" json:"Date"`
	Value     string `bson:"MeasurementValue" json:"MeasurementValue"`
}

// RecordID returns the store-assigned identity.
func (r *ProcessRecord) RecordID() bson.ObjectID { return r.ID }

// SetRecordID stamps the store-assigned identity onto the record.
func (r *ProcessRecord) SetRecordID(id bson.ObjectID) { r.ID = id }

// Serial returns the natural key of the record.
func (r *ProcessRecord) Serial() string { return r.DUT.SerialNr }

// DeviceType returns the device-type identifier used to key notification
// groups. Process type ids are numeric in the source documents.
func (r *ProcessRecord) DeviceType() string { return strconv.Itoa(r.DUT.TypeID) }
