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
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AcousticRecord is one stored acoustic-test result.
type AcousticRecord struct {
	ID    bson.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	DUT   AcousticDUT    `bson:"DUT" json:"DUT"`
	Steps []AcousticStep `bson:"Steps" json:"Steps"`
}

// AcousticDUT describes the device under test for the acoustic family.
type AcousticDUT struct {
	Pass          bool      `bson:"dutpass" json:"dutpass"`
	DutClass      string    `bson:"dutclass" json:"dutclass"`
	TypeID        string    `bson:"typeid" json:"typeid"`
	TypeName      string    `bson:"typename" json:"typename"`
	TestSystem    string    `bson:"system" json:"system"`
	WorkOrder     string    `bson:"workorder" json:"workorder"`
	RunningNr     int       `bson:"runningnr" json:"runningnr"`
	SerialNr      string    `bson:"serialnr" json:"serialnr"`
	ExecutionTime float64   `bson:"executiontime(s)" json:"executiontime(s)"`
	DutTime       time.Time `bson:"duttime" json:"duttime"`
	NestNumber    int       `bson:"nestnumber" json:"nestnumber"`
}

// AcousticStep is one step of an acoustic test. Measurement and limit values
// are matrix shaped: one row per sweep, one column per sample point.
type AcousticStep struct {
	Stepname    string      `bson:"stepname" json:"stepname"`
	StepPass    bool        `bson:"steppass" json:"steppass"`
	UnitX       string      `bson:"unitx" json:"unitx"`
	UnitY       string      `bson:"unity" json:"unity"`
	Measurement [][]float64 `bson:"measurement" json:"measurement"`
	UpperLimit  [][]float64 `bson:"upperlimit" json:"upperlimit"`
	LowerLimit  [][]float64 `bson:"lowerlimit" json:"lowerlimit"`
}

// RecordID returns the store-assigned identity.
func (r *AcousticRecord) RecordID() bson.ObjectID { return r.ID }

// SetRecordID stamps the store-assigned identity onto the record.
func (r *AcousticRecord) SetRecordID(id bson.ObjectID) { r.ID = id }

// Serial returns the natural key of the record.
func (r *AcousticRecord) Serial() string { return r.DUT.SerialNr }

// DeviceType returns the device-type identifier used to key notification
// groups.
func (r *AcousticRecord) DeviceType() string { return r.DUT.TypeID }
