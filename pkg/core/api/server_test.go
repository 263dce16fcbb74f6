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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/onyxlabs/onyx/pkg/core/auth"
	"github.com/onyxlabs/onyx/pkg/data"
	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

// fakeRecordService satisfies RecordService with canned results, recording
// the arguments it was called with.
type fakeRecordService[T any] struct {
	lastParams *models.QueryParams
	lastID     string
	lastRecord *T

	findManyResult []T
	findOneResult  *T
	createResult   *T
	updateResult   *T
	deleteResult   *T
	err            error
}

func (f *fakeRecordService[T]) FindMany(_ context.Context, params *models.QueryParams) ([]T, error) {
	f.lastParams = params
	return f.findManyResult, f.err
}

func (f *fakeRecordService[T]) FindOne(_ context.Context, idOrSerial string) (*T, error) {
	f.lastID = idOrSerial
	return f.findOneResult, f.err
}

func (f *fakeRecordService[T]) Create(_ context.Context, record *T) (*T, error) {
	f.lastRecord = record

	if f.err != nil {
		return nil, f.err
	}

	if f.createResult != nil {
		return f.createResult, nil
	}

	return record, nil
}

func (f *fakeRecordService[T]) Update(_ context.Context, idOrSerial string, record *T) (*T, error) {
	f.lastID = idOrSerial
	f.lastRecord = record

	if f.err != nil {
		return nil, f.err
	}

	if f.updateResult != nil {
		return f.updateResult, nil
	}

	return record, nil
}

func (f *fakeRecordService[T]) Delete(_ context.Context, idOrSerial string) (*T, error) {
	f.lastID = idOrSerial
	return f.deleteResult, f.err
}

func newTestServer(t *testing.T, opts ...ServerOption) *APIServer {
	t.Helper()

	return NewAPIServer(logger.NewTestLogger(), opts...)
}

func doRequest(s *APIServer, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	return rec
}

func sampleProcessRecord(serial string) models.ProcessRecord {
	return models.ProcessRecord{
		DUT: models.ProcessDUT{
			SerialNr:    serial,
			TypeID:      7,
			CountryCode: "DE",
			SystemType:  2,
			Line:        "Line4",
			Pass:        true,
			CreatedAt:   time.Date(2025, 3, 12, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestListRecordsForwardsQueryParams(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{
		findManyResult: []models.ProcessRecord{sampleProcessRecord("SN-001")},
	}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodGet,
		"/api/process-data?filterField=DUT.machine_id&filterValue=Line4&sortBy=DUT.created_at&isAscending=false&page=2&pageSize=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastParams)
	assert.Equal(t, []string{"DUT.machine_id"}, svc.lastParams.FilterField)
	assert.Equal(t, []string{"Line4"}, svc.lastParams.FilterValue)
	assert.Equal(t, "DUT.created_at", svc.lastParams.SortBy)
	assert.False(t, svc.lastParams.IsAscending)
	assert.Equal(t, 2, svc.lastParams.Page)
	assert.Equal(t, 5, svc.lastParams.PageSize)

	var records []models.ProcessRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "SN-001", records[0].DUT.SerialNr)
}

func TestListRecordsRejectsMalformedParams(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodGet, "/api/process-data?page=abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.lastParams)
}

func TestGetRecordByIdentifier(t *testing.T) {
	record := sampleProcessRecord("SN-042")
	svc := &fakeRecordService[models.ProcessRecord]{findOneResult: &record}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodGet, "/api/process-data/SN-042", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SN-042", svc.lastID)
}

func TestGetMissingRecordReturns404(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{err: db.ErrNotFound}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodGet, "/api/process-data/SN-404", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Unit [SN-404] does not exist.", resp.Message)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestCreateRecordReturns201(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{}
	server := newTestServer(t, WithProcessService(svc))

	body, err := json.Marshal(sampleProcessRecord("SN-100"))
	require.NoError(t, err)

	rec := doRequest(server, http.MethodPost, "/api/process-data", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.lastRecord)
	assert.Equal(t, "SN-100", svc.lastRecord.DUT.SerialNr)
}

func TestCreateDuplicateReturns409(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{err: &data.ConflictError{Serial: "SN-100"}}
	server := newTestServer(t, WithProcessService(svc))

	body, err := json.Marshal(sampleProcessRecord("SN-100"))
	require.NoError(t, err)

	rec := doRequest(server, http.MethodPost, "/api/process-data", body)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Message, "SN-100")
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodPost, "/api/process-data", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.lastRecord)
}

func TestUpdateRecord(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{}
	server := newTestServer(t, WithProcessService(svc))

	id := bson.NewObjectID().Hex()
	body, err := json.Marshal(sampleProcessRecord("SN-100"))
	require.NoError(t, err)

	rec := doRequest(server, http.MethodPut, "/api/process-data/"+id, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.lastID)
}

func TestDeleteRecordReturnsDeletedDocument(t *testing.T) {
	record := sampleProcessRecord("SN-007")
	svc := &fakeRecordService[models.ProcessRecord]{deleteResult: &record}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodDelete, "/api/process-data/SN-007", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SN-007", svc.lastID)

	var got models.ProcessRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "SN-007", got.DUT.SerialNr)
}

func TestAcousticRoutesAreRegistered(t *testing.T) {
	svc := &fakeRecordService[models.AcousticRecord]{
		findManyResult: []models.AcousticRecord{},
	}
	server := newTestServer(t, WithAcousticService(svc))

	rec := doRequest(server, http.MethodGet, "/api/acoustic-data", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastParams)
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	svc := &fakeRecordService[models.ProcessRecord]{err: fmt.Errorf("connection reset")}
	server := newTestServer(t, WithProcessService(svc))

	rec := doRequest(server, http.MethodGet, "/api/process-data", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestLoginEndpoint(t *testing.T) {
	authSvc := auth.NewService(auth.Config{
		Enabled:   true,
		JWTSecret: "test-secret",
		Users: []models.User{
			{Username: "operator", Password: "s3cret", Roles: []string{auth.RoleReader}},
		},
	}, logger.NewTestLogger())

	svc := &fakeRecordService[models.ProcessRecord]{findManyResult: []models.ProcessRecord{}}
	server := newTestServer(t, WithProcessService(svc), WithAuthService(authSvc))

	body, err := json.Marshal(models.LoginRequest{Username: "operator", Password: "s3cret"})
	require.NoError(t, err)

	rec := doRequest(server, http.MethodPost, "/auth/login", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var token models.Token
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&token))
	require.NotEmpty(t, token.AccessToken)

	// Requests without the token are refused once auth is on.
	rec = doRequest(server, http.MethodGet, "/api/process-data", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/process-data", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	out := httptest.NewRecorder()
	server.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	// Readers may not mutate.
	recordBody, err := json.Marshal(sampleProcessRecord("SN-001"))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/process-data", bytes.NewReader(recordBody))
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	out = httptest.NewRecorder()
	server.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusForbidden, out.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	authSvc := auth.NewService(auth.Config{
		Enabled:   true,
		JWTSecret: "test-secret",
		Users: []models.User{
			{Username: "operator", Password: "s3cret", Roles: []string{auth.RoleReader}},
		},
	}, logger.NewTestLogger())

	server := newTestServer(t, WithAuthService(authSvc))

	body, err := json.Marshal(models.LoginRequest{Username: "operator", Password: "wrong"})
	require.NoError(t, err)

	rec := doRequest(server, http.MethodPost, "/auth/login", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
