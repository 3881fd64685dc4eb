package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "слот занят"}, body)
}

func TestRespondJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathAndQueryParsing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/shops/7?teamMemberId=3&date=2024-01-15&bad=x", nil)
	r = mux.SetURLVars(r, map[string]string{"shopId": "7", "zero": "0"})

	id, err := PathID(r, "shopId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = PathID(r, "zero")
	assert.Error(t, err)

	member, err := QueryID(r, "teamMemberId")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *member)

	missing, err := QueryID(r, "serviceId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryID(r, "bad")
	assert.Error(t, err)

	date, err := QueryDate(r, "date")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", date)

	_, err = QueryDate(r, "from")
	assert.Error(t, err)
}
