package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthtrack/treatment-tracker/model"
)

func TestCreate_ReturnsPersistedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/treatments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.TreatmentInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Treatment{
			ID:            7,
			PatientName:   in.PatientName,
			TreatmentType: in.TreatmentType,
			TreatmentDate: in.TreatmentDate,
			Notes:         in.Notes,
		})
	}))
	defer srv.Close()

	created, err := New(srv.URL).Create(model.TreatmentInput{
		PatientName:   "John Doe",
		TreatmentType: "Physiotherapy",
		TreatmentDate: "2025-09-21",
		Notes:         "ok",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.Equal(t, "John Doe", created.PatientName)
}

func TestCreate_ValidationErrorCarriesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "Validation failed",
			"errors": []string{"Patient name is required", "Treatment date is required"},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Create(model.TreatmentInput{})
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, []string{"Patient name is required", "Treatment date is required"}, apiErr.Fields)
}

func TestList_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]model.Treatment{
			{ID: 2, PatientName: "Bob", TreatmentType: "Ultrasound", TreatmentDate: "2025-06-01"},
			{ID: 1, PatientName: "Alice", TreatmentType: "Physiotherapy", TreatmentDate: "2025-01-01"},
		})
	}))
	defer srv.Close()

	treatments, err := New(srv.URL).List()
	assert.NoError(t, err)
	assert.Len(t, treatments, 2)
	assert.Equal(t, uint(2), treatments[0].ID)
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/treatments/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Treatment not found"})
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(42)
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Treatment not found", apiErr.Message)
}

func TestTransportFailureNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := New(srv.URL).List()
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, ConnectivityMessage, apiErr.Message)
	assert.Empty(t, apiErr.Fields)
}

func TestUndecodableErrorBodyGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>bang</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).List()
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, "request failed with status 500", apiErr.Message)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).Health())
}

func TestAPIError_ErrorIncludesFields(t *testing.T) {
	err := &APIError{
		Message: "Validation failed",
		Fields:  []string{"Patient name is required"},
	}
	assert.Equal(t, "Validation failed: Patient name is required", err.Error())

	bare := &APIError{Message: "Treatment not found"}
	assert.Equal(t, "Treatment not found", bare.Error())
}
