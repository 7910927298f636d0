package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-entry-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestCreateShipment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cargo-shipment", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 42, "shipment_number": "SHP-42", "branch_id": 2}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", testLogger())
	record, err := client.Create(context.Background(), models.CreateShipmentRequest{
		OriginPortID:      5,
		DestinationPortID: 8,
		BranchID:          2,
		CreatedByID:       9,
		CargoIDs:          []int{3, 4},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), record.ID)
	assert.Equal(t, "SHP-42", record.ShipmentNumber)
}

func TestCreateShipmentErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{
			"message": "The given data was invalid.",
			"errors": {
				"origin_port_id": ["The origin port field is required."],
				"created_on": "The created on field must be a date."
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Create(context.Background(), models.CreateShipmentRequest{})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.Status)
	assert.Equal(t, []string{"The origin port field is required."}, reqErr.FieldErrors["origin_port_id"])
	assert.Equal(t, []string{"The created on field must be a date."}, reqErr.FieldErrors["created_on"])
	// field details are always folded into the single renderable message
	assert.Contains(t, reqErr.Message, "The given data was invalid.")
	assert.Contains(t, reqErr.Message, "origin_port_id: The origin port field is required.")
	assert.Contains(t, reqErr.Message, "created_on: The created on field must be a date.")
}

func TestCreateShipmentNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	_, err := client.Create(context.Background(), models.CreateShipmentRequest{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "upstream unavailable", reqErr.Message)
}

func TestListShipmentsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cargo-shipments", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("shipment_status_id"))
		assert.Equal(t, "2", r.URL.Query().Get("branch_id"))
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("date_from"))

		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	records, err := client.List(context.Background(), models.ListShipmentsFilters{
		StatusID: 3,
		BranchID: 2,
		DateFrom: "2026-08-01",
	})

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cargo-shipment/7", r.URL.Path)
		w.Write([]byte(`{"id": 7, "shipment_number": "SHP-7"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	record, err := client.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
}

func TestMarkCargoEndpoints(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	require.NoError(t, client.MarkCargoIn(context.Background(), "12", nil))
	require.NoError(t, client.MarkCargoOut(context.Background(), float64(12), nil))

	assert.Equal(t, []string{"/cargo-shipment/12/mark-in", "/cargo-shipment/12/mark-not"}, paths)
}

// An invalid cargo id fails locally, before any request is made.
func TestMarkCargoInvalidIDFailsFast(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())

	for _, bad := range []interface{}{"abc", "", "0", "-3", "1.5", nil} {
		err := client.MarkCargoIn(context.Background(), bad, nil)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr, "cargo id %v should fail locally", bad)
		assert.Contains(t, validationErr.FieldErrors, "cargo_id")
	}
	assert.Equal(t, 0, requests)
}

func TestListParties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parties", r.URL.Path)
		w.Write([]byte(`[{"name": "Acme", "customer_type_id": 1}, {"name": "Beta", "customer_type_id": 2}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", testLogger())
	records, err := client.ListParties(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Acme", records[0]["name"])
}
