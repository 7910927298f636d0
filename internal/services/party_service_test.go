package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cargo-entry-service/internal/party"
	"cargo-entry-service/internal/repository"
)

type mockPartyGateway struct {
	mock.Mock
}

func (m *mockPartyGateway) ListParties(ctx context.Context) ([]party.Record, error) {
	args := m.Called(ctx)
	if recs := args.Get(0); recs != nil {
		return recs.([]party.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func testParties() []party.Record {
	return []party.Record{
		{"name": "Acme Traders", "customer_type_id": float64(1), "address": "12 Harbor Rd", "phone": "0771234567"},
		{"name": "Beta Imports", "customer_type_id": float64(2)},
		{"name": "Alice Exports", "type": "sender"},
		{"name": "Unclassified Ltd"},
	}
}

func newPartyTestService(gw PartyGateway) *PartyService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewPartyService(gw, repository.NewReferenceCache(nil), 10*time.Millisecond, logger)
}

func TestListByRoleFiltersClientSide(t *testing.T) {
	gw := &mockPartyGateway{}
	gw.On("ListParties", mock.Anything).Return(testParties(), nil)
	svc := newPartyTestService(gw)
	defer svc.Close()

	senders, err := svc.ListByRole(context.Background(), party.RoleSender)
	require.NoError(t, err)
	require.Len(t, senders, 2)
	assert.Equal(t, "Acme Traders", senders[0]["name"])
	assert.Equal(t, "Alice Exports", senders[1]["name"])

	receivers, err := svc.ListByRole(context.Background(), party.RoleReceiver)
	require.NoError(t, err)
	require.Len(t, receivers, 1)
	assert.Equal(t, "Beta Imports", receivers[0]["name"])
}

func TestDisplayResolvesPanelFields(t *testing.T) {
	svc := newPartyTestService(&mockPartyGateway{})
	defer svc.Close()

	display := svc.Display(party.Record{
		"name":             "Acme Traders",
		"customer_type_id": float64(1),
		"address":          "12 Harbor Rd",
		"contact":          map[string]interface{}{"mobile": "0779999999"},
	})

	assert.Equal(t, "Acme Traders", display.Label)
	assert.Equal(t, "12 Harbor Rd", display.Address)
	assert.Equal(t, "0779999999", display.Phone)
	assert.Equal(t, "sender", display.Role)
}

func TestSearchFiltersByLabel(t *testing.T) {
	gw := &mockPartyGateway{}
	gw.On("ListParties", mock.Anything).Return(testParties(), nil)
	svc := newPartyTestService(gw)
	defer svc.Close()

	results := make(chan []party.Record, 1)
	svc.Search(context.Background(), "alice", party.RoleSender, func(records []party.Record, err error) {
		require.NoError(t, err)
		results <- records
	})

	select {
	case records := <-results:
		require.Len(t, records, 1)
		assert.Equal(t, "Alice Exports", records[0]["name"])
	case <-time.After(time.Second):
		t.Fatal("search result not applied")
	}
}

func TestSearchBurstAppliesOnlyFinalTerm(t *testing.T) {
	gw := &mockPartyGateway{}
	gw.On("ListParties", mock.Anything).Return(testParties(), nil)
	svc := newPartyTestService(gw)
	defer svc.Close()

	results := make(chan []party.Record, 2)
	apply := func(records []party.Record, err error) {
		require.NoError(t, err)
		results <- records
	}

	svc.Search(context.Background(), "ac", party.RoleSender, apply)
	svc.Search(context.Background(), "alice", party.RoleSender, apply)

	select {
	case records := <-results:
		require.Len(t, records, 1)
		assert.Equal(t, "Alice Exports", records[0]["name"])
	case <-time.After(time.Second):
		t.Fatal("search result not applied")
	}

	select {
	case records := <-results:
		t.Fatalf("superseded search applied: %v", records)
	case <-time.After(100 * time.Millisecond):
	}
}
