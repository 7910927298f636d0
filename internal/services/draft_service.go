package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cargo-entry-service/internal/draft"
	"cargo-entry-service/internal/events"
	"cargo-entry-service/internal/gateway"
	"cargo-entry-service/internal/models"
	"cargo-entry-service/internal/payload"
)

// ErrDraftNotFound is returned for an unknown or already-discarded draft.
var ErrDraftNotFound = errors.New("draft not found")

// ShipmentGateway is the backend contract the draft service submits through.
type ShipmentGateway interface {
	Create(ctx context.Context, payload models.CreateShipmentRequest) (*models.ShipmentRecord, error)
}

var _ ShipmentGateway = (*gateway.Client)(nil)

// DraftService owns the in-memory draft sessions. Drafts live only for the
// duration of an entry workflow: created when the screen mounts, discarded
// on submit or navigation away. Mutations are reducer applications on the
// stored draft value, so totals are always a projection of the latest state.
type DraftService struct {
	mu         sync.RWMutex
	drafts     map[uuid.UUID]models.ShipmentDraft
	gateway    ShipmentGateway
	publisher  *events.Publisher
	logger     *logrus.Entry
	defaultVAT float64
}

// NewDraftService creates a draft service. publisher may be nil when events
// are disabled.
func NewDraftService(gw ShipmentGateway, publisher *events.Publisher, defaultVAT float64, logger *logrus.Logger) *DraftService {
	return &DraftService{
		drafts:     make(map[uuid.UUID]models.ShipmentDraft),
		gateway:    gw,
		publisher:  publisher,
		logger:     logger.WithField("component", "draft-service"),
		defaultVAT: defaultVAT,
	}
}

// DetailsUpdate carries header-level draft edits. Nil fields are left
// untouched.
type DetailsUpdate struct {
	SenderID            *string `json:"senderId"`
	ReceiverID          *string `json:"receiverId"`
	ShippingMethodID    *string `json:"shippingMethodId"`
	PaymentMethodID     *string `json:"paymentMethodId"`
	DeliveryTypeID      *string `json:"deliveryTypeId"`
	SpecialRemarks      *string `json:"specialRemarks"`
	CollectedByRole     *string `json:"collectedByRole"`
	CollectedByRoleID   *string `json:"collectedByRoleId"`
	CollectedByPersonID *string `json:"collectedByPersonId"`
}

// CreateDraft starts a new entry session: one box, all charge lines zeroed.
func (s *DraftService) CreateDraft() (uuid.UUID, models.DraftResponse) {
	id := uuid.New()
	d := draft.New(s.defaultVAT)

	s.mu.Lock()
	s.drafts[id] = d
	s.mu.Unlock()

	s.logger.WithField("draft_id", id).Info("Draft created")
	return id, response(id, d)
}

// Get returns the draft with freshly computed totals.
func (s *DraftService) Get(id uuid.UUID) (models.DraftResponse, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return models.DraftResponse{}, ErrDraftNotFound
	}
	return response(id, d), nil
}

// Discard drops a draft without submitting it.
func (s *DraftService) Discard(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}

// apply runs a reducer against the stored draft under the write lock and
// stores the result.
func (s *DraftService) apply(id uuid.UUID, op func(models.ShipmentDraft) (models.ShipmentDraft, error)) (models.DraftResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return models.DraftResponse{}, ErrDraftNotFound
	}
	next, err := op(d)
	if err != nil {
		return models.DraftResponse{}, err
	}
	s.drafts[id] = next
	return response(id, next), nil
}

// AddBox appends a new box to the packing manifest.
func (s *DraftService) AddBox(id uuid.UUID) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.AddBox(d), nil
	})
}

// RemoveBox removes a box; removing the last remaining box fails.
func (s *DraftService) RemoveBox(id uuid.UUID, index int) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.RemoveBox(d, index)
	})
}

// SetBoxWeight updates one box weight and resyncs the aggregate weight.
func (s *DraftService) SetBoxWeight(id uuid.UUID, index int, raw interface{}) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetBoxWeight(d, index, raw)
	})
}

// AddItem appends an empty item to a box.
func (s *DraftService) AddItem(id uuid.UUID, boxIndex int) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.AddItem(d, boxIndex)
	})
}

// RemoveItem removes an item from a box.
func (s *DraftService) RemoveItem(id uuid.UUID, boxIndex, itemIndex int) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.RemoveItem(d, boxIndex, itemIndex)
	})
}

// SetItemName sets an item's display name.
func (s *DraftService) SetItemName(id uuid.UUID, boxIndex, itemIndex int, name string) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetItemName(d, boxIndex, itemIndex, name)
	})
}

// SetItemPieces sets an item's piece count.
func (s *DraftService) SetItemPieces(id uuid.UUID, boxIndex, itemIndex int, raw interface{}) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetItemPieces(d, boxIndex, itemIndex, raw)
	})
}

// SetChargeQty sets a charge line quantity. Writes to the engine-controlled
// total_weight line are ignored.
func (s *DraftService) SetChargeQty(id uuid.UUID, key models.ChargeKey, raw interface{}) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetLineQty(d, key, raw)
	})
}

// SetChargeRate sets a charge line rate.
func (s *DraftService) SetChargeRate(id uuid.UUID, key models.ChargeKey, raw interface{}) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetLineRate(d, key, raw)
	})
}

// SetVATPercentage updates the draft VAT percentage.
func (s *DraftService) SetVATPercentage(id uuid.UUID, raw interface{}) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		return draft.SetVATPercentage(d, raw), nil
	})
}

// UpdateDetails applies header-level edits. Changing the collected-by role
// resets the selected person: a person chosen from a different role's
// candidate pool is no longer valid.
func (s *DraftService) UpdateDetails(id uuid.UUID, update DetailsUpdate) (models.DraftResponse, error) {
	return s.apply(id, func(d models.ShipmentDraft) (models.ShipmentDraft, error) {
		if update.SenderID != nil {
			d.SenderID = *update.SenderID
		}
		if update.ReceiverID != nil {
			d.ReceiverID = *update.ReceiverID
		}
		if update.ShippingMethodID != nil {
			d.ShippingMethodID = *update.ShippingMethodID
		}
		if update.PaymentMethodID != nil {
			d.PaymentMethodID = *update.PaymentMethodID
		}
		if update.DeliveryTypeID != nil {
			d.DeliveryTypeID = *update.DeliveryTypeID
		}
		if update.SpecialRemarks != nil {
			d.SpecialRemarks = *update.SpecialRemarks
		}
		if update.CollectedByRole != nil && *update.CollectedByRole != d.CollectedByRole {
			d.CollectedByRole = *update.CollectedByRole
			d.CollectedByPersonID = ""
		}
		if update.CollectedByRoleID != nil {
			d.CollectedByRoleID = *update.CollectedByRoleID
		}
		if update.CollectedByPersonID != nil {
			d.CollectedByPersonID = *update.CollectedByPersonID
		}
		return d, nil
	})
}

// Submit normalizes the draft into the creation payload, sends it through
// the gateway, publishes the lifecycle event, and discards the draft. A
// validation failure leaves the draft editable.
func (s *DraftService) Submit(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.ShipmentRecord, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDraftNotFound
	}

	input := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		input[k] = v
	}
	if _, ok := input["remarks"]; !ok && d.SpecialRemarks != "" {
		input["remarks"] = d.SpecialRemarks
	}
	if _, ok := input["shipping_method_id"]; !ok && d.ShippingMethodID != "" {
		input["shipping_method_id"] = d.ShippingMethodID
	}

	req, err := payload.BuildPayload(input)
	if err != nil {
		return nil, err
	}

	record, err := s.gateway.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	totals := draft.ComputeTotals(d)
	if s.publisher != nil {
		if err := s.publisher.PublishShipmentSubmitted(record.ID, record.ShipmentNumber, record.BranchID, totals.NetTotal); err != nil {
			s.logger.WithError(err).Warn("Failed to publish shipment submitted event")
		}
	}

	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"draft_id":    id,
		"shipment_id": record.ID,
	}).Info("Draft submitted")
	return record, nil
}

func response(id uuid.UUID, d models.ShipmentDraft) models.DraftResponse {
	return models.DraftResponse{
		DraftID: id.String(),
		Draft:   d,
		Totals:  draft.ComputeTotals(d),
	}
}
