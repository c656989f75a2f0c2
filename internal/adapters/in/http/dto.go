package http

import (
	"ordertracker/internal/core/application/usecases/queries"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// NewOrder is the body of POST /api/v1/orders. Status may be omitted and then
// defaults to Dispatched.
type NewOrder struct {
	PackageID    uint64        `json:"packageId"`
	Sender       string        `json:"sender"`
	Recipient    string        `json:"recipient"`
	DispatchTime int64         `json:"dispatchTime"`
	DeliveryTime int64         `json:"deliveryTime"`
	Status       *order.Status `json:"status,omitempty"`
}

// StatusUpdate is the body of PUT /api/v1/orders/{packageId}/status.
type StatusUpdate struct {
	Status *order.Status `json:"status"`
	Note   string        `json:"note"`
}

// Order is the response of GET /api/v1/orders/{packageId}.
type Order struct {
	PackageID    uint64       `json:"packageId"`
	Sender       string       `json:"sender"`
	Recipient    string       `json:"recipient"`
	DispatchTime int64        `json:"dispatchTime"`
	DeliveryTime int64        `json:"deliveryTime"`
	Status       order.Status `json:"status"`
}

// HistoryEntry carries UpdatedTime as unix seconds.
type HistoryEntry struct {
	PackageID   uint64       `json:"packageId"`
	Status      order.Status `json:"status"`
	Note        string       `json:"note"`
	UpdatedTime int64        `json:"updatedTime"`
}

// Error is every failure body. PackageID is set when the failure concerns a
// specific order.
type Error struct {
	Code      int     `json:"code"`
	Name      string  `json:"error"`
	Message   string  `json:"message"`
	PackageID *uint64 `json:"packageId,omitempty"`
}

func toOrder(resp queries.GetOrderQueryResponse) Order {
	return Order{
		PackageID:    resp.PackageID.Uint64(),
		Sender:       resp.Sender,
		Recipient:    resp.Recipient,
		DispatchTime: resp.DispatchTime,
		DeliveryTime: resp.DeliveryTime,
		Status:       resp.Status,
	}
}

// toHistory truncates entry times to whole seconds. The full precision stays
// in storage and in published events.
func toHistory(resp []queries.GetOrderHistoryQueryResponse) []HistoryEntry {
	history := make([]HistoryEntry, len(resp))
	for i, entry := range resp {
		history[i] = HistoryEntry{
			PackageID:   entry.PackageID.Uint64(),
			Status:      entry.Status,
			Note:        entry.Note,
			UpdatedTime: entry.UpdatedTime.Unix(),
		}
	}
	return history
}

// toPackageIDs never returns nil, so an empty ledger encodes as [].
func toPackageIDs(ids []kernel.PackageID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = id.Uint64()
	}
	return out
}
