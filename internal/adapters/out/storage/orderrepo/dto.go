// Package orderrepo stores Order aggregates in three tables:
//
//	order_ids      insertion order of every package id, backs the order list
//	orders         current state, one row per package
//	order_history  one row per status change, linked to its outbox event
package orderrepo

import (
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// OrderIDDTO keeps the insertion order of every package ever created.
type OrderIDDTO struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement"`
	PackageID uint64 `gorm:"uniqueIndex;not null"`
}

func (OrderIDDTO) TableName() string {
	return "order_ids"
}

// OrderDTO is the current state of an order. Times are stored as sent by the client.
type OrderDTO struct {
	PackageID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Sender    string `gorm:"not null"`
	Recipient string `gorm:"not null"`
	// DispatchTime and DeliveryTime are client unix seconds.
	DispatchTime int64 `gorm:"not null"`
	DeliveryTime int64 `gorm:"not null"`
	// Status is the numeric order.Status code.
	Status int `gorm:"not null"`
	// LastChangedAt is unix microseconds of the latest history entry.
	LastChangedAt int64 `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO is one status change. EventID links the row to the outbox
// event that produced it.
type HistoryEntryDTO struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	EventID   string `gorm:"size:36;uniqueIndex;not null"`
	PackageID uint64 `gorm:"index;not null"`
	Status    int    `gorm:"not null"`
	Note      string `gorm:"not null"`
	// UpdatedTime is unix microseconds.
	UpdatedTime int64 `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain maps an aggregate to its orders row. Pending events are mapped
// separately by historyFromEvent.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		PackageID:     aggregate.PackageID().Uint64(),
		Sender:        aggregate.Sender(),
		Recipient:     aggregate.Recipient(),
		DispatchTime:  aggregate.DispatchTime(),
		DeliveryTime:  aggregate.DeliveryTime(),
		Status:        int(aggregate.Status()),
		LastChangedAt: aggregate.UpdatedAt().UnixMicro(),
	}
}

func historyFromEvent(event order.Event) HistoryEntryDTO {
	entry := event.Entry()
	return HistoryEntryDTO{
		EventID:     event.ID().String(),
		PackageID:   entry.PackageID().Uint64(),
		Status:      int(entry.Status()),
		Note:        entry.Note(),
		UpdatedTime: entry.UpdatedTime().UnixMicro(),
	}
}

// toDomain restores an aggregate without events.
func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(
		kernel.PackageID(dto.PackageID),
		dto.Sender,
		dto.Recipient,
		dto.DispatchTime,
		dto.DeliveryTime,
		order.Status(dto.Status),
		time.UnixMicro(dto.LastChangedAt).UTC(),
	)
}
