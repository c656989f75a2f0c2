// Package outboxrepo implements the transactional outbox in the ledger_events
// table.
package outboxrepo

import (
	"time"

	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
)

// EventDTO is an outbox row. Seq gives the relay a stable order that matches
// commit order.
type EventDTO struct {
	Seq         uint64 `gorm:"primaryKey;autoIncrement"`
	EventID     string `gorm:"size:36;uniqueIndex;not null"`
	Kind        string `gorm:"size:32;not null"`
	PackageID   uint64 `gorm:"not null"`
	Status      int    `gorm:"not null"`
	Note        string `gorm:"not null"`
	UpdatedTime int64  `gorm:"not null"`
	// PublishedAt is unix microseconds, nil until relayed.
	PublishedAt *int64 `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "ledger_events"
}

func fromDomain(event order.Event) EventDTO {
	entry := event.Entry()
	return EventDTO{
		EventID:     event.ID().String(),
		Kind:        string(event.Kind()),
		PackageID:   entry.PackageID().Uint64(),
		Status:      int(entry.Status()),
		Note:        entry.Note(),
		UpdatedTime: entry.UpdatedTime().UnixMicro(),
	}
}

func toDomain(dto EventDTO) (order.Event, error) {
	id, err := kernel.UUIDFromString(dto.EventID)
	if err != nil {
		return order.Event{}, err
	}

	entry, err := order.NewHistoryEntry(
		kernel.PackageID(dto.PackageID),
		order.Status(dto.Status),
		dto.Note,
		time.UnixMicro(dto.UpdatedTime),
	)
	if err != nil {
		return order.Event{}, err
	}

	return order.RestoreEvent(id, order.EventKind(dto.Kind), entry)
}
