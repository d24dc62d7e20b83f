// Package orderrepo maps order aggregates to the orders table and implements
// the order repository on top of GORM.
package orderrepo

import (
	"time"

	"workshop/internal/core/domain/model/order"
)

// OrderDTO is the row layout of the orders table. Status is stored by name so
// rows stay readable from psql and survive reordering of the enum.
type OrderDTO struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	UserID int64  `gorm:"not null;index"`
	Status string `gorm:"type:varchar(16);not null;index"`

	Service     string `gorm:"type:varchar(32);not null"`
	Description string `gorm:"type:text"`
	PhotoRef    string `gorm:"type:varchar(255)"`
	ClientName  string `gorm:"type:varchar(255);not null"`
	ClientPhone string `gorm:"type:varchar(64)"`

	CreatedAt  time.Time `gorm:"not null;index"`
	AcceptedAt *time.Time
	IssuedAt   *time.Time

	ReadyDate     string `gorm:"type:varchar(100)"`
	MasterComment string `gorm:"type:text"`

	ClientReminded    bool `gorm:"not null;default:false"`
	LastReminderDate  *time.Time
	FeedbackRequested bool `gorm:"not null;default:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:                s.ID,
		UserID:            s.UserID,
		Status:            s.Status.String(),
		Service:           string(s.Service),
		Description:       s.Description,
		PhotoRef:          s.PhotoRef,
		ClientName:        s.ClientName,
		ClientPhone:       s.ClientPhone,
		CreatedAt:         s.CreatedAt,
		AcceptedAt:        s.AcceptedAt,
		IssuedAt:          s.IssuedAt,
		ReadyDate:         s.ReadyDate,
		MasterComment:     s.MasterComment,
		ClientReminded:    s.ClientReminded,
		LastReminderDate:  s.LastReminderDate,
		FeedbackRequested: s.FeedbackRequested,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                dto.ID,
		UserID:            dto.UserID,
		Status:            status,
		Service:           order.ServiceCategory(dto.Service),
		Description:       dto.Description,
		PhotoRef:          dto.PhotoRef,
		ClientName:        dto.ClientName,
		ClientPhone:       dto.ClientPhone,
		CreatedAt:         dto.CreatedAt,
		AcceptedAt:        dto.AcceptedAt,
		IssuedAt:          dto.IssuedAt,
		ReadyDate:         dto.ReadyDate,
		MasterComment:     dto.MasterComment,
		ClientReminded:    dto.ClientReminded,
		LastReminderDate:  dto.LastReminderDate,
		FeedbackRequested: dto.FeedbackRequested,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
