package queries

import (
	"time"

	"workshop/internal/core/domain/model/order"
)

// OrderSummary is one line of a listing.
type OrderSummary struct {
	ID         int64                 `json:"id"`
	Number     string                `json:"number"`
	Status     string                `json:"status"`
	Service    order.ServiceCategory `json:"service"`
	ClientName string                `json:"clientName"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// OrderDetail is the full administrator view of an order.
type OrderDetail struct {
	OrderSummary

	UserID            int64      `json:"userId"`
	Description       string     `json:"description,omitempty"`
	PhotoRef          string     `json:"photoRef,omitempty"`
	ClientPhone       string     `json:"clientPhone,omitempty"`
	AcceptedAt        *time.Time `json:"acceptedAt,omitempty"`
	IssuedAt          *time.Time `json:"issuedAt,omitempty"`
	ReadyDate         string     `json:"readyDate,omitempty"`
	MasterComment     string     `json:"masterComment,omitempty"`
	ClientReminded    bool       `json:"clientReminded"`
	FeedbackRequested bool       `json:"feedbackRequested"`
	ClientOrderCount  int64      `json:"clientOrderCount"`
	RegularClient     bool       `json:"regularClient"`
	AllowedTargets    []string   `json:"allowedTargets"`
}

// RegularClientThreshold is the order count from which a client is regular.
const RegularClientThreshold = 2

func toSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:         o.ID(),
		Number:     o.Number(),
		Status:     o.Status().String(),
		Service:    o.Service(),
		ClientName: o.ClientName(),
		CreatedAt:  o.CreatedAt(),
	}
}

func toSummaries(orders []*order.Order) []OrderSummary {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toSummary(o))
	}
	return summaries
}

func toDetail(o *order.Order, clientOrders int64) OrderDetail {
	targets := o.Status().AllowedTargets()
	allowed := make([]string, 0, len(targets))
	for _, s := range targets {
		allowed = append(allowed, s.String())
	}

	return OrderDetail{
		OrderSummary:      toSummary(o),
		UserID:            o.UserID(),
		Description:       o.Description(),
		PhotoRef:          o.PhotoRef(),
		ClientPhone:       o.ClientPhone(),
		AcceptedAt:        o.AcceptedAt(),
		IssuedAt:          o.IssuedAt(),
		ReadyDate:         o.ReadyDate(),
		MasterComment:     o.MasterComment(),
		ClientReminded:    o.ClientReminded(),
		FeedbackRequested: o.FeedbackRequested(),
		ClientOrderCount:  clientOrders,
		RegularClient:     clientOrders >= RegularClientThreshold,
		AllowedTargets:    allowed,
	}
}
