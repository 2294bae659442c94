// Package tracker derives the order-status timeline shown to customers and
// issues the single status transition a customer may trigger.
package tracker

import (
	"strings"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

// Milestone is one fixed point of the delivery timeline.
type Milestone struct {
	Index int
	Name  string
}

var (
	Confirmed      = Milestone{Index: 0, Name: "Confirmed"}
	Preparing      = Milestone{Index: 1, Name: "Preparing"}
	OutForDelivery = Milestone{Index: 2, Name: "Out for Delivery"}
	Shipping       = Milestone{Index: 3, Name: "Shipping"}
	Delivered      = Milestone{Index: 4, Name: "Delivered"}
)

// Milestones lists the timeline in order.
var Milestones = []Milestone{Confirmed, Preparing, OutForDelivery, Shipping, Delivered}

// Preparing has no status of its own; it is only ever completed because a
// later milestone was reached.
var stepByStatus = map[entity.Status]int{
	entity.StatusNewOrder:       Confirmed.Index,
	entity.StatusOutForDelivery: OutForDelivery.Index,
	entity.StatusShipping:       Shipping.Index,
	entity.StatusDelivered:      Delivered.Index,
}

// StepIndexFor maps a raw status onto the current milestone index.
// Unknown, missing and cancelled statuses resolve to Confirmed.
func StepIndexFor(status string) int {
	s, ok := entity.NormalizeStatus(status)
	if !ok {
		return Confirmed.Index
	}
	if idx, ok := stepByStatus[s]; ok {
		return idx
	}
	return Confirmed.Index
}

// Step is a milestone with its completion flag for one order.
type Step struct {
	Milestone
	Completed bool
}

// Steps marks every milestone up to and including the current one as completed.
func Steps(status string) []Step {
	current := StepIndexFor(status)
	steps := make([]Step, len(Milestones))
	for i, m := range Milestones {
		steps[i] = Step{Milestone: m, Completed: m.Index <= current}
	}
	return steps
}

// Timeline is the derived status view of an order.
type Timeline struct {
	OrderID      string
	Status       string
	CurrentIndex int
	Steps        []Step
	Cancelled    bool
}

// NewTimeline derives the timeline for o from its current status.
func NewTimeline(o entity.Order) Timeline {
	s, _ := entity.NormalizeStatus(o.Status)
	return Timeline{
		OrderID:      o.ID,
		Status:       strings.TrimSpace(o.Status),
		CurrentIndex: StepIndexFor(o.Status),
		Steps:        Steps(o.Status),
		Cancelled:    s == entity.StatusCancelled,
	}
}
