package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

func completed(steps []Step) []bool {
	out := make([]bool, len(steps))
	for i, s := range steps {
		out[i] = s.Completed
	}
	return out
}

func TestStepIndexFor(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{"New Order", 0},
		{"new order", 0},
		{"Out for Delivery", 2},
		{"SHIPPING", 3},
		{" delivered ", 4},
		{"Cancelled", 0},
		{"", 0},
		{"lost in transit", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StepIndexFor(tt.status))
		})
	}

	assert.Greater(t, StepIndexFor("Delivered"), StepIndexFor("New Order"))
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []bool{true, false, false, false, false}, completed(Steps("New Order")))
	assert.Equal(t, []bool{true, true, true, false, false}, completed(Steps("Out for Delivery")))
	assert.Equal(t, []bool{true, true, true, true, false}, completed(Steps("Shipping")))
	assert.Equal(t, []bool{true, true, true, true, true}, completed(Steps("Delivered")))
}

func TestSteps_Idempotent(t *testing.T) {
	for _, s := range []string{"New Order", "Shipping", "Delivered", "", "weird"} {
		assert.Equal(t, Steps(s), Steps(s))
	}
}

func TestSteps_PreparingOnlyDerived(t *testing.T) {
	for _, s := range []string{"New Order", "", "Cancelled"} {
		assert.False(t, Steps(s)[Preparing.Index].Completed, s)
	}
	assert.True(t, Steps("Out for Delivery")[Preparing.Index].Completed)
}

func TestNewTimeline(t *testing.T) {
	tl := NewTimeline(entity.Order{ID: "9", Status: "cancelled"})

	assert.Equal(t, "9", tl.OrderID)
	assert.True(t, tl.Cancelled)
	assert.Equal(t, 0, tl.CurrentIndex)
	assert.Len(t, tl.Steps, len(Milestones))
	assert.Equal(t, "Confirmed", tl.Steps[0].Name)
}
