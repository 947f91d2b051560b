package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticIDLayout(t *testing.T) {
	ids := NewStaticIDs(10)

	// Owner accounts start at 2; key 1 is reserved for the real admin
	assert.Equal(t, uint(2), ids.UserID(1))
	assert.Equal(t, uint(1), ids.CustomerID(1))

	// Customer 7 always owns head-office branch 42
	assert.Equal(t, uint(7), ids.CustomerID(7))
	assert.Equal(t, uint(42), ids.PusatBranchID(ids.CustomerID(7)))
}

func TestStaticIDListsFollowDemoIndexOrder(t *testing.T) {
	ids := NewStaticIDs(3)

	assert.Equal(t, []uint{1, 2, 3}, ids.CustomerIDs())
	assert.Equal(t, []uint{2, 3, 4}, ids.UserIDs())
	assert.Equal(t, 3, ids.Count())
}

func TestStaticIDsMinimumCount(t *testing.T) {
	ids := NewStaticIDs(0)
	assert.Equal(t, 1, ids.Count())
}
