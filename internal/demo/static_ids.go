package demo

// StaticIDs is the fixed identity map: every statically-keyed fixture
// entity gets the exact same primary key on every run, so foreign keys
// in exported fixtures stay byte-identical.
//
// Layout for demo index i (1-based):
//
//	owner user ID  = i + 1  (ID 1 is reserved for the real admin)
//	customer ID    = i
//	pusat branch   = i * 6  (leaves room for 5 auto-keyed cabang
//	                         branches between consecutive head offices)
//
// Cabang branches, employees, memberships and invoices carry no static
// key requirement and accept auto-increment keys.
type StaticIDs struct {
	count int
}

// NewStaticIDs builds the identity map for count demo customers
func NewStaticIDs(count int) *StaticIDs {
	if count < 1 {
		count = 1
	}
	return &StaticIDs{count: count}
}

// Count returns the number of demo customers in the map
func (s *StaticIDs) Count() int {
	return s.count
}

// UserID returns the forced owner-account key for demo index (1-based)
func (s *StaticIDs) UserID(index int) uint {
	return uint(index + 1)
}

// CustomerID returns the forced customer key for demo index (1-based)
func (s *StaticIDs) CustomerID(index int) uint {
	return uint(index)
}

// PusatBranchID returns the forced head-office branch key for the
// given customer key
func (s *StaticIDs) PusatBranchID(customerID uint) uint {
	return customerID * 6
}

// CustomerIDs returns all forced customer keys in demo-index order
func (s *StaticIDs) CustomerIDs() []uint {
	ids := make([]uint, s.count)
	for i := 1; i <= s.count; i++ {
		ids[i-1] = s.CustomerID(i)
	}
	return ids
}

// UserIDs returns all forced owner-account keys in demo-index order
func (s *StaticIDs) UserIDs() []uint {
	ids := make([]uint, s.count)
	for i := 1; i <= s.count; i++ {
		ids[i-1] = s.UserID(i)
	}
	return ids
}
