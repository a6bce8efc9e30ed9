// internal/hris/store_test.go
package hris

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateProvisionsFromTemplate(t *testing.T) {
	s := NewStore()

	emp := s.GetOrCreate("asha.rao@drreddy.com", "Asha Rao")
	assert.Equal(t, "Asha Rao", emp.Name)
	assert.Equal(t, "asha.rao@drreddy.com", emp.Email)
	assert.Equal(t, "Research & Development", emp.Department)
	assert.Equal(t, 130000, emp.Salary.Gross)
	assert.Regexp(t, `^EMP\d{4}$`, emp.EmployeeID)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := NewStore()

	first := s.GetOrCreate("asha.rao@drreddy.com", "Asha Rao")
	second := s.GetOrCreate("asha.rao@drreddy.com", "")

	assert.Equal(t, first.EmployeeID, second.EmployeeID)
	assert.Equal(t, "Asha Rao", second.Name, "provisioned name survives later lookups")
}

func TestEmployeeIDIsDeterministic(t *testing.T) {
	a := NewStore().GetOrCreate("asha.rao@drreddy.com", "")
	b := NewStore().GetOrCreate("asha.rao@drreddy.com", "")
	assert.Equal(t, a.EmployeeID, b.EmployeeID, "same email must map to the same ID across store instances")

	other := NewStore().GetOrCreate("ravi.k@drreddy.com", "")
	assert.NotEqual(t, a.EmployeeID, other.EmployeeID)
}

func TestBalancesAreIsolatedPerEmployee(t *testing.T) {
	s := NewStore()

	_, err := s.ApplyLeave("asha.rao@drreddy.com", "casual_leave", 2, LeaveRequest{ID: "LR-1"})
	require.NoError(t, err)

	asha, ok := s.Balance("asha.rao@drreddy.com", "casual_leave")
	require.True(t, ok)
	assert.Equal(t, 7, asha.Available)

	ravi, ok := s.Balance("ravi.k@drreddy.com", "casual_leave")
	require.True(t, ok)
	assert.Equal(t, 9, ravi.Available, "debiting one employee must not touch another's template clone")
}

func TestApplyLeaveDebitsAndRecords(t *testing.T) {
	s := NewStore()

	remaining, err := s.ApplyLeave("asha.rao@drreddy.com", "sick_leave", 3, LeaveRequest{
		ID:        "LR-TKT-42",
		FromDate:  "15/01/2025",
		ToDate:    "17/01/2025",
		Reason:    "fever",
		Status:    "Pending Approval",
		AppliedOn: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, remaining)

	bal, _ := s.Balance("asha.rao@drreddy.com", "sick_leave")
	assert.Equal(t, 5, bal.Used)
	assert.Equal(t, 7, bal.Available)
	assert.Equal(t, 12, bal.Total)

	reqs := s.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "LR-TKT-42", reqs[0].ID)
	assert.Equal(t, "sick_leave", reqs[0].LeaveType)
	assert.Equal(t, 3, reqs[0].Days)
}

func TestApplyLeaveInsufficientBalance(t *testing.T) {
	s := NewStore()

	avail, err := s.ApplyLeave("asha.rao@drreddy.com", "privilege_leave", 5, LeaveRequest{ID: "LR-1"})
	require.Error(t, err)
	assert.Equal(t, 3, avail)

	var insufficient *ErrInsufficientBalance
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "privilege_leave", insufficient.LeaveType)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)

	bal, _ := s.Balance("asha.rao@drreddy.com", "privilege_leave")
	assert.Equal(t, 3, bal.Available, "failed applications must not debit")
	assert.Empty(t, s.Requests())
}

func TestApplyLeaveUnknownTypeFallsBackToCasual(t *testing.T) {
	s := NewStore()

	remaining, err := s.ApplyLeave("asha.rao@drreddy.com", "compassionate_leave", 1, LeaveRequest{ID: "LR-1"})
	require.NoError(t, err)
	assert.Equal(t, 8, remaining)

	reqs := s.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "casual_leave", reqs[0].LeaveType)
}

func TestApplyLeaveConcurrentNeverOversubscribes(t *testing.T) {
	s := NewStore()
	const attempts = 50 // casual_leave starts with 9 available

	var wg sync.WaitGroup
	granted := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := s.ApplyLeave("asha.rao@drreddy.com", "casual_leave", 1,
				LeaveRequest{ID: fmt.Sprintf("LR-%d", n)}); err == nil {
				granted <- n
			}
		}(i)
	}
	wg.Wait()
	close(granted)

	count := 0
	for range granted {
		count++
	}
	assert.Equal(t, 9, count, "exactly the available balance may be granted")

	bal, _ := s.Balance("asha.rao@drreddy.com", "casual_leave")
	assert.Equal(t, 0, bal.Available)
	assert.Equal(t, 12, bal.Used)
	assert.Len(t, s.Requests(), 9)
}

func TestResolveLeaveType(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"casual", "casual_leave", true},
		{"casual_leave", "casual_leave", true},
		{"Sick", "sick_leave", true},
		{"earned leave", "earned_leave", true},
		{"privilege", "privilege_leave", true},
		{"compassionate", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ResolveLeaveType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
