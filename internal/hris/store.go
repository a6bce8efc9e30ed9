// internal/hris/store.go
package hris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
)

// ErrInsufficientBalance is returned by ApplyLeave when the requested days
// exceed the available balance for the leave category.
type ErrInsufficientBalance struct {
	LeaveType string
	Requested int
	Available int
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %d, available %d",
		e.LeaveType, e.Requested, e.Available)
}

// leaveTypeOrder fixes the display order of categories in balance summaries.
var leaveTypeOrder = []string{"casual_leave", "sick_leave", "earned_leave", "privilege_leave"}

// Store is an in-memory employee system of record. Profiles and balances are
// provisioned lazily per email from a default template, so every requester
// gets a working record without prior onboarding.
//
// All methods are safe for concurrent use. ApplyLeave performs its
// check-and-debit under a single lock acquisition, so two applications for
// the same employee can never both succeed against one remaining balance.
type Store struct {
	mu        sync.Mutex
	employees map[string]*EmployeeProfile
	balances  map[string]map[string]*LeaveBalance
	requests  []LeaveRequest
}

// NewStore returns an empty store; records materialize on first access.
func NewStore() *Store {
	return &Store{
		employees: make(map[string]*EmployeeProfile),
		balances:  make(map[string]map[string]*LeaveBalance),
	}
}

func defaultProfile() EmployeeProfile {
	return EmployeeProfile{
		EmployeeID:    "EMP001",
		Name:          "John Doe",
		Email:         "john.doe@drreddy.com",
		Department:    "Research & Development",
		Designation:   "Senior Scientist",
		DateOfJoining: "2020-03-15",
		Manager:       "Dr. Sarah Smith",
		Location:      "Hyderabad",
		BankAccount: BankAccount{
			BankName:      "HDFC Bank",
			AccountNumber: "XXXX5678",
			IFSC:          "HDFC0001234",
		},
		Salary: Salary{
			Basic:            75000,
			HRA:              30000,
			SpecialAllowance: 25000,
			PFContribution:   9000,
			ProfessionalTax:  200,
			IncomeTax:        15000,
			Gross:            130000,
			Net:              105800,
		},
	}
}

func defaultBalances() map[string]*LeaveBalance {
	return map[string]*LeaveBalance{
		"casual_leave":    {Total: 12, Used: 3, Available: 9},
		"sick_leave":      {Total: 12, Used: 2, Available: 10},
		"earned_leave":    {Total: 15, Used: 5, Available: 10},
		"privilege_leave": {Total: 3, Used: 0, Available: 3},
	}
}

// employeeID derives a stable employee number from the email address, so the
// same requester always sees the same ID across restarts.
func employeeID(email string) string {
	h := fnv.New32a()
	h.Write([]byte(email))
	return fmt.Sprintf("EMP%04d", h.Sum32()%10000)
}

// getOrCreateLocked materializes the record for email. Caller holds s.mu.
func (s *Store) getOrCreateLocked(email, name string) *EmployeeProfile {
	if emp, ok := s.employees[email]; ok {
		return emp
	}
	p := defaultProfile()
	p.Email = email
	p.EmployeeID = employeeID(email)
	if name != "" {
		p.Name = name
	}
	s.employees[email] = &p
	s.balances[email] = defaultBalances()
	return &p
}

// GetOrCreate returns the profile for email, provisioning it from the
// default template on first access. The returned value is a copy.
func (s *Store) GetOrCreate(email, name string) EmployeeProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreateLocked(email, name)
}

// Balances returns a snapshot of all leave balances for email, keyed by
// leave type, in no particular order. Use LeaveTypes for display ordering.
func (s *Store) Balances(email string) map[string]LeaveBalance {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(email, "")
	out := make(map[string]LeaveBalance, len(s.balances[email]))
	for k, v := range s.balances[email] {
		out[k] = *v
	}
	return out
}

// Balance returns the balance for one leave category.
func (s *Store) Balance(email, leaveType string) (LeaveBalance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(email, "")
	b, ok := s.balances[email][leaveType]
	if !ok {
		return LeaveBalance{}, false
	}
	return *b, true
}

// LeaveTypes returns the known leave categories in display order.
func LeaveTypes() []string {
	out := make([]string, len(leaveTypeOrder))
	copy(out, leaveTypeOrder)
	return out
}

// ResolveLeaveType maps a free-text leave type mention to a balance key.
// "casual" and "casual_leave" both resolve to casual_leave; unrecognized
// mentions report ok=false so callers can fall back explicitly.
func ResolveLeaveType(raw string) (string, bool) {
	key := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(raw)), " ", "_")
	for _, known := range leaveTypeOrder {
		if key == known || key+"_leave" == known {
			return known, true
		}
	}
	return "", false
}

// ApplyLeave debits days from the employee's balance and records the
// request. The balance check and debit happen atomically; on success the
// remaining available balance is returned. An *ErrInsufficientBalance is
// returned, and nothing is recorded, when the balance cannot cover the
// request.
func (s *Store) ApplyLeave(email string, leaveType string, days int, req LeaveRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp := s.getOrCreateLocked(email, req.EmployeeName)
	bal, ok := s.balances[email][leaveType]
	if !ok {
		// Unknown categories are treated as the common case rather than
		// rejected, matching helpdesk behavior for vague requests.
		bal = s.balances[email]["casual_leave"]
		leaveType = "casual_leave"
	}

	if bal.Available < days {
		return bal.Available, &ErrInsufficientBalance{
			LeaveType: leaveType,
			Requested: days,
			Available: bal.Available,
		}
	}

	bal.Used += days
	bal.Available -= days

	req.EmployeeID = emp.EmployeeID
	if req.EmployeeName == "" {
		req.EmployeeName = emp.Name
	}
	req.LeaveType = leaveType
	req.Days = days
	s.requests = append(s.requests, req)

	return bal.Available, nil
}

// Requests returns a snapshot of all recorded leave requests.
func (s *Store) Requests() []LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LeaveRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
