// Package directory holds the organizational sub-model: departments,
// positions, and employees with manager/subordinate relations. It only feeds
// charts and reports; no persistence or scoring logic touches it.
package directory

import (
	"errors"
	"sync"
	"time"
)

// Department groups employees, optionally under a parent department.
type Department struct {
	ID          string
	Name        string
	Company     string
	ParentID    string
	Description string
	ManagerID   string
	CreatedAt   time.Time
}

// Position is a job title at a hierarchy level within a department.
type Position struct {
	ID           string
	Title        string
	Level        int
	DepartmentID string
	Description  string
}

// EmployeeStatus is the employment state.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
	StatusPending  EmployeeStatus = "pending"
)

// Employee is a directory member. ManagerID points at another employee.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	DepartmentID string
	PositionID   string
	ManagerID    string
	Role         string
	Company      string
	Status       EmployeeStatus
	HireDate     time.Time
}

// Report aggregates directory head-counts for the reporting views.
type Report struct {
	TotalEmployees        int
	ActiveEmployees       int
	DepartmentCount       int
	PositionCount         int
	EmployeesByDepartment map[string]int
	EmployeesByPosition   map[string]int
	EmployeesByRole       map[string]int
	EmployeesByStatus     map[string]int
}

var ErrNotFound = errors.New("directory: not found")

// Directory is an in-memory organizational chart with in-process concurrency
// safety. Lookups return copies.
type Directory struct {
	mu          sync.RWMutex
	departments map[string]Department
	positions   map[string]Position
	employees   map[string]Employee
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		departments: make(map[string]Department),
		positions:   make(map[string]Position),
		employees:   make(map[string]Employee),
	}
}

// AddDepartment registers or replaces a department.
func (d *Directory) AddDepartment(dep Department) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.departments[dep.ID] = dep
}

// AddPosition registers or replaces a position.
func (d *Directory) AddPosition(p Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.positions[p.ID] = p
}

// AddEmployee registers or replaces an employee.
func (d *Directory) AddEmployee(e Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[e.ID] = e
}

// Employee looks an employee up by id.
func (d *Directory) Employee(id string) (Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.employees[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

// DirectReports returns the employees whose manager is the given employee.
func (d *Directory) DirectReports(managerID string) []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Employee
	for _, e := range d.employees {
		if e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	return out
}

// ManagerChain walks from the employee up to the top of the hierarchy.
// Cycles terminate the walk instead of looping.
func (d *Directory) ManagerChain(employeeID string) []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var chain []Employee
	seen := map[string]struct{}{employeeID: {}}
	current, ok := d.employees[employeeID]
	for ok && current.ManagerID != "" {
		manager, found := d.employees[current.ManagerID]
		if !found {
			break
		}
		if _, cycle := seen[manager.ID]; cycle {
			break
		}
		seen[manager.ID] = struct{}{}
		chain = append(chain, manager)
		current = manager
	}
	return chain
}

// Members returns the employees of a department.
func (d *Directory) Members(departmentID string) []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Employee
	for _, e := range d.employees {
		if e.DepartmentID == departmentID {
			out = append(out, e)
		}
	}
	return out
}

// BuildReport computes the head-count aggregation over the current contents.
func (d *Directory) BuildReport() Report {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r := Report{
		TotalEmployees:        len(d.employees),
		DepartmentCount:       len(d.departments),
		PositionCount:         len(d.positions),
		EmployeesByDepartment: make(map[string]int),
		EmployeesByPosition:   make(map[string]int),
		EmployeesByRole:       make(map[string]int),
		EmployeesByStatus:     make(map[string]int),
	}
	for _, e := range d.employees {
		if e.Status == StatusActive {
			r.ActiveEmployees++
		}
		r.EmployeesByDepartment[e.DepartmentID]++
		r.EmployeesByPosition[e.PositionID]++
		r.EmployeesByRole[e.Role]++
		r.EmployeesByStatus[string(e.Status)]++
	}
	return r
}
