package directory

import "time"

// Seeded returns the demo organization used by the reporting views.
func Seeded() *Directory {
	d := New()

	d.AddDepartment(Department{ID: "dep-producao", Name: "Produção", Company: "Acme Industrial", ManagerID: "emp-carla"})
	d.AddDepartment(Department{ID: "dep-qualidade", Name: "Qualidade", Company: "Acme Industrial", ManagerID: "emp-marcos"})
	d.AddDepartment(Department{ID: "dep-logistica", Name: "Logística", Company: "Acme Industrial", ParentID: "dep-producao", ManagerID: "emp-carla"})

	d.AddPosition(Position{ID: "pos-diretor", Title: "Diretor Industrial", Level: 1, DepartmentID: "dep-producao"})
	d.AddPosition(Position{ID: "pos-supervisor", Title: "Supervisor de Produção", Level: 2, DepartmentID: "dep-producao"})
	d.AddPosition(Position{ID: "pos-auditor", Title: "Auditor 5S", Level: 3, DepartmentID: "dep-qualidade"})
	d.AddPosition(Position{ID: "pos-operador", Title: "Operador", Level: 4, DepartmentID: "dep-producao"})

	hire := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

	d.AddEmployee(Employee{ID: "emp-carla", Name: "Carla Mendes", Email: "carla@acme.com", DepartmentID: "dep-producao", PositionID: "pos-diretor", Role: "admin", Company: "Acme Industrial", Status: StatusActive, HireDate: hire(2018, time.March)})
	d.AddEmployee(Employee{ID: "emp-marcos", Name: "Marcos Rocha", Email: "marcos@acme.com", DepartmentID: "dep-qualidade", PositionID: "pos-auditor", ManagerID: "emp-carla", Role: "auditor", Company: "Acme Industrial", Status: StatusActive, HireDate: hire(2020, time.July)})
	d.AddEmployee(Employee{ID: "emp-ana", Name: "Ana Silva", Email: "ana@acme.com", DepartmentID: "dep-qualidade", PositionID: "pos-auditor", ManagerID: "emp-marcos", Role: "auditor", Company: "Acme Industrial", Status: StatusActive, HireDate: hire(2022, time.January)})
	d.AddEmployee(Employee{ID: "emp-joao", Name: "João Pereira", Email: "joao@acme.com", DepartmentID: "dep-producao", PositionID: "pos-supervisor", ManagerID: "emp-carla", Role: "manager", Company: "Acme Industrial", Status: StatusActive, HireDate: hire(2019, time.October)})
	d.AddEmployee(Employee{ID: "emp-rita", Name: "Rita Costa", Email: "rita@acme.com", DepartmentID: "dep-logistica", PositionID: "pos-operador", ManagerID: "emp-joao", Role: "viewer", Company: "Acme Industrial", Status: StatusInactive, HireDate: hire(2021, time.May)})
	d.AddEmployee(Employee{ID: "emp-luis", Name: "Luís Andrade", Email: "luis@acme.com", DepartmentID: "dep-producao", PositionID: "pos-operador", ManagerID: "emp-joao", Role: "viewer", Company: "Acme Industrial", Status: StatusPending, HireDate: hire(2024, time.February)})

	return d
}
