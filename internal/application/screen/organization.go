package screen

import (
	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/domain/organization"
	"github.com/erp/ausyexpo/internal/domain/shared"
)

func toggleSuccess[T any](singular string, active func(T) bool) func(*T, string) string {
	return func(current *T, _ string) string {
		if current == nil {
			return singular + " status updated successfully"
		}
		if active(*current) {
			return singular + " deactivated successfully"
		}
		return singular + " activated successfully"
	}
}

func branchesConfig() Config[organization.Branch, *organization.BranchForm] {
	type B = organization.Branch
	return Config[B, *organization.BranchForm]{
		Key:        "branches",
		Title:      "Branches",
		Label:      listing.Label{Singular: "Branch", Plural: "branches"},
		Collection: "branches",
		Schema: &listing.Schema[B]{
			Search: []listing.SearchField[B]{
				{Name: "name", Value: func(b B) string { return b.Name }},
				{Name: "address", Value: func(b B) string { return b.Address }},
				{Name: "manager", Value: func(b B) string { return b.Manager }},
			},
			Filters: []listing.FilterDef[B]{
				{Key: "status", Kind: listing.FilterEnum, Options: organization.ActivityStatuses, Match: listing.EqualMatch(B.Status)},
			},
		},
		Columns: []Column[B]{
			idColumn[B](),
			text("NAME", func(b B) string { return b.Name }),
			text("ADDRESS", func(b B) string { return b.Address }),
			text("PHONE", func(b B) string { return b.Phone }),
			text("EMAIL", func(b B) string { return b.Email }),
			text("MANAGER", func(b B) string { return b.Manager }),
			text("STATUS", func(b B) string { return activeLabel(b.IsActive) }),
		},
		NewForm: organization.NewBranchForm,
		Actions: []Action[B]{{
			Name:    "toggle-status",
			Help:    "Activate or deactivate a branch",
			Build:   func(string) shared.Transition { return organization.ToggleBranchStatus() },
			Success: toggleSuccess("Branch", func(b B) bool { return b.IsActive }),
			Failure: "Failed to toggle branch status",
		}},
	}
}

func usersConfig() Config[organization.User, *organization.UserForm] {
	type U = organization.User
	return Config[U, *organization.UserForm]{
		Key:        "users",
		Title:      "Users",
		Label:      listing.Label{Singular: "User", Plural: "users"},
		Collection: "users",
		Schema: &listing.Schema[U]{
			Search: []listing.SearchField[U]{
				{Name: "firstName", Value: func(u U) string { return u.FirstName }},
				{Name: "lastName", Value: func(u U) string { return u.LastName }},
				{Name: "email", Value: func(u U) string { return u.Email }},
				{Name: "phone", Value: func(u U) string { return u.Phone }},
			},
			Filters: []listing.FilterDef[U]{
				{Key: "role", Kind: listing.FilterEnum, Options: organization.Roles, Match: listing.EqualMatch(func(u U) string { return u.Role })},
			},
		},
		Columns: []Column[U]{
			idColumn[U](),
			text("NAME", U.FullName),
			text("EMAIL", func(u U) string { return u.Email }),
			text("PHONE", func(u U) string { return u.Phone }),
			text("ROLE", func(u U) string { return u.Role }),
			{Header: "BRANCH", Value: func(u U, refs *Refs) string {
				if u.BranchID == nil {
					return ""
				}
				return refs.Branches.Name(*u.BranchID, listing.Unknown)
			}},
			text("STATUS", func(u U) string { return activeLabel(u.IsActive) }),
		},
		References: []string{RefBranches},
		RefFields:  map[string]string{"branchId": RefBranches},
		NewForm:    organization.NewUserForm,
		Actions: []Action[U]{{
			Name:    "toggle-status",
			Help:    "Activate or deactivate a user account",
			Build:   func(string) shared.Transition { return organization.ToggleUserStatus() },
			Success: toggleSuccess("User", func(u U) bool { return u.IsActive }),
			Failure: "Failed to toggle user status",
		}},
	}
}

func employeesConfig() Config[organization.Employee, *organization.EmployeeForm] {
	type E = organization.Employee
	return Config[E, *organization.EmployeeForm]{
		Key:        "employees",
		Title:      "Employees",
		Label:      listing.Label{Singular: "Employee", Plural: "employees"},
		Collection: "employees",
		Schema: &listing.Schema[E]{
			Search: []listing.SearchField[E]{
				{Name: "firstName", Value: func(e E) string { return e.FirstName }},
				{Name: "lastName", Value: func(e E) string { return e.LastName }},
				{Name: "contactInformation", Value: func(e E) string { return e.ContactInformation }},
			},
			Filters: []listing.FilterDef[E]{
				{Key: "department", Kind: listing.FilterRef, Match: listing.RefMatch(func(e E) int64 { return shared.RefID(e.Department) })},
			},
		},
		Columns: []Column[E]{
			idColumn[E](),
			text("NAME", E.FullName),
			text("GENDER", func(e E) string { return e.Gender }),
			text("DATE OF BIRTH", func(e E) string { return date(e.DateOfBirth) }),
			text("CONTACT", func(e E) string { return e.ContactInformation }),
			{Header: "DEPARTMENT", Value: func(e E, refs *Refs) string {
				return Name(refs.Departments, e.Department, organization.NoDepartment)
			}},
		},
		References: []string{RefDepartments},
		RefFields:  map[string]string{"departmentId": RefDepartments},
		NewForm:    organization.NewEmployeeForm,
	}
}

func departmentsConfig() Config[organization.Department, *organization.DepartmentForm] {
	type D = organization.Department
	return Config[D, *organization.DepartmentForm]{
		Key:        "departments",
		Title:      "Departments",
		Label:      listing.Label{Singular: "Department", Plural: "departments"},
		Collection: "departments",
		Schema: &listing.Schema[D]{
			Search: []listing.SearchField[D]{
				{Name: "name", Value: func(d D) string { return d.Name }},
				{Name: "description", Value: func(d D) string { return d.Description }},
			},
			Filters: []listing.FilterDef[D]{
				{Key: "branch", Kind: listing.FilterRef, Match: listing.RefMatch(func(d D) int64 { return shared.RefID(d.Branch) })},
			},
		},
		Columns: []Column[D]{
			idColumn[D](),
			text("NAME", func(d D) string { return d.Name }),
			{Header: "BRANCH", Value: func(d D, refs *Refs) string { return Name(refs.Branches, d.Branch, listing.Unknown) }},
			text("BUDGET", func(d D) string { return money(d.Budget) }),
			text("DESCRIPTION", func(d D) string { return d.Description }),
		},
		References: []string{RefBranches},
		RefFields:  map[string]string{"branchId": RefBranches},
		NewForm:    organization.NewDepartmentForm,
	}
}
