// internal/repository/mongodb/db.go
package mongodb

const (
	CollectionEmployees = "employees"
	CollectionLeads     = "leads"
	CollectionAdmins    = "admins"
)
