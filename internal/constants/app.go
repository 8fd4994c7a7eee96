package constants

const (
	AppBookstore = "bookstore"

	AudienceUser = "bookstore-user"

	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
