package consts

const (
	ApplicationName = "ecodrip-server"
	Version         = "1.0.0"
)

// Keys set on the gin context by the JWT middleware.
const (
	ContextUserID = "id"
	ContextEmail  = "email"
	ContextAdmin  = "admin"
)
