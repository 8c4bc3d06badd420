package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION = 10 * time.Second

	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"

	DefaultPageSize uint = 10
	MaxPageSize     uint = 100

	JWT_TYPE_ACCESS  = "access"
	JWT_TYPE_REFRESH = "refresh"
)
