package model

// Operation log levels.
const (
	OpLogLevelInfo  = 0
	OpLogLevelError = 1
)

// Business types for operation logs.
const (
	BusinessTypeAuth = 1
	BusinessTypeUser = 2
)

// OpLog is one operation log record, written by the op-log worker.
type OpLog struct {
	ID            int    `json:"id"`
	Level         int    `json:"level"`
	BusinessType  int    `json:"business_type"`
	RequestMethod string `json:"request_method"`
	OperName      string `json:"oper_name"`
	OperURL       string `json:"oper_url"`
	OperIP        string `json:"oper_ip"`
	OperTime      int64  `json:"oper_time"` // unix millis
	ErrorDetail   string `json:"error_detail,omitempty"`
}

// OpLogQuery carries the optional filters of the paged op-log listing.
type OpLogQuery struct {
	Page          int    `json:"page"`
	PerPage       int    `json:"per_page"`
	Level         *int   `json:"level"`
	BusinessType  *int   `json:"business_type"`
	RequestMethod string `json:"request_method"`
	OperName      string `json:"oper_name"`
	OperURL       string `json:"oper_url"`
	OperIP        string `json:"oper_ip"`
}
