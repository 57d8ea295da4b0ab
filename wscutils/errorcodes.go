package wscutils

const (
	ErrcodeUnknown        = "unknown"
	ErrcodeInvalidRequest = "invalid_request"
	ErrcodeInvalidJson    = "invalid_json"
	ErrcodeMissing        = "missing"
	ErrcodeInternal       = "internal"
	ErrcodeTimeout        = "timeout"
)

// Response status values
const (
	ErrorStatus   = "error"
	SuccessStatus = "success"
)

// Message IDs used when nothing more specific has been registered.
const (
	DefaultMsgID     = 9999
	MsgIDInvalidJson = 1001
)
