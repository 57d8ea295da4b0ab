// Package wscutils provides the standard request and response envelope of
// a web service, along with helpers that turn validation failures into
// envelope error messages.
package wscutils

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Request represents the standard structure of a request to the web service.
type Request struct {
	Ver  int `json:"ver"`
	Data any `json:"data" binding:"required"`
}

// Response represents the standard structure of a response of the web service.
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Messages []ErrorMessage `json:"messages"`
}

// ErrorMessage defines the format of error part of the standard response object.
// Clients render a message template selected by MsgID, filling it with Vals.
type ErrorMessage struct {
	MsgID   int      `json:"msgid"`
	ErrCode string   `json:"errcode"`
	Field   string   `json:"field,omitempty"`
	Vals    []string `json:"vals,omitempty"`
}

var (
	mu                  sync.RWMutex
	validationTagMsgID  = map[string]int{}
	validationTagCode   = map[string]string{}
	defaultMsgID        = DefaultMsgID
	defaultErrCode      = ErrcodeUnknown
	msgIDInvalidJSON    = MsgIDInvalidJson
	errCodeInvalidJSON  = ErrcodeInvalidJson
	validate            = validator.New()
	validatorCustomized sync.Once
)

// SetValidationTagToMsgIDMap sets the message ID returned for each validator tag.
func SetValidationTagToMsgIDMap(m map[string]int) {
	mu.Lock()
	defer mu.Unlock()
	validationTagMsgID = m
}

// SetValidationTagToErrCodeMap sets the error code returned for each validator tag.
func SetValidationTagToErrCodeMap(m map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	validationTagCode = m
}

// SetDefaultMsgID sets the message ID used for tags missing from the map.
func SetDefaultMsgID(id int) {
	mu.Lock()
	defer mu.Unlock()
	defaultMsgID = id
}

// SetDefaultErrCode sets the error code used for tags missing from the map.
func SetDefaultErrCode(code string) {
	mu.Lock()
	defer mu.Unlock()
	defaultErrCode = code
}

// SetMsgIDInvalidJSON sets the message ID sent when a request body cannot be bound.
func SetMsgIDInvalidJSON(id int) {
	mu.Lock()
	defer mu.Unlock()
	msgIDInvalidJSON = id
}

// SetErrCodeInvalidJSON sets the error code sent when a request body cannot be bound.
func SetErrCodeInvalidJSON(code string) {
	mu.Lock()
	defer mu.Unlock()
	errCodeInvalidJSON = code
}

// CustomizeValidator lets a caller register custom validation tags once,
// before the first WscValidate call.
func CustomizeValidator(register func(v *validator.Validate) error) error {
	var err error
	validatorCustomized.Do(func() {
		err = register(validate)
	})
	return err
}

// WscValidate validates data according to its struct tags and returns one
// ErrorMessage per failed field. getVals supplies the request-specific
// values for each failure, since only the caller knows them.
func WscValidate[T any](data T, getVals func(err validator.FieldError) []string) []ErrorMessage {
	var validationErrors []ErrorMessage

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		log.Printf("validation failed without field errors: %v", err)
		return []ErrorMessage{BuildErrorMessage(defaultMsgIDValue(), ErrcodeInvalidRequest, "")}
	}
	for _, fe := range validationErrs {
		var vals []string
		if getVals != nil {
			vals = getVals(fe)
		}
		msgID, code := lookupTag(fe.Tag())
		validationErrors = append(validationErrors, BuildErrorMessage(msgID, code, fe.Field(), vals...))
	}
	return validationErrors
}

func lookupTag(tag string) (int, string) {
	mu.RLock()
	defer mu.RUnlock()
	msgID, ok := validationTagMsgID[tag]
	if !ok {
		msgID = defaultMsgID
	}
	code, ok := validationTagCode[tag]
	if !ok {
		code = defaultErrCode
	}
	return msgID, code
}

func defaultMsgIDValue() int {
	mu.RLock()
	defer mu.RUnlock()
	return defaultMsgID
}

// BuildErrorMessage generates an ErrorMessage.
//
// Examples:
//
//	BuildErrorMessage(1001, "invalid_json", "")
//	BuildErrorMessage(1200, "too_large", "number", "79")
func BuildErrorMessage(msgid int, errcode string, field string, vals ...string) ErrorMessage {
	return ErrorMessage{
		MsgID:   msgid,
		ErrCode: errcode,
		Field:   field,
		Vals:    vals,
	}
}

// NewResponse is a helper function to create a new web service response
// and any error messages that might need to be sent back to the client.
func NewResponse(status string, data any, messages []ErrorMessage) *Response {
	return &Response{
		Status:   status,
		Data:     data,
		Messages: messages,
	}
}

// BindJSON binds the data member of the request envelope into data. On
// failure the invalid_json error response has already been sent when it returns.
func BindJSON(c *gin.Context, data any) error {
	req := Request{Data: data}
	if err := c.ShouldBindJSON(&req); err != nil {
		mu.RLock()
		msg := BuildErrorMessage(msgIDInvalidJSON, errCodeInvalidJSON, "")
		mu.RUnlock()
		c.JSON(http.StatusBadRequest, NewResponse(ErrorStatus, nil, []ErrorMessage{msg}))
		return err
	}
	return nil
}

// NewErrorResponse creates an error response carrying a single message.
func NewErrorResponse(msgid int, errcode string) *Response {
	return NewResponse(ErrorStatus, nil, []ErrorMessage{BuildErrorMessage(msgid, errcode, "")})
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(data any) *Response {
	return NewResponse(SuccessStatus, data, nil)
}

// SendSuccessResponse sends a JSON response.
func SendSuccessResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusOK, response)
}

// SendErrorResponse sends a JSON error response.
func SendErrorResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusBadRequest, response)
}
