// Package numwordsvc exposes numwords over HTTP using the standard
// request and response envelope.
//
//	POST /numwords/convert        {"data": {"number": "35302", "unit": "metr"}}
//	POST /numwords/convert-batch  {"data": {"numbers": ["1", "2"], "unit": "metr"}}
//	POST /numwords/amount         {"data": {"amount": "123.45"}}
//	GET  /numwords/units
package numwordsvc

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/remiges-tech/slownie/numwords"
	"github.com/remiges-tech/slownie/service"
	"github.com/remiges-tech/slownie/units"
	"github.com/remiges-tech/slownie/validations"
	"github.com/remiges-tech/slownie/wscutils"
)

//-----------------------------------------------------------------------------
// Constants
//-----------------------------------------------------------------------------

const (
	// Error codes and message IDs
	MsgIDRequired        = 1001
	ErrCodeRequired      = "required"
	MsgIDInvalidFormat   = 1002
	ErrCodeInvalidFormat = "invalid_format"
	MsgIDTooLarge        = 1101
	ErrCodeTooLarge      = "too_large"
	MsgIDUnitUnknown     = 1102
	ErrCodeUnitUnknown   = "unit_unknown"
	MsgIDUnitConflict    = 1103
	ErrCodeUnitConflict  = "unit_conflict"
	MsgIDBatchTooLarge   = 1104
	ErrCodeBatchTooLarge = "batch_too_large"
	MsgIDInternalErr     = 1199
	ErrCodeInternalErr   = "internal"

	// Keys in service.Dependencies
	DepUnits = "units"

	// MaxBatchSize bounds the numbers accepted by one convert-batch request.
	MaxBatchSize = 1000

	// Metric names
	MetricConversions = "numwords_conversions_total"
	MetricDuration    = "numwords_conversion_duration_seconds"
)

//-----------------------------------------------------------------------------
// Request and response types
//-----------------------------------------------------------------------------

type ConvertRequest struct {
	Number string                                      `json:"number" validate:"required,numeral,maxnumeral"`
	Unit   string                                      `json:"unit" validate:"omitempty,unitkey"`
	Forms  wscutils.Optional[numwords.GrammaticalForm] `json:"forms" validate:"-"`
}

type ConvertBatchRequest struct {
	Numbers []string                                    `json:"numbers" validate:"required,min=1,dive,required,numeral,maxnumeral"`
	Unit    string                                      `json:"unit" validate:"omitempty,unitkey"`
	Forms   wscutils.Optional[numwords.GrammaticalForm] `json:"forms" validate:"-"`
}

type AmountRequest struct {
	Amount   string                 `json:"amount" validate:"required,amount"`
	Currency string                 `json:"currency" validate:"omitempty,oneof=PLN"`
	Digits   wscutils.Optional[bool] `json:"digits" validate:"-"`
}

type ConvertResponse struct {
	Number string   `json:"number"`
	Words  []string `json:"words"`
	Text   string   `json:"text"`
}

type AmountResponse struct {
	Amount string `json:"amount"`
	Text   string `json:"text"`
}

type UnitInfo struct {
	Key   string                   `json:"key"`
	Forms numwords.GrammaticalForm `json:"forms"`
}

//-----------------------------------------------------------------------------
// Initialization
//-----------------------------------------------------------------------------

func init() {
	if err := wscutils.CustomizeValidator(validations.RegisterValidations); err != nil {
		panic(err)
	}

	wscutils.SetValidationTagToErrCodeMap(map[string]string{
		"required":                ErrCodeRequired,
		"min":                     ErrCodeRequired,
		validations.TagNumeral:    ErrCodeInvalidFormat,
		validations.TagMaxNumeral: ErrCodeTooLarge,
		validations.TagAmount:     ErrCodeInvalidFormat,
		validations.TagUnitKey:    ErrCodeInvalidFormat,
		"oneof":                   ErrCodeInvalidFormat,
	})
	wscutils.SetValidationTagToMsgIDMap(map[string]int{
		"required":                MsgIDRequired,
		"min":                     MsgIDRequired,
		validations.TagNumeral:    MsgIDInvalidFormat,
		validations.TagMaxNumeral: MsgIDTooLarge,
		validations.TagAmount:     MsgIDInvalidFormat,
		validations.TagUnitKey:    MsgIDInvalidFormat,
		"oneof":                   MsgIDInvalidFormat,
	})
	wscutils.SetDefaultErrCode(ErrCodeInvalidFormat)
	wscutils.SetDefaultMsgID(MsgIDInvalidFormat)
}

// RegisterHandlers registers the numwords routes and metrics on s.
func RegisterHandlers(s *service.Service) {
	if s.Metrics != nil {
		s.Metrics.RegisterWithLabels(MetricConversions, "Counter", "Number of conversion requests by endpoint and status", []string{"endpoint", "status"})
		s.Metrics.RegisterWithLabels(MetricDuration, "Histogram", "Time spent converting, by endpoint", []string{"endpoint"})
	}

	g := s.CreateGroup("/numwords")
	g.RegisterRoute(http.MethodPost, "/convert", HandleConvertRequest)
	g.RegisterRoute(http.MethodPost, "/convert-batch", HandleConvertBatchRequest)
	g.RegisterRoute(http.MethodPost, "/amount", HandleAmountRequest)
	g.RegisterRoute(http.MethodGet, "/units", HandleUnitsRequest)
}

//-----------------------------------------------------------------------------
// Request Handlers
//-----------------------------------------------------------------------------

func HandleConvertRequest(c *gin.Context, s *service.Service) {
	const endpoint = "convert"
	lh := logger(s).WithModule("numwordsvc").WithOp(endpoint)
	start := time.Now()

	var req ConvertRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		record(s, endpoint, wscutils.ErrorStatus, start)
		return
	}

	if errs := wscutils.WscValidate(req, getVals); len(errs) > 0 {
		sendErrors(c, s, endpoint, start, errs...)
		return
	}

	unit, msg := resolveUnit(s, req.Unit, req.Forms)
	if msg != nil {
		sendErrors(c, s, endpoint, start, *msg)
		return
	}

	resp, msg := convert(req.Number, unit)
	if msg != nil {
		sendErrors(c, s, endpoint, start, *msg)
		return
	}

	lh.Debug0().LogActivity("number converted", map[string]any{"number": req.Number, "unit": req.Unit})
	record(s, endpoint, wscutils.SuccessStatus, start)
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(resp))
}

func HandleConvertBatchRequest(c *gin.Context, s *service.Service) {
	const endpoint = "convert-batch"
	lh := logger(s).WithModule("numwordsvc").WithOp(endpoint)
	start := time.Now()

	var req ConvertBatchRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		record(s, endpoint, wscutils.ErrorStatus, start)
		return
	}

	if len(req.Numbers) > MaxBatchSize {
		msg := wscutils.BuildErrorMessage(MsgIDBatchTooLarge, ErrCodeBatchTooLarge, "numbers",
			fmt.Sprint(len(req.Numbers)), fmt.Sprint(MaxBatchSize))
		sendErrors(c, s, endpoint, start, msg)
		return
	}

	if errs := wscutils.WscValidate(req, getVals); len(errs) > 0 {
		sendErrors(c, s, endpoint, start, errs...)
		return
	}

	unit, msg := resolveUnit(s, req.Unit, req.Forms)
	if msg != nil {
		sendErrors(c, s, endpoint, start, *msg)
		return
	}

	ctx := c.Request.Context()
	results := make([]ConvertResponse, 0, len(req.Numbers))
	for _, n := range req.Numbers {
		if err := ctx.Err(); err != nil {
			// TimeoutMiddleware answers for us.
			lh.Warn().LogActivity("batch abandoned", map[string]any{"done": len(results), "total": len(req.Numbers), "error": err.Error()})
			record(s, endpoint, wscutils.ErrorStatus, start)
			return
		}
		resp, msg := convert(n, unit)
		if msg != nil {
			sendErrors(c, s, endpoint, start, *msg)
			return
		}
		results = append(results, resp)
	}

	lh.Debug0().LogActivity("batch converted", map[string]any{"count": len(results), "unit": req.Unit})
	record(s, endpoint, wscutils.SuccessStatus, start)
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(results))
}

func HandleAmountRequest(c *gin.Context, s *service.Service) {
	const endpoint = "amount"
	lh := logger(s).WithModule("numwordsvc").WithOp(endpoint)
	start := time.Now()

	var req AmountRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		record(s, endpoint, wscutils.ErrorStatus, start)
		return
	}

	if errs := wscutils.WscValidate(req, getVals); len(errs) > 0 {
		sendErrors(c, s, endpoint, start, errs...)
		return
	}

	var text string
	var err error
	if req.Digits.Set() && req.Digits.Value {
		text, err = numwords.ConvertAmountDigits(req.Amount, numwords.Zloty)
	} else {
		text, err = numwords.ConvertAmount(req.Amount, numwords.Zloty, numwords.Grosz)
	}
	if err != nil {
		sendErrors(c, s, endpoint, start, errorMessage(err, "amount", req.Amount))
		return
	}

	lh.Debug0().LogActivity("amount converted", map[string]any{"amount": req.Amount})
	record(s, endpoint, wscutils.SuccessStatus, start)
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(AmountResponse{Amount: req.Amount, Text: text}))
}

func HandleUnitsRequest(c *gin.Context, s *service.Service) {
	catalogue := unitCatalogue(s)
	list := make([]UnitInfo, 0, catalogue.Len())
	for _, key := range catalogue.Keys() {
		f, _ := catalogue.Lookup(key)
		list = append(list, UnitInfo{Key: key, Forms: *f})
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(list))
}

//-----------------------------------------------------------------------------
// Helper Functions
//-----------------------------------------------------------------------------

func getVals(err validator.FieldError) []string {
	switch err.Tag() {
	case validations.TagNumeral, validations.TagMaxNumeral, validations.TagAmount, validations.TagUnitKey, "oneof":
		if s, ok := err.Value().(string); ok {
			return []string{s}
		}
	}
	return nil
}

// resolveUnit picks the unit named by key in the catalogue, or the inline forms.
func resolveUnit(s *service.Service, key string, forms wscutils.Optional[numwords.GrammaticalForm]) (*numwords.GrammaticalForm, *wscutils.ErrorMessage) {
	switch {
	case key != "" && forms.Set():
		msg := wscutils.BuildErrorMessage(MsgIDUnitConflict, ErrCodeUnitConflict, "forms")
		return nil, &msg
	case forms.Set():
		if !forms.Value.Valid() {
			msg := wscutils.BuildErrorMessage(MsgIDRequired, ErrCodeRequired, "forms")
			return nil, &msg
		}
		f := forms.Value
		return &f, nil
	case key != "":
		f, ok := unitCatalogue(s).Lookup(key)
		if !ok {
			msg := wscutils.BuildErrorMessage(MsgIDUnitUnknown, ErrCodeUnitUnknown, "unit", key)
			return nil, &msg
		}
		return f, nil
	}
	return nil, nil
}

func convert(number string, unit *numwords.GrammaticalForm) (ConvertResponse, *wscutils.ErrorMessage) {
	n, err := numwords.ParseNumber(number)
	if err != nil {
		msg := errorMessage(err, "number", number)
		return ConvertResponse{}, &msg
	}
	words, err := numwords.ConvertNumberToWords(n, unit)
	if err != nil {
		msg := errorMessage(err, "number", number)
		return ConvertResponse{}, &msg
	}
	return ConvertResponse{Number: n.String(), Words: words, Text: strings.Join(words, " ")}, nil
}

// errorMessage maps numwords errors to envelope messages.
func errorMessage(err error, field, value string) wscutils.ErrorMessage {
	switch {
	case errors.Is(err, numwords.ErrOverflow):
		return wscutils.BuildErrorMessage(MsgIDTooLarge, ErrCodeTooLarge, field, value)
	case errors.Is(err, numwords.ErrNegative), errors.Is(err, numwords.ErrMalformed):
		return wscutils.BuildErrorMessage(MsgIDInvalidFormat, ErrCodeInvalidFormat, field, value)
	default:
		return wscutils.BuildErrorMessage(MsgIDInternalErr, ErrCodeInternalErr, field)
	}
}

func sendErrors(c *gin.Context, s *service.Service, endpoint string, start time.Time, msgs ...wscutils.ErrorMessage) {
	status := http.StatusBadRequest
	for _, m := range msgs {
		if m.ErrCode == ErrCodeInternalErr {
			status = http.StatusInternalServerError
		}
	}
	lh := logger(s).WithModule("numwordsvc").WithOp(endpoint)
	if status == http.StatusInternalServerError {
		lh.Error(errors.New("conversion failed")).LogActivity("internal error", map[string]any{"messages": msgs})
	} else {
		lh.Info().LogActivity("request rejected", map[string]any{"messages": msgs})
	}
	record(s, endpoint, wscutils.ErrorStatus, start)
	c.JSON(status, wscutils.NewResponse(wscutils.ErrorStatus, nil, msgs))
}

func record(s *service.Service, endpoint, status string, start time.Time) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.RecordWithLabels(MetricConversions, 1, endpoint, status)
	s.Metrics.RecordWithLabels(MetricDuration, time.Since(start).Seconds(), endpoint)
}

func unitCatalogue(s *service.Service) *units.Catalogue {
	if c, ok := s.Dependencies[DepUnits].(*units.Catalogue); ok {
		return c
	}
	return defaultUnits
}

var defaultUnits = units.Default()

var discard = logharbour.NewLogger(logharbour.NewLoggerContext(logharbour.Info), "numwordsvc", io.Discard)

func logger(s *service.Service) *logharbour.Logger {
	if s.LogHarbour != nil {
		return s.LogHarbour
	}
	return discard
}
