package numwordsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/remiges-tech/slownie/metrics"
	"github.com/remiges-tech/slownie/numwords"
	"github.com/remiges-tech/slownie/router"
	"github.com/remiges-tech/slownie/service"
	"github.com/remiges-tech/slownie/units"
	"github.com/remiges-tech/slownie/wscutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status   string                  `json:"status"`
	Data     json.RawMessage         `json:"data"`
	Messages []wscutils.ErrorMessage `json:"messages"`
}

func setupService(t *testing.T) (*gin.Engine, *metrics.PrometheusMetrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(router.TimeoutMiddleware(time.Minute))

	m := metrics.NewPrometheusMetrics()
	lh := logharbour.NewLogger(logharbour.NewLoggerContext(logharbour.Info), "numwordsvc-test", io.Discard)
	s := service.NewService(r).
		WithLogHarbour(lh).
		WithMetrics(m).
		WithDependency(DepUnits, units.Default())
	RegisterHandlers(s)
	return r, m
}

func post(t *testing.T, r http.Handler, path, data string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"data":`+data+`}`))
	req.Header.Set("Content-Type", "application/json")
	return serve(t, r, req)
}

func serve(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestConvert(t *testing.T) {
	r, m := setupService(t)

	tests := []struct {
		name string
		data string
		text string
	}{
		{"plain", `{"number": "35302"}`, "trzydzieści pięć tysięcy trzysta dwa"},
		{"zero", `{"number": "0"}`, "zero"},
		{"catalogue unit", `{"number": "3", "unit": "metr"}`, "trzy metry"},
		{"inline forms", `{"number": "5", "forms": {"nom_sg": "kot", "nom_pl": "koty", "gen_pl": "kotów"}}`, "pięć kotów"},
		{"null forms", `{"number": "1", "unit": "metr", "forms": null}`, "jeden metr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := post(t, r, "/numwords/convert", tt.data)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, wscutils.SuccessStatus, env.Status)

			var resp ConvertResponse
			require.NoError(t, json.Unmarshal(env.Data, &resp))
			assert.Equal(t, tt.text, resp.Text)
			assert.Equal(t, strings.Fields(tt.text), resp.Words)
		})
	}

	expectConversions(t, m, "convert", wscutils.SuccessStatus, len(tests))
}

func TestConvertErrors(t *testing.T) {
	r, _ := setupService(t)

	tests := []struct {
		name    string
		data    string
		field   string
		msgID   int
		errCode string
	}{
		{"missing number", `{}`, "Number", MsgIDRequired, ErrCodeRequired},
		{"negative", `{"number": "-5"}`, "Number", MsgIDInvalidFormat, ErrCodeInvalidFormat},
		{"not a number", `{"number": "pięć"}`, "Number", MsgIDInvalidFormat, ErrCodeInvalidFormat},
		{"too large", `{"number": "1` + strings.Repeat("0", 78) + `"}`, "Number", MsgIDTooLarge, ErrCodeTooLarge},
		{"bad unit key", `{"number": "1", "unit": "Metr"}`, "Unit", MsgIDInvalidFormat, ErrCodeInvalidFormat},
		{"unknown unit", `{"number": "1", "unit": "parsek"}`, "unit", MsgIDUnitUnknown, ErrCodeUnitUnknown},
		{"unit and forms", `{"number": "1", "unit": "metr", "forms": {"nom_sg": "a", "nom_pl": "b", "gen_pl": "c"}}`, "forms", MsgIDUnitConflict, ErrCodeUnitConflict},
		{"incomplete forms", `{"number": "1", "forms": {"nom_sg": "kot"}}`, "forms", MsgIDRequired, ErrCodeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := post(t, r, "/numwords/convert", tt.data)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, wscutils.ErrorStatus, env.Status)
			require.Len(t, env.Messages, 1)
			assert.Equal(t, tt.field, env.Messages[0].Field)
			assert.Equal(t, tt.msgID, env.Messages[0].MsgID)
			assert.Equal(t, tt.errCode, env.Messages[0].ErrCode)
		})
	}
}

func TestConvertInvalidJSON(t *testing.T) {
	r, _ := setupService(t)

	req := httptest.NewRequest(http.MethodPost, "/numwords/convert", bytes.NewBufferString(`{"data":`))
	req.Header.Set("Content-Type", "application/json")
	w, env := serve(t, r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, wscutils.ErrcodeInvalidJson, env.Messages[0].ErrCode)
}

func TestConvertBatch(t *testing.T) {
	r, _ := setupService(t)

	w, env := post(t, r, "/numwords/convert-batch", `{"numbers": ["1", "2", "5", "22"], "unit": "metr"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp []ConvertResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	texts := make([]string, 0, len(resp))
	for _, r := range resp {
		texts = append(texts, r.Text)
	}
	assert.Equal(t, []string{"jeden metr", "dwa metry", "pięć metrów", "dwadzieścia dwa metry"}, texts)
}

func TestConvertBatchErrors(t *testing.T) {
	r, _ := setupService(t)

	_, env := post(t, r, "/numwords/convert-batch", `{"numbers": ["1", "x"]}`)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, "Numbers[1]", env.Messages[0].Field)
	assert.Equal(t, ErrCodeInvalidFormat, env.Messages[0].ErrCode)
	assert.Equal(t, []string{"x"}, env.Messages[0].Vals)

	_, env = post(t, r, "/numwords/convert-batch", `{"numbers": []}`)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, ErrCodeRequired, env.Messages[0].ErrCode)

	numbers, err := json.Marshal(make([]string, MaxBatchSize+1))
	require.NoError(t, err)
	w, env := post(t, r, "/numwords/convert-batch", `{"numbers": `+string(numbers)+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, ErrCodeBatchTooLarge, env.Messages[0].ErrCode)
}

func TestConvertBatchCancelled(t *testing.T) {
	r, m := setupService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/numwords/convert-batch",
		strings.NewReader(`{"data": {"numbers": ["1", "2"]}}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w, env := serve(t, r, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, wscutils.ErrcodeTimeout, env.Messages[0].ErrCode)
	expectConversions(t, m, "convert-batch", wscutils.ErrorStatus, 1)
}

func TestAmount(t *testing.T) {
	r, _ := setupService(t)

	tests := []struct {
		data string
		text string
	}{
		{`{"amount": "123.45"}`, "sto dwadzieścia trzy złote czterdzieści pięć groszy"},
		{`{"amount": "1,01", "currency": "PLN"}`, "jeden złoty jeden grosz"},
		{`{"amount": "123.45", "digits": true}`, "sto dwadzieścia trzy złote 45/100"},
		{`{"amount": "5", "digits": false}`, "pięć złotych zero groszy"},
	}

	for _, tt := range tests {
		w, env := post(t, r, "/numwords/amount", tt.data)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp AmountResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, tt.text, resp.Text, tt.data)
	}
}

func TestAmountErrors(t *testing.T) {
	r, _ := setupService(t)

	_, env := post(t, r, "/numwords/amount", `{"amount": "1.234"}`)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, "Amount", env.Messages[0].Field)
	assert.Equal(t, ErrCodeInvalidFormat, env.Messages[0].ErrCode)
	assert.Equal(t, []string{"1.234"}, env.Messages[0].Vals)

	_, env = post(t, r, "/numwords/amount", `{"amount": "1", "currency": "EUR"}`)
	require.Len(t, env.Messages, 1)
	assert.Equal(t, "Currency", env.Messages[0].Field)
}

func TestUnits(t *testing.T) {
	r, _ := setupService(t)

	w, env := serve(t, r, httptest.NewRequest(http.MethodGet, "/numwords/units", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list []UnitInfo
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, units.Default().Len())

	keys := make([]string, 0, len(list))
	for _, u := range list {
		keys = append(keys, u.Key)
		if u.Key == "metr" {
			assert.Equal(t, numwords.GrammaticalForm{
				NominativeSingular: "metr", NominativePlural: "metry", GenitivePlural: "metrów",
			}, u.Forms)
		}
	}
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "metr")
}

func TestServiceWithoutDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHandlers(service.NewService(r))

	w, env := post(t, r, "/numwords/convert", `{"number": "2", "unit": "kilogram"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "dwa kilogramy", resp.Text)
}

// expectConversions checks the conversions counter holds a single series.
func expectConversions(t *testing.T, m *metrics.PrometheusMetrics, endpoint, status string, count int) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP %[1]s Number of conversion requests by endpoint and status
# TYPE %[1]s counter
%[1]s{endpoint="%[2]s",status="%[3]s"} %[4]d
`, MetricConversions, endpoint, status, count)
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), MetricConversions))
}
