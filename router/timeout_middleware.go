package router

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/slownie/wscutils"
)

// Context keys set by TimeoutMiddleware and read by LogRequest.
//
// Both keys mean the request context was done when the handler returned,
// but the cause differs: CtxKeyTimedOut is our deadline firing
// (context.DeadlineExceeded), CtxKeyClientDisconnected is the client going
// away (context.Canceled).
const (
	CtxKeyTimedOut           = "_request_timed_out"
	CtxKeyClientDisconnected = "_client_disconnected"
)

var (
	timeoutMu      sync.RWMutex
	timeoutMsgID   = wscutils.DefaultMsgID
	timeoutErrCode = wscutils.ErrcodeTimeout
)

// RegisterTimeoutMessage sets the message ID and error code of the 504 response.
func RegisterTimeoutMessage(msgID int, errCode string) {
	timeoutMu.Lock()
	defer timeoutMu.Unlock()
	timeoutMsgID, timeoutErrCode = msgID, errCode
}

// TimeoutMiddleware puts a deadline on the request context. Handlers are
// expected to check the context between units of work and return early
// once it is done; if they return without writing a response, a 504 with
// the standard error envelope is sent.
//
// LogRequest must be registered before this middleware to see the
// timeout in its log entry.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == nil {
			return
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.Set(CtxKeyTimedOut, true)
		} else {
			c.Set(CtxKeyClientDisconnected, true)
		}
		if c.Writer.Written() {
			return
		}

		timeoutMu.RLock()
		resp := wscutils.NewErrorResponse(timeoutMsgID, timeoutErrCode)
		timeoutMu.RUnlock()
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, resp)
	}
}
