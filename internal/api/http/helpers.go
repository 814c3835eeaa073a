package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autoful/console-gateway/internal/api/http/middleware"
	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/identity"
)

// writeError translates the error taxonomy onto HTTP. Backend errors
// pass their status straight through; identity-provider rejections are
// auth failures; anything else is a bad gateway from the console's
// point of view. Every failure is logged under the request id so one
// console action can be followed across the log.
func writeError(c *gin.Context, err error) {
	log.Printf("[warn] operation=request_failed id=%s error=%v",
		middleware.GetRequestID(c.Request.Context()), err)

	var gerr *gateway.GatewayError
	if errors.As(err, &gerr) {
		c.JSON(gerr.Status, gin.H{"message": gerr.Message})
		return
	}
	if errors.Is(err, gateway.ErrAuthRequired) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}
	var perr *identity.ProviderError
	if errors.As(err, &perr) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": perr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
}

// pathID parses a numeric path parameter, responding 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseThreshold(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}
