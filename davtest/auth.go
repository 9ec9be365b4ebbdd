package davtest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func checkBasicAuth(c *gin.Context, users map[string]string) (string, error) {
	user, password, ok := c.Request.BasicAuth()
	if !ok {
		return "", fmt.Errorf("no auth found")
	}
	expect, ok := users[user]
	if !ok {
		return "", fmt.Errorf("user not found, u:%s", user)
	}
	if expect != password {
		return "", fmt.Errorf("password not match, u:%s", user)
	}
	return user, nil
}

func basicAuthMiddleware(users map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logutil.GetLogger(c.Request.Context()).With(zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path))
		user, err := checkBasicAuth(c, users)
		if err != nil {
			logger.Debug("user auth failed", zap.Error(err))
			c.Header("WWW-Authenticate", `Basic realm="davtest"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		logger.Debug("user auth succ", zap.String("user", user))
	}
}
