package middelware

import (
	"fooddonation-backend/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders  = "Origin, Content-Type, Content-Length, Accept, Accept-Encoding, X-Requested-With"
	corsExposeHeaders = "Content-Disposition, Retry-After"
)

// CORSMiddleware answers preflights and tags responses for the dashboard origins
type CORSMiddleware struct {
	anyOrigin bool
	exact     map[string]struct{}
	suffixes  []string // from "*.example.org" entries
}

// NewCORSMiddleware creates a new CORS middleware from cfg.CORSOrigins
func NewCORSMiddleware(cfg *models.Config) *CORSMiddleware {
	m := &CORSMiddleware{exact: make(map[string]struct{})}
	for _, origin := range cfg.CORSOrigins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "*":
			m.anyOrigin = true
		case strings.HasPrefix(origin, "*."):
			m.suffixes = append(m.suffixes, origin[1:])
		case origin != "":
			m.exact[strings.TrimSuffix(origin, "/")] = struct{}{}
		}
	}
	return m
}

// CORS returns a gin.HandlerFunc for handling CORS
func (m *CORSMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		preflight := c.Request.Method == http.MethodOptions

		if origin == "" {
			// not a browser cross-origin request
			if preflight {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		if !m.isOriginAllowed(origin) {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		if m.anyOrigin {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)

		if preflight {
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (m *CORSMiddleware) isOriginAllowed(origin string) bool {
	if m.anyOrigin {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}

	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	for _, suffix := range m.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
