// Package session resolves the tenant of an inbound request. Identity
// verification happens upstream in the gateway authorizer; by the time a
// request arrives here the tenant is an already resolved opaque prefix carried
// in the forwarded request context.
package session

import (
	"context"
	"encoding/json"
	"rolegate/common"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const HeaderRequestContext = "X-Request-Context"

const KeySession = "TenantSession"

const contextExpiration = 5 * time.Minute

// identical authorizer payloads repeat across requests of the same tenant,
// decoding each once is enough
var requestContextCache = cache.New(contextExpiration, 1*time.Minute)

type Session struct {
	CompanyPrefix string
	Context       context.Context
}

type requestContext struct {
	Authorizer authorizerContext `json:"authorizer"`
}

type authorizerContext struct {
	CompanyPrefix string `json:"companyPrefix"`
}

func (s *Session) Clone() Session {
	return Session{CompanyPrefix: s.CompanyPrefix, Context: s.Context}
}

// TenantFilter requires a resolvable tenant on every request it guards.
func TenantFilter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader(HeaderRequestContext)
		prefix, ok := resolveCompanyPrefix(header)
		if !ok {
			panic(common.ErrUnauthenticated)
		}
		ctx.Set(KeySession, &Session{CompanyPrefix: prefix})
		ctx.Next()
	}
}

func resolveCompanyPrefix(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	if cached, found := requestContextCache.Get(header); found {
		prefix, ok := cached.(string)
		return prefix, ok && prefix != ""
	}

	rc := requestContext{}
	if err := json.Unmarshal([]byte(header), &rc); err != nil {
		return "", false
	}
	prefix := rc.Authorizer.CompanyPrefix
	if prefix == "" {
		return "", false
	}
	requestContextCache.Set(header, prefix, cache.DefaultExpiration)
	return prefix, true
}

func ExtractSessionFromGinContext(ctx *gin.Context) *Session {
	value, found := ctx.Get(KeySession)
	if !found {
		return &Session{Context: ctx.Request.Context()}
	}
	s0, ok := value.(*Session)
	if !ok || s0.CompanyPrefix == "" {
		return &Session{Context: ctx.Request.Context()}
	}
	s := s0.Clone()
	s.Context = ctx.Request.Context() // trace context
	return &s
}
