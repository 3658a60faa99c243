package testinfra

import (
	"context"
	"net/http"
	"net/http/httptest"

	"rolegate/persistence"
	"rolegate/session"

	"github.com/gin-gonic/gin"
)

func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, http.Header) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Body.String(), w.Header()
}

// BuildSession builds a resolved tenant session for tests.
func BuildSession(companyPrefix string) *session.Session {
	return &session.Session{CompanyPrefix: companyPrefix, Context: context.TODO()}
}

// StartFakeStores swaps the active store bundle for in-memory fakes and
// returns them for seeding and assertions.
func StartFakeStores() (*FakeDocumentStore, *FakeSearchStore) {
	documents := NewFakeDocumentStore()
	search := NewFakeSearchStore()
	persistence.ActiveStoreBundle = persistence.NewStoreBundleWith(documents, search)
	return documents, search
}
