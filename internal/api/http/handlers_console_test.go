package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/identity"
	"github.com/autoful/console-gateway/internal/session"
)

func consoleTestRouter(t *testing.T, backend http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	idp := &stubIDP{session: &identity.Session{SubjectID: "uid-1", IDToken: "tok"}}
	store := session.NewStore()

	r := gin.New()
	NewConsoleHandler(gateway.NewClient(srv.URL, idp, 0), store).RegisterMechanicRoutes(r)
	return r
}

func TestRemoveTicketInventoryRoute(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	r := consoleTestRouter(t, func(w http.ResponseWriter, rq *http.Request) {
		gotMethod, gotPath, gotAuth = rq.Method, rq.URL.Path, rq.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tickets/9/remove-inventory/31", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/service_tickets/9/remove-inventory/31", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestRemoveTicketInventoryRejectsBadLineID(t *testing.T) {
	var hits int
	r := consoleTestRouter(t, func(w http.ResponseWriter, rq *http.Request) { hits++ })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tickets/9/remove-inventory/zero", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, hits)
}

func TestSearchInventoryRoute(t *testing.T) {
	var gotPath, gotQuery string
	r := consoleTestRouter(t, func(w http.ResponseWriter, rq *http.Request) {
		gotPath, gotQuery = rq.URL.Path, rq.URL.Query().Get("part_name")
		w.Write([]byte(`[{"id":3,"part_name":"brake pad","price":25.5,"quantity_in_stock":8}]`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/search?part_name=brake+pad", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/inventory/search", gotPath, "search must hit the dedicated endpoint, not the listing")
	assert.Equal(t, "brake pad", gotQuery)
	assert.Contains(t, w.Body.String(), "brake pad")
}

func TestSearchInventoryRequiresPartName(t *testing.T) {
	var hits int
	r := consoleTestRouter(t, func(w http.ResponseWriter, rq *http.Request) { hits++ })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, hits)
}
