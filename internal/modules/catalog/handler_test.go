package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	doc        *Document
	toggles    []Toggle
	shopUpdate *ShopInfoUpdate
	err        error
}

func (f *fakeService) GetCatalog(context.Context) (*Document, error) {
	return f.doc, f.err
}

func (f *fakeService) ReplaceCatalog(_ context.Context, doc *Document) error {
	f.doc = doc
	return f.err
}

func (f *fakeService) SetAvailability(_ context.Context, toggles []Toggle) (*Document, error) {
	f.toggles = toggles
	return f.doc, f.err
}

func (f *fakeService) UpdateShopInfo(_ context.Context, update ShopInfoUpdate) error {
	f.shopUpdate = &update
	return f.err
}

func newTestRouter(svc Service) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func TestHandler_GetCatalog(t *testing.T) {
	doc := sampleDoc(t)
	router := newTestRouter(&fakeService{doc: &doc})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, sampleDocument, rec.Body.String())
}

func TestHandler_GetCatalog_StoreFailure(t *testing.T) {
	router := newTestRouter(&fakeService{err: ErrNotFound})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao ler dados dos itens.")
}

func TestHandler_ReplaceCatalog(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(sampleDocument))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disponibilidade dos itens atualizada com sucesso!")
	require.NotNil(t, svc.doc)
	assert.NotNil(t, svc.doc.Category("bebidas"))
}

func TestHandler_SetAvailability(t *testing.T) {
	doc := sampleDoc(t)
	svc := &fakeService{doc: &doc}
	router := newTestRouter(svc)

	body := `{"toggles": [{"category": "bebidas", "itemId": "b1", "available": true}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/items/availability", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.toggles, 1)
	assert.Equal(t, Toggle{Category: "bebidas", ItemID: "b1", Available: true}, svc.toggles[0])
}

func TestHandler_SetAvailability_RejectsIncompleteToggle(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	// itemId missing
	body := `{"toggles": [{"category": "bebidas", "available": true}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/items/availability", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.toggles, "invalid payloads never reach the service")
}

func TestHandler_UpdateShopInfo(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"isOpen": false, "closedMessage": "Já voltamos!", "isDeliveryAvailable": true, "deliveryLocations": {"bairro": true, "centro": false}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/shop-info", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status da loja atualizado com sucesso!")
	require.NotNil(t, svc.shopUpdate)
	assert.False(t, svc.shopUpdate.IsOpen)
	assert.Equal(t, "Já voltamos!", svc.shopUpdate.ClosedMessage)
	require.NotNil(t, svc.shopUpdate.DeliveryLocations)
	assert.True(t, svc.shopUpdate.DeliveryLocations.Bairro)
}
