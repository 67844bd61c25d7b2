package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/comercia-api/internal/application/checkout"
	"github.com/comercia/comercia-api/pkg/config"
)

func testCfg(baseURL string) config.PaymentConfig {
	return config.PaymentConfig{
		BaseURL:     baseURL,
		AccessToken: "test-token",
		SuccessURL:  "https://tienda.example/gracias",
		FailureURL:  "https://tienda.example/pago-fallido",
	}
}

func testBuyer() checkout.PreferenceBuyer {
	return checkout.PreferenceBuyer{
		Name:    "Ana Gómez",
		Email:   "ana@example.com",
		Phone:   "11-5555-0000",
		Address: "Av. Siempreviva 742",
		City:    "Rosario",
		ZipCode: "2000",
	}
}

func TestCreatePreference_EnviaElCarritoYDevuelveLaURL(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "pref-123",
			"init_point": "https://pagos.example/redirect/pref-123",
		})
	}))
	defer srv.Close()

	client := NewClientWithHTTP(testCfg(srv.URL), srv.Client())
	items := []checkout.PreferenceItem{
		{Title: "Yerba Mate 500g", Quantity: 3, UnitPrice: decimal.NewFromInt(100)},
	}

	url, err := client.CreatePreference(context.Background(), "ref-abc", items, testBuyer(), decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "https://pagos.example/redirect/pref-123", url)

	assert.Equal(t, "ref-abc", got["external_reference"])
	backURLs := got["back_urls"].(map[string]interface{})
	assert.Equal(t, "https://tienda.example/gracias", backURLs["success"])
	assert.Equal(t, "https://tienda.example/pago-fallido", backURLs["failure"])
	payer := got["payer"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", payer["email"])
	shipment := got["shipment"].(map[string]interface{})
	assert.Equal(t, "Rosario", shipment["city"])
}

func TestCreatePreference_ErrorHTTPIncluyeElCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid access token"}`))
	}))
	defer srv.Close()

	client := NewClientWithHTTP(testCfg(srv.URL), srv.Client())

	_, err := client.CreatePreference(context.Background(), "ref-abc", nil, testBuyer(), decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid access token")
}

func TestCreatePreference_SinInitPointEsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "pref-123"})
	}))
	defer srv.Close()

	client := NewClientWithHTTP(testCfg(srv.URL), srv.Client())

	_, err := client.CreatePreference(context.Background(), "ref-abc", nil, testBuyer(), decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no devolvió URL de redirección")
}

func TestCreatePreference_PasarelaCaida(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor apagado antes de llamar

	client := NewClientWithHTTP(testCfg(srv.URL), &http.Client{})

	_, err := client.CreatePreference(context.Background(), "ref-abc", nil, testBuyer(), decimal.Zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llamar a la pasarela")
}
