package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/checkout"
	"github.com/comercia/comercia-api/pkg/config"
)

// Client implementa checkout.PreferenceCreator contra la API REST de la
// pasarela de pagos. Usa net/http de la stdlib; para tests se inyecta el
// *http.Client.
type Client struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

var _ checkout.PreferenceCreator = (*Client)(nil)

func NewClient(cfg config.PaymentConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP permite inyectar el cliente HTTP (tests).
func NewClientWithHTTP(cfg config.PaymentConfig, hc *http.Client) *Client {
	return &Client{cfg: cfg, httpClient: hc}
}

// ── Cuerpos de la API de preferencias ──────────────────────────────────────────

type preferenceItem struct {
	Title     string          `json:"title"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type preferencePayer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type preferenceShipment struct {
	Cost    decimal.Decimal `json:"cost"`
	Address string          `json:"address,omitempty"`
	City    string          `json:"city,omitempty"`
	ZipCode string          `json:"zip_code,omitempty"`
}

type preferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
}

type preferenceRequest struct {
	ExternalReference string             `json:"external_reference"`
	Items             []preferenceItem   `json:"items"`
	Payer             preferencePayer    `json:"payer"`
	Shipment          preferenceShipment `json:"shipment"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"` // URL de redirección al flujo de pago
}

// CreatePreference publica el carrito en la pasarela y devuelve la URL de
// redirección. El externalRef vuelve luego por webhook.
func (c *Client) CreatePreference(ctx context.Context, externalRef string, items []checkout.PreferenceItem, buyer checkout.PreferenceBuyer, shipping decimal.Decimal) (string, error) {
	reqBody := preferenceRequest{
		ExternalReference: externalRef,
		Payer: preferencePayer{
			Name:  buyer.Name,
			Email: buyer.Email,
			Phone: buyer.Phone,
		},
		Shipment: preferenceShipment{
			Cost:    shipping,
			Address: buyer.Address,
			City:    buyer.City,
			ZipCode: buyer.ZipCode,
		},
		BackURLs: preferenceBackURLs{
			Success: c.cfg.SuccessURL,
			Failure: c.cfg.FailureURL,
		},
	}
	for _, it := range items {
		reqBody.Items = append(reqBody.Items, preferenceItem{
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("serializar preferencia: %w", err)
	}

	url := c.cfg.BaseURL + "/checkout/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("armar request de preferencia: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llamar a la pasarela: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("leer respuesta de la pasarela: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("la pasarela respondió %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var pref preferenceResponse
	if err := json.Unmarshal(body, &pref); err != nil {
		return "", fmt.Errorf("parsear respuesta de la pasarela: %w", err)
	}
	if pref.InitPoint == "" {
		return "", fmt.Errorf("la pasarela no devolvió URL de redirección (id=%s)", pref.ID)
	}
	return pref.InitPoint, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
