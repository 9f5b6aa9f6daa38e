package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const SandboxBaseURL = "https://api-m.sandbox.paypal.com"

// Order is a created marketplace order awaiting payer approval.
type Order struct {
	ID          string
	ApprovalURL string
}

// Capture is the outcome of capturing an approved order.
type Capture struct {
	Status    string
	CaptureID string
}

// PayPalService talks to the PayPal Orders v2 REST API. Orders are routed to
// the event creator's connected merchant account.
type PayPalService struct {
	clientID     string
	clientSecret string
	baseURL      string
	frontendURL  string
	client       *http.Client
}

func NewPayPalService(clientID, clientSecret, baseURL, frontendURL string) *PayPalService {
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}
	client := &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &PayPalService{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		frontendURL:  frontendURL,
		client:       client,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// GetAccessToken fetches a platform token via the client-credentials grant.
func (s *PayPalService) GetAccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("paypal token request failed: %s: %s", resp.Status, body)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// CreateOrder creates a CAPTURE-intent order for amount routed to the payee
// merchant account and returns the payer approval link.
func (s *PayPalService) CreateOrder(ctx context.Context, amount float64, payeeAccountID string, eventID uint) (*Order, error) {
	token, err := s.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": "USD",
					"value":         fmt.Sprintf("%.2f", amount),
				},
				"payee": map[string]string{
					"merchant_id": payeeAccountID,
				},
			},
		},
		"payment_source": map[string]interface{}{
			"paypal": map[string]interface{}{
				"experience_context": map[string]string{
					"return_url": fmt.Sprintf("%s/payment/success?event_id=%d", s.frontendURL, eventID),
					"cancel_url": s.frontendURL + "/payment/cancel",
				},
			},
		},
	}

	var order orderResponse
	if err := s.post(ctx, "/v2/checkout/orders", token, payload, &order); err != nil {
		return nil, err
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "payer-action" || link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	if order.ID == "" || approvalURL == "" {
		return nil, fmt.Errorf("paypal order response missing id or approval link")
	}

	return &Order{ID: order.ID, ApprovalURL: approvalURL}, nil
}

// CaptureOrder captures an approved order and returns the capture id.
func (s *PayPalService) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	token, err := s.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var order orderResponse
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := s.post(ctx, path, token, nil, &order); err != nil {
		return nil, err
	}

	capture := &Capture{Status: order.Status}
	if len(order.PurchaseUnits) > 0 && len(order.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.CaptureID = order.PurchaseUnits[0].Payments.Captures[0].ID
	}
	return capture, nil
}

func (s *PayPalService) post(ctx context.Context, path, token string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PayPal-Request-Id", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("paypal request %s failed: %s: %s", path, resp.Status, raw)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
