// Package payment implements the checkout gateway port against the Midtrans
// Snap API.
package payment

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"seekers/internal/domain"
)

type snapGateway struct {
	serverKey string
	baseURL   string
	client    *http.Client
}

// NewSnapGateway returns a CheckoutGateway backed by the Midtrans Snap API.
// baseURL selects the environment (sandbox or production host).
func NewSnapGateway(serverKey, baseURL string, client *http.Client) domain.CheckoutGateway {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &snapGateway{serverKey: serverKey, baseURL: baseURL, client: client}
}

type snapTransactionRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
	ItemDetails        []snapItemDetail       `json:"item_details"`
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type snapItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type snapTransactionResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
}

func (g *snapGateway) CreateTransaction(ctx context.Context, order *domain.PaymentOrder, customer *domain.User) (string, string, error) {
	reqBody := snapTransactionRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     order.ID,
			GrossAmount: order.GrossAmount,
		},
		CustomerDetails: snapCustomerDetails{
			FirstName: customer.Name,
			Email:     customer.Email,
		},
		ItemDetails: []snapItemDetail{
			{
				ID:       order.PackageType,
				Name:     fmt.Sprintf("%d token credits", order.Tokens),
				Price:    order.GrossAmount,
				Quantity: 1,
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal snap request: %w", err)
	}

	url := g.baseURL + "/snap/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Midtrans uses basic auth with the server key as username and no password.
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(g.serverKey+":")))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to create snap transaction: %w", err)
	}
	defer resp.Body.Close()

	var snapResp snapTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapResp); err != nil {
		return "", "", fmt.Errorf("failed to decode snap response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if len(snapResp.ErrorMessages) > 0 {
			return "", "", fmt.Errorf("snap api returned status %d: %s", resp.StatusCode, snapResp.ErrorMessages[0])
		}
		return "", "", fmt.Errorf("snap api returned status: %d", resp.StatusCode)
	}
	if snapResp.Token == "" {
		return "", "", fmt.Errorf("snap api returned no token")
	}
	return snapResp.Token, snapResp.RedirectURL, nil
}

// VerifySignature checks the notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (g *snapGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + g.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// FormatGross renders a gross amount the way Midtrans does in notification
// payloads ("10000.00"), for signature verification.
func FormatGross(amount int64) string {
	return strconv.FormatInt(amount, 10) + ".00"
}
