package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for payment operations.
var (
	ErrPackageNotFound  = errors.New("token package not found")
	ErrOrderNotFound    = errors.New("payment order not found")
	ErrInvalidSignature = errors.New("invalid notification signature")
)

// PaymentStatus is the lifecycle state of a payment order, following the
// gateway's transaction statuses.
type PaymentStatus string

// Payment order statuses.
const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSettlement PaymentStatus = "settlement"
	PaymentDeny       PaymentStatus = "deny"
	PaymentCancel     PaymentStatus = "cancel"
	PaymentExpire     PaymentStatus = "expire"
)

// TokenPackage is a purchasable bundle of tokens.
// swagger:model TokenPackage
type TokenPackage struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Tokens      int    `json:"tokens"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Popular     bool   `json:"popular"`
}

// PaymentOrder is one checkout attempt for a token package.
// swagger:model PaymentOrder
type PaymentOrder struct {
	ID          string        `json:"order_id"`
	UserID      string        `json:"user_id"`
	PackageType string        `json:"package_type"`
	Tokens      int           `json:"tokens"`
	GrossAmount int64         `json:"gross_amount"`
	Status      PaymentStatus `json:"status"`
	SnapToken   string        `json:"snap_token,omitempty"`
	RedirectURL string        `json:"redirect_url,omitempty"`
	SettledAt   *time.Time    `json:"settled_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PaymentNotification is the gateway's server-to-server status callback payload.
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// CheckoutGateway creates tokenized checkout sessions with the external
// payment widget and authenticates its notifications.
type CheckoutGateway interface {
	// CreateTransaction registers the order with the gateway and returns the
	// opaque token the client-side checkout widget consumes, plus a fallback
	// redirect URL.
	CreateTransaction(ctx context.Context, order *PaymentOrder, customer *User) (snapToken, redirectURL string, err error)
	// VerifySignature checks the SHA-512 signature on a notification.
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

// PaymentRepository defines the interface for payment order storage.
type PaymentRepository interface {
	Create(ctx context.Context, order *PaymentOrder) error
	GetByID(ctx context.Context, orderID string) (*PaymentOrder, error)
	// UpdateStatus transitions the order to status and reports whether the
	// row actually changed state, so settlement side effects run exactly once
	// under repeated notifications.
	UpdateStatus(ctx context.Context, orderID string, status PaymentStatus, settledAt *time.Time) (changed bool, err error)
}

// PaymentService defines the business logic for the token purchase flow.
type PaymentService interface {
	Packages(ctx context.Context) []TokenPackage
	CreateCheckout(ctx context.Context, userID, packageType string) (*PaymentOrder, error)
	HandleNotification(ctx context.Context, notif *PaymentNotification) error
}
