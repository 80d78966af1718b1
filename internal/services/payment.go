package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seekers/internal/domain"
)

// tokenPackages is the fixed purchasable catalog. Prices are in IDR.
var tokenPackages = []domain.TokenPackage{
	{Type: "starter", Name: "Starter Pack", Tokens: 10, Price: 25000, Description: "10 tokens for trying out AI features"},
	{Type: "value", Name: "Value Pack", Tokens: 30, Price: 60000, Description: "30 tokens at a better rate", Popular: true},
	{Type: "pro", Name: "Pro Pack", Tokens: 75, Price: 125000, Description: "75 tokens for heavy users"},
}

type paymentService struct {
	paymentRepo  domain.PaymentRepository
	userRepo     domain.UserRepository
	gateway      domain.CheckoutGateway
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewPaymentService creates a PaymentService over the order repository, the
// checkout gateway, and the user repository (for token crediting).
func NewPaymentService(
	paymentRepo domain.PaymentRepository,
	userRepo domain.UserRepository,
	gateway domain.CheckoutGateway,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *paymentService) Packages(ctx context.Context) []domain.TokenPackage {
	packages := make([]domain.TokenPackage, len(tokenPackages))
	copy(packages, tokenPackages)
	return packages
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID, packageType string) (*domain.PaymentOrder, error) {
	pkg, err := findPackage(packageType)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := time.Now()
	order := &domain.PaymentOrder{
		ID:          "SEEKERS-" + uuid.NewString(),
		UserID:      userID,
		PackageType: pkg.Type,
		Tokens:      pkg.Tokens,
		GrossAmount: pkg.Price,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	snapToken, redirectURL, err := s.gateway.CreateTransaction(ctx, order, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout transaction: %w", err)
	}
	order.SnapToken = snapToken
	order.RedirectURL = redirectURL

	if err := s.paymentRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	return order, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, notif *domain.PaymentNotification) error {
	if !s.gateway.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		return domain.ErrInvalidSignature
	}

	status, settled := mapTransactionStatus(notif.TransactionStatus, notif.FraudStatus)
	if status == domain.PaymentPending {
		// Nothing to transition yet.
		return nil
	}

	var settledAt *time.Time
	if settled {
		now := time.Now()
		settledAt = &now
	}
	changed, err := s.paymentRepo.UpdateStatus(ctx, notif.OrderID, status, settledAt)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !changed || !settled {
		// Replayed notification or a terminal failure status; no credit.
		return nil
	}

	order, err := s.paymentRepo.GetByID(ctx, notif.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load settled order: %w", err)
	}
	if _, err := s.userRepo.AdjustTokenBalance(ctx, order.UserID, order.Tokens); err != nil {
		return fmt.Errorf("failed to credit tokens for order %s: %w", order.ID, err)
	}
	s.logger.Info("payment settled", "order_id", order.ID, "user_id", order.UserID, "tokens", order.Tokens)

	s.sendReceipt(ctx, order)
	return nil
}

// sendReceipt is best-effort; the settlement is already recorded.
func (s *paymentService) sendReceipt(ctx context.Context, order *domain.PaymentOrder) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("failed to load user for receipt email", "order_id", order.ID, "error", err)
		return
	}
	pkg, err := findPackage(order.PackageType)
	if err != nil {
		s.logger.Warn("settled order references unknown package", "order_id", order.ID, "package", order.PackageType)
		return
	}
	data := &domain.ReceiptEmailData{
		Email:       user.Email,
		Name:        user.Name,
		OrderID:     order.ID,
		PackageName: pkg.Name,
		Tokens:      order.Tokens,
		GrossAmount: order.GrossAmount,
	}
	if err := s.emailService.SendReceipt(ctx, data); err != nil {
		s.logger.Warn("failed to send receipt email", "order_id", order.ID, "error", err)
	}
}

// mapTransactionStatus folds the gateway's transaction statuses into order
// statuses. settled reports whether tokens should be credited.
func mapTransactionStatus(transactionStatus, fraudStatus string) (status domain.PaymentStatus, settled bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return domain.PaymentSettlement, true
		}
		return domain.PaymentPending, false
	case "settlement":
		return domain.PaymentSettlement, true
	case "deny":
		return domain.PaymentDeny, false
	case "cancel":
		return domain.PaymentCancel, false
	case "expire":
		return domain.PaymentExpire, false
	default:
		return domain.PaymentPending, false
	}
}

func findPackage(packageType string) (domain.TokenPackage, error) {
	for _, pkg := range tokenPackages {
		if pkg.Type == packageType {
			return pkg, nil
		}
	}
	return domain.TokenPackage{}, domain.ErrPackageNotFound
}
