package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/messaging"
)

// ReceiptHandler reacts to order.created events: it mails the shopper a
// receipt through the email service and then advances the order from
// pending to processing through the storefront API, authenticating with
// a service token.
type ReceiptHandler struct {
	emailServiceURL string
	apiURL          string
	serviceToken    string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewReceiptHandler(emailServiceURL, apiURL, serviceToken string, client *http.Client, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		emailServiceURL: emailServiceURL,
		apiURL:          apiURL,
		serviceToken:    serviceToken,
		httpClient:      client,
		logger:          logger,
	}
}

// Handle mails a receipt and advances the order to processing. An
// unmarshalable payload is reported as permanent so the consumer drops
// it; email or API failures are left retryable.
func (h *ReceiptHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal order created event: %w", err))
	}

	h.logger.Info("processing order created event", "order_id", event.OrderID, "user_id", event.UserID)

	if err := h.sendReceipt(ctx, event); err != nil {
		h.logger.Error("failed to send receipt", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send receipt: %w", err)
	}

	if err := h.advanceOrderStatus(ctx, event.OrderID); err != nil {
		h.logger.Error("failed to advance order status", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("advance order status: %w", err)
	}

	h.logger.Info("order notification complete", "order_id", event.OrderID)
	return nil
}

func (h *ReceiptHandler) sendReceipt(ctx context.Context, event domain.OrderCreatedEvent) error {
	var lines strings.Builder
	fmt.Fprintf(&lines, "Thanks for your order %s!\n\n", event.OrderID)
	for _, item := range event.Items {
		fmt.Fprintf(&lines, "%d x %s - $%d.%02d\n", item.Quantity, item.Name, item.Price/100, item.Price%100)
	}
	fmt.Fprintf(&lines, "\nTotal: $%d.%02d\n", event.Total/100, event.Total%100)

	body := map[string]string{
		"to":      event.UserID + "@example.com",
		"subject": "Your Galaxy Store receipt: " + event.OrderID,
		"body":    lines.String(),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

func (h *ReceiptHandler) advanceOrderStatus(ctx context.Context, orderID string) error {
	data, err := json.Marshal(map[string]string{
		"status": string(domain.OrderStatusProcessing),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.apiURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.serviceToken)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront api returned status %d", resp.StatusCode)
	}

	return nil
}
