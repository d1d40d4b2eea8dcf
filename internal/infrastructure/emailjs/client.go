package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hugoldd/SemaineDeLindustrie/internal/config"
	"github.com/hugoldd/SemaineDeLindustrie/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	cfg        *config.MailConfig
	logger     *zap.Logger
}

// NewEmailJSClient creates a mail client backed by the EmailJS REST API.
func NewEmailJSClient(cfg *config.MailConfig, logger *zap.Logger) repository.MailRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		cfg:    cfg,
		logger: logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *client) SendInvite(ctx context.Context, email, fullName, link string) error {
	return c.send(ctx, c.cfg.InviteTemplateID, map[string]string{
		"to_email":   email,
		"to_name":    fullName,
		"setup_link": link,
		"site_url":   c.cfg.PublicSiteURL,
	})
}

func (c *client) SendPasswordReset(ctx context.Context, email, link string) error {
	return c.send(ctx, c.cfg.ResetTemplateID, map[string]string{
		"to_email":   email,
		"reset_link": link,
		"site_url":   c.cfg.PublicSiteURL,
	})
}

func (c *client) SendBookingNotice(ctx context.Context, email, companyName, status, startISO string) error {
	return c.send(ctx, c.cfg.BookingTemplateID, map[string]string{
		"to_email":     email,
		"company_name": companyName,
		"status":       status,
		"visit_start":  startISO,
		"site_url":     c.cfg.PublicSiteURL,
	})
}

func (c *client) send(ctx context.Context, templateID string, params map[string]string) error {
	payload := sendRequest{
		ServiceID:      c.cfg.EmailJSServiceID,
		TemplateID:     templateID,
		UserID:         c.cfg.EmailJSPublicKey,
		AccessToken:    c.cfg.EmailJSPrivateKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("Failed to marshal mail payload", zap.Error(err))
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	url := c.cfg.EmailJSBaseURL + "/api/v1.0/email/send"

	c.logger.Debug("Calling EmailJS API",
		zap.String("template_id", templateID),
		zap.String("to", params["to_email"]))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("EmailJS API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("emailjs API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug("EmailJS API call successful",
		zap.String("template_id", templateID))

	return nil
}
