package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/roteirolab/roteiro-backend/config"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/types"
)

const shareEmailTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>Sua proposta de viagem está pronta, {{.ClientName}}!</h2>
  <p>Preparamos uma apresentação exclusiva com todos os detalhes do seu roteiro.</p>
  <p>
    <a href="{{.PreviewURL}}" style="display:inline-block;padding:12px 24px;
       background:#0f766e;color:#ffffff;border-radius:8px;text-decoration:none;">
      Ver minha viagem
    </a>
  </p>
  <p style="color:#6b7280;font-size:12px;">
    Se o botão não funcionar, copie este link: {{.PreviewURL}}
  </p>
</body>
</html>`

// ShareService emails the public presentation link to the client.
type ShareService struct {
	cfg    *config.EmailConfig
	client *resend.Client
}

// NewShareService creates the share email sender.
func NewShareService(cfg *config.EmailConfig) *ShareService {
	return &ShareService{
		cfg:    cfg,
		client: resend.NewClient(cfg.ResendAPIKey),
	}
}

// IsConfigured reports whether emails can be sent.
func (s *ShareService) IsConfigured() bool {
	return s.cfg.ResendAPIKey != "" && s.cfg.FromAddress != ""
}

// SendQuoteLink sends the share email for a quote's public link.
func (s *ShareService) SendQuoteLink(ctx context.Context, toEmail string, quote *types.Quote, links types.QuoteLinks) error {
	log := logger.GetLogger()

	if !s.IsConfigured() {
		return fmt.Errorf("share email service not configured")
	}

	tmpl, err := template.New("share").Parse(shareEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse share template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, map[string]string{
		"ClientName": quote.ClientName,
		"PreviewURL": links.PreviewURL,
	}); err != nil {
		return fmt.Errorf("failed to render share template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Sua viagem para %s", quote.DestinationKey),
		Html:    htmlContent.String(),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Errorw("Failed to send share email", "quoteId", quote.ID, "error", err)
		return fmt.Errorf("failed to send share email: %w", err)
	}

	log.Infow("Share email sent", "quoteId", quote.ID, "emailId", sent.Id)
	return nil
}
