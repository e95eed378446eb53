package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/roteirolab/roteiro-backend/config"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/types"
	"go.uber.org/zap"
)

// UploadedFile is one vendor-uploaded document page, already converted to an
// image client-side.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Extractor turns uploaded quotation documents into structured trip data.
// The AI protocol behind it is a black box to the rest of the application.
type Extractor interface {
	IsConfigured() bool
	Extract(ctx context.Context, files []UploadedFile) types.ExtractionResult
}

const extractionPrompt = `Extraia os dados da cotação de viagem destas imagens e responda ` +
	`somente com JSON no formato: {"destination","origin","travelDate","returnDate",` +
	`"totalNights","outboundFlight":{"segments":[...],"totalDuration","stops","stopInfo"},` +
	`"returnFlight":{...},"hotel":{...},"totalPrice","passengers","paymentInfo":{...}}. ` +
	`Datas no formato "15 mar", preços como exibidos no documento (ex: "R$ 7.910").`

// ExtractorService calls an OpenAI-compatible vision endpoint.
type ExtractorService struct {
	cfg        *config.ExtractorConfig
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewExtractorService creates the vision-API extractor.
func NewExtractorService(cfg *config.ExtractorConfig) *ExtractorService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ExtractorService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.GetLogger(),
	}
}

// IsConfigured reports whether extraction can be attempted. When false the
// vendor flow stays idle and manual entry applies.
func (s *ExtractorService) IsConfigured() bool {
	return s.cfg.IsConfigured()
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the uploaded pages to the vision endpoint and parses the
// structured reply. Failures are returned as a result carrying a
// human-readable message, never a raw transport error.
func (s *ExtractorService) Extract(ctx context.Context, files []UploadedFile) types.ExtractionResult {
	if !s.IsConfigured() {
		return types.ExtractionResult{Success: false, Error: "Extração automática não configurada"}
	}
	if len(files) == 0 {
		return types.ExtractionResult{Success: false, Error: "Nenhum arquivo enviado"}
	}

	content := []chatContent{{Type: "text", Text: extractionPrompt}}
	for _, f := range files {
		dataURL := fmt.Sprintf("data:%s;base64,%s", f.MimeType,
			base64.StdEncoding.EncodeToString(f.Data))
		content = append(content, chatContent{Type: "image_url", ImageURL: &imageURL{URL: dataURL}})
	}

	reqBody := chatRequest{
		Model:          s.cfg.Model,
		Messages:       []chatMessage{{Role: "user", Content: content}},
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		s.log.Errorw("Failed to marshal extraction request", "error", err)
		return types.ExtractionResult{Success: false, Error: "Não foi possível preparar a extração"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBuffer(payload))
	if err != nil {
		return types.ExtractionResult{Success: false, Error: "Não foi possível preparar a extração"}
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Errorw("Extraction request failed", "error", err)
		return types.ExtractionResult{Success: false, Error: "Falha ao conectar ao serviço de extração"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warnw("Extraction API returned non-OK status", "status", resp.StatusCode)
		return types.ExtractionResult{Success: false,
			Error: "O serviço de extração retornou um erro, tente novamente"}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil || len(chatResp.Choices) == 0 {
		s.log.Errorw("Failed to decode extraction response", "error", err)
		return types.ExtractionResult{Success: false, Error: "Resposta inesperada do serviço de extração"}
	}

	data, err := parseExtractedData(chatResp.Choices[0].Message.Content)
	if err != nil {
		s.log.Errorw("Extracted payload failed to parse", "error", err)
		return types.ExtractionResult{Success: false,
			Error: "Não foi possível interpretar os dados extraídos do documento"}
	}

	return types.ExtractionResult{Success: true, Data: data}
}

// parseExtractedData decodes the model's JSON payload. Destination is the
// one required field; everything else is optional.
func parseExtractedData(content string) (*types.ExtractedTripData, error) {
	// Some models wrap JSON in markdown fences despite instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var data types.ExtractedTripData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("decoding extracted data: %w", err)
	}
	if strings.TrimSpace(data.Destination) == "" {
		return nil, fmt.Errorf("extracted data missing destination")
	}
	return &data, nil
}
