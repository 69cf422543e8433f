package face

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Degenerate detector outcomes. These are distinct from a failed identity
// match and must surface to the caller as distinct signals.
var (
	ErrNoFaceDetected        = errors.New("no face detected in image")
	ErrMultipleFacesDetected = errors.New("multiple faces detected in image")

	// ErrCapabilityUnavailable is returned when no extractor has been
	// configured for this deployment.
	ErrCapabilityUnavailable = errors.New("face verification capability unavailable")
)

// ExtractionError wraps an underlying image-processing failure from the
// embedding service. Treated as transient and user-retryable.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return "face extraction failed: " + e.Message
}

// Extractor maps an image to a fixed-length face embedding, or reports a
// degenerate detection outcome.
type Extractor interface {
	Extract(ctx context.Context, imageBytes []byte) ([]float64, error)
}

// HTTPExtractor calls an external embedding service (DeepFace behind a REST
// shim). The service answers with every embedding it detected; zero or more
// than one face is classified here.
type HTTPExtractor struct {
	baseURL   string
	modelName string
	client    *http.Client
}

func NewHTTPExtractor(baseURL, modelName string, timeout time.Duration) *HTTPExtractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPExtractor{
		baseURL:   baseURL,
		modelName: modelName,
		client:    &http.Client{Timeout: timeout},
	}
}

type representResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Error      string      `json:"error,omitempty"`
}

// Extract implements Extractor.
func (e *HTTPExtractor) Extract(ctx context.Context, imageBytes []byte) ([]float64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model_name", e.modelName); err != nil {
		return nil, fmt.Errorf("failed to write model_name field: %w", err)
	}

	part, err := writer.CreateFormFile("image", uuid.NewString()+".jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(imageBytes); err != nil {
		return nil, fmt.Errorf("failed to write image bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/represent", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &ExtractionError{Message: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExtractionError{Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ExtractionError{Message: fmt.Sprintf("extractor returned status %d", resp.StatusCode)}
	}

	var result representResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ExtractionError{Message: "malformed extractor response: " + err.Error()}
	}
	if result.Error != "" {
		return nil, &ExtractionError{Message: result.Error}
	}

	switch len(result.Embeddings) {
	case 0:
		return nil, ErrNoFaceDetected
	case 1:
		return result.Embeddings[0], nil
	default:
		return nil, ErrMultipleFacesDetected
	}
}
