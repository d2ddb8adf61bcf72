package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-local-sync/internal/config"
	"github.com/MKhiriev/go-local-sync/internal/logger"
	"github.com/MKhiriev/go-local-sync/models"
)

type httpTransport struct {
	client   *resty.Client
	deviceID string
	logger   *logger.Logger
}

// fetchResponseBody is the wire shape of a fetch reply.
type fetchResponseBody struct {
	Records         []models.IncomingRecord `json:"records"`
	ServerTimestamp int64                   `json:"server_timestamp"`
	CollectionID    string                  `json:"collection_id"`
}

// uploadRequestBody is the wire shape of a batch upload.
type uploadRequestBody struct {
	Records []models.OutgoingRecord `json:"records"`
	Length  int                     `json:"length"`
}

// uploadResponseBody is the wire shape of a batch upload reply.
type uploadResponseBody struct {
	Accepted        []string          `json:"accepted"`
	Failed          map[string]string `json:"failed,omitempty"`
	ServerTimestamp int64             `json:"server_timestamp"`
}

// NewHTTPTransport constructs the HTTP/REST implementation of [Transport].
// It normalises and validates the base URL from cfg.BaseURL and configures
// the underlying client with the resolved base URL and request timeout. The
// device ID is attached to every request so the server can exclude a
// client's own uploads from its fetches.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a URL.
func NewHTTPTransport(cfg config.Adapter, deviceID string, log *logger.Logger) (Transport, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpTransport{
		client:   client,
		deviceID: deviceID,
		logger:   log.GetChildLogger("adapter/http"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchSince implements [Transport] via GET /api/sync/{collection}.
func (h *httpTransport) FetchSince(ctx context.Context, auth models.AuthInfo, collection string, since int64) (models.FetchResponse, error) {
	resp, err := h.authedRequest(ctx, auth).
		SetQueryParam("newer", strconv.FormatInt(since, 10)).
		Get("/api/sync/" + url.PathEscape(collection))
	if err != nil {
		return models.FetchResponse{}, fmt.Errorf("fetch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FetchResponse{}, err
	}

	var body fetchResponseBody
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.FetchResponse{}, fmt.Errorf("decode fetch response: %w", err)
	}

	h.logger.Debug().
		Str("collection", collection).
		Int("records", len(body.Records)).
		Int64("server_timestamp", body.ServerTimestamp).
		Msg("fetched remote records")

	return models.FetchResponse{
		Records:         body.Records,
		ServerTimestamp: body.ServerTimestamp,
		CollectionID:    body.CollectionID,
	}, nil
}

// Upload implements [Transport] via POST /api/sync/{collection}. The
// client's high-water timestamp travels in X-If-Unmodified-Since; a 412
// reply maps to [ErrRemoteConflict].
func (h *httpTransport) Upload(ctx context.Context, auth models.AuthInfo, collection string, ifUnmodifiedSince int64, records []models.OutgoingRecord) (models.UploadResult, error) {
	resp, err := h.authedRequest(ctx, auth).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-If-Unmodified-Since", strconv.FormatInt(ifUnmodifiedSince, 10)).
		SetBody(uploadRequestBody{Records: records, Length: len(records)}).
		Post("/api/sync/" + url.PathEscape(collection))
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResult{}, err
	}

	var body uploadResponseBody
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}

	h.logger.Debug().
		Str("collection", collection).
		Int("sent", len(records)).
		Int("accepted", len(body.Accepted)).
		Int("failed", len(body.Failed)).
		Msg("uploaded outgoing records")

	return models.UploadResult{
		Accepted:        body.Accepted,
		Failed:          body.Failed,
		ServerTimestamp: body.ServerTimestamp,
	}, nil
}

func (h *httpTransport) authedRequest(ctx context.Context, auth models.AuthInfo) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if auth.Token != "" {
		req.SetHeader("Authorization", "Bearer "+auth.Token)
	}
	if h.deviceID != "" {
		req.SetHeader("X-Client-ID", h.deviceID)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPreconditionFailed, http.StatusConflict:
		return ErrRemoteConflict
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
