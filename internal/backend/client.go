// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package backend is the HTTP client for the NAMSA registry.

The registry owns profiles, documents and lookup tables. Every call is a
single-shot request made with the artist's own bearer token (taken from the
context via [ctxutil.GetAccessToken]); there is no retry, caching or
batching here.

Each document category has its own upload endpoint and its own method, so
the category-to-endpoint mapping stays fixed and explicit.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joelnust/namsa/internal/lookup"
	"github.com/joelnust/namsa/internal/platform/constants"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/profile"
	"github.com/joelnust/namsa/pkg/filename"
)

// # Registry Endpoints

const (
	pathTitles           = "/api/lookup/titles"
	pathBankNames        = "/api/lookup/bank-names"
	pathMaritalStatuses  = "/api/lookup/marital-statuses"
	pathMemberCategories = "/api/lookup/member-categories"
	pathGenders          = "/api/lookup/genders"

	pathDocuments = "/api/artist/documents"
	pathProfile   = "/api/artist/profile"

	pathPassportPhoto          = "/api/artist/upload/passport-photo"
	pathIDDocument             = "/api/artist/upload/id-document"
	pathBankConfirmationLetter = "/api/artist/upload/bank-confirmation-letter"
	pathProofOfPayment         = "/api/artist/upload/proof-of-payment"

	pathHealth = "/actuator/health"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// # Metrics

var registryCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "portal_registry_call_duration_seconds",
		Help:    "Duration of calls from the artist portal to the registry.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"op", "outcome"},
)

// # Client

// Client calls the registry API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New creates a registry client.
//
// baseURL is the registry root (e.g. http://registry:8081); timeout bounds
// every single call including uploads.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With(slog.String("component", "registry_client")),
	}
}

// # Lookup Tables

// GetTitles returns the title table (Mr, Ms, Dr, ...).
func (c *Client) GetTitles(ctx context.Context) (lookup.Table, error) {
	var items []wireTitleName
	if err := c.getJSON(ctx, "get_titles", pathTitles, &items); err != nil {
		return nil, err
	}
	return tableOf(items, func(item wireTitleName) lookup.Entry { return lookup.Entry{ID: item.ID, Label: item.TitleName} }), nil
}

// GetBankNames returns the bank table.
func (c *Client) GetBankNames(ctx context.Context) (lookup.Table, error) {
	var items []wireBankName
	if err := c.getJSON(ctx, "get_bank_names", pathBankNames, &items); err != nil {
		return nil, err
	}
	return tableOf(items, func(item wireBankName) lookup.Entry { return lookup.Entry{ID: item.ID, Label: item.BankName} }), nil
}

// GetMaritalStatuses returns the marital status table.
func (c *Client) GetMaritalStatuses(ctx context.Context) (lookup.Table, error) {
	var items []wireMaritalStatus
	if err := c.getJSON(ctx, "get_marital_statuses", pathMaritalStatuses, &items); err != nil {
		return nil, err
	}
	return tableOf(items, func(item wireMaritalStatus) lookup.Entry { return lookup.Entry{ID: item.ID, Label: item.Status} }), nil
}

// GetMemberCategories returns the membership category table.
func (c *Client) GetMemberCategories(ctx context.Context) (lookup.Table, error) {
	var items []wireMemberCategory
	if err := c.getJSON(ctx, "get_member_categories", pathMemberCategories, &items); err != nil {
		return nil, err
	}
	return tableOf(items, func(item wireMemberCategory) lookup.Entry { return lookup.Entry{ID: item.ID, Label: item.Category} }), nil
}

// GetGenders returns the gender table.
func (c *Client) GetGenders(ctx context.Context) (lookup.Table, error) {
	var items []wireGender
	if err := c.getJSON(ctx, "get_genders", pathGenders, &items); err != nil {
		return nil, err
	}
	return tableOf(items, func(item wireGender) lookup.Entry { return lookup.Entry{ID: item.ID, Label: item.GenderName} }), nil
}

// # Profile

// GetDocuments returns the artist's profile and documents.
//
// The registry answers 404 when the artist has no profile yet; callers test
// for that with [IsNotFound].
func (c *Client) GetDocuments(ctx context.Context) (*profile.Bundle, error) {
	var payload wireDocuments
	if err := c.getJSON(ctx, "get_documents", pathDocuments, &payload); err != nil {
		return nil, err
	}
	return payload.toBundle(), nil
}

// CreateProfile submits a new profile and returns the registry's record.
func (c *Client) CreateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error) {
	return c.sendProfile(ctx, "create_profile", http.MethodPost, draft)
}

// UpdateProfile replaces the artist's profile and returns the registry's record.
func (c *Client) UpdateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error) {
	return c.sendProfile(ctx, "update_profile", http.MethodPut, draft)
}

func (c *Client) sendProfile(ctx context.Context, op, method string, draft profile.Draft) (*profile.Record, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("registry %s: encode draft: %w", op, err)
	}

	var member wireMember
	if err := c.do(ctx, op, method, pathProfile, "application/json", bytes.NewReader(body), &member); err != nil {
		return nil, err
	}
	return member.toRecord(), nil
}

// # Document Uploads

// UploadPassportPhoto uploads the artist's passport photo.
func (c *Client) UploadPassportPhoto(ctx context.Context, file *profile.File, title string) error {
	return c.upload(ctx, "upload_passport_photo", pathPassportPhoto, "imageTitle", file, title)
}

// UploadIDDocument uploads the artist's identity document.
func (c *Client) UploadIDDocument(ctx context.Context, file *profile.File, title string) error {
	return c.upload(ctx, "upload_id_document", pathIDDocument, "documentTitle", file, title)
}

// UploadBankConfirmationLetter uploads the artist's bank confirmation letter.
func (c *Client) UploadBankConfirmationLetter(ctx context.Context, file *profile.File, title string) error {
	return c.upload(ctx, "upload_bank_confirmation_letter", pathBankConfirmationLetter, "documentTitle", file, title)
}

// UploadProofOfPayment uploads the artist's proof of membership payment.
func (c *Client) UploadProofOfPayment(ctx context.Context, file *profile.File, title string) error {
	return c.upload(ctx, "upload_proof_of_payment", pathProofOfPayment, "documentTitle", file, title)
}

// upload sends file as a multipart form with the title in titleField.
func (c *Client) upload(ctx context.Context, op, path, titleField string, file *profile.File, title string) error {
	if file == nil {
		return fmt.Errorf("registry %s: no file", op)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	partHeader := make(textproto.MIMEHeader)
	// Sanitized names never contain quotes, so no escaping is needed.
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename.Sanitize(file.Name)))
	partHeader.Set("Content-Type", contentType)

	part, err := form.CreatePart(partHeader)
	if err != nil {
		return fmt.Errorf("registry %s: create file part: %w", op, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("registry %s: write file part: %w", op, err)
	}
	if err := form.WriteField(titleField, title); err != nil {
		return fmt.Errorf("registry %s: write title: %w", op, err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("registry %s: close form: %w", op, err)
	}

	return c.do(ctx, op, http.MethodPost, path, form.FormDataContentType(), &body, nil)
}

// # Health

// Ping reports whether the registry answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, pathHealth, "", nil, nil)
}

// # Transport

func (c *Client) getJSON(ctx context.Context, op, path string, target any) error {
	return c.do(ctx, op, http.MethodGet, path, "", nil, target)
}

// do performs one request and decodes a 2xx body into target (if non-nil).
// Non-2xx answers become [*Error] carrying the registry's message.
func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, target any) (err error) {
	startTime := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		registryCallDuration.WithLabelValues(op, outcome).Observe(time.Since(startTime).Seconds())
	}()

	if body == nil {
		body = http.NoBody
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("registry %s: build request: %w", op, err)
	}

	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if token := ctxutil.GetAccessToken(ctx); token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("registry %s: %w", op, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		registryError := &Error{Op: op, StatusCode: response.StatusCode}

		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		var payload wireError
		if json.Unmarshal(raw, &payload) == nil {
			registryError.Message = payload.Message
		}

		c.logger.Debug("registry_call_rejected",
			slog.String("op", op),
			slog.Int("status", response.StatusCode),
			slog.String("message", registryError.Message),
		)
		return registryError
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("registry %s: decode response: %w", op, err)
	}

	return nil
}
