// Remote document store implementation of [DocumentStore]
//
// One collection of favorites documents keyed by account email. The store
// exposes plain REST document semantics: GET/PUT (with merge) per document,
// PATCH field transforms (union/remove), and DELETE.

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// DocStoreService implements [DocumentStore] over HTTP.
// Requests carry the store API key; when a [TokenProvider] is attached,
// the current user's bearer token is sent as well.
type DocStoreService struct {
	baseURL    string
	apiKey     string
	collection string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewDocStoreService creates a document store client from configuration.
// tokens may be nil for unauthenticated (rule-less) stores.
func NewDocStoreService(cfg shared.StoreConfig, tokens TokenProvider, client *http.Client) (*DocStoreService, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: store base_url", shared.ErrMissingCredentials)
	}
	if cfg.Collection == "" {
		cfg.Collection = "favorites"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &DocStoreService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		httpClient: client,
		tokens:     tokens,
	}, nil
}

// Name returns the service name.
func (d *DocStoreService) Name() string {
	return "DocumentStore"
}

// fieldTransform is the PATCH body for array-union/array-remove updates.
// Exactly one of Union or Remove is populated.
type fieldTransform struct {
	Field  string   `json:"field"`
	Union  []string `json:"union,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

func (d *DocStoreService) documentURL(key string) string {
	u := fmt.Sprintf("%s/%s/%s", d.baseURL, d.collection, url.PathEscape(key))
	if d.apiKey != "" {
		u += "?key=" + url.QueryEscape(d.apiKey)
	}
	return u
}

// doRequest performs one document-store request and decodes the response
// into result when non-nil.
func (d *DocStoreService) doRequest(ctx context.Context, method, docURL string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, docURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.tokens != nil {
		token, err := d.tokens.Token(ctx)
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return shared.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: document store rejected credentials", shared.ErrNotAuthenticated)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: store status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetDocument fetches the favorites document for key.
// Returns shared.ErrNotFound when the document does not exist.
func (d *DocStoreService) GetDocument(ctx context.Context, key string) (*models.FavoritesDocument, error) {
	var doc models.FavoritesDocument
	if err := d.doRequest(ctx, http.MethodGet, d.documentURL(key), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SetDocument creates or replaces the document for key. With merge, fields
// absent from doc are left untouched on the stored document; first-time
// creation therefore seeds only the populated category.
func (d *DocStoreService) SetDocument(ctx context.Context, key string, doc *models.FavoritesDocument, merge bool) error {
	docURL := d.documentURL(key)
	if merge {
		sep := "?"
		if strings.Contains(docURL, "?") {
			sep = "&"
		}
		docURL += sep + "merge=true"
	}
	return d.doRequest(ctx, http.MethodPut, docURL, doc, nil)
}

// ArrayUnion adds ids to the category field with set semantics.
// Returns shared.ErrNotFound when the document does not exist.
func (d *DocStoreService) ArrayUnion(ctx context.Context, key string, category models.Category, ids ...string) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	transform := fieldTransform{Field: string(category), Union: ids}
	return d.doRequest(ctx, http.MethodPatch, d.documentURL(key), transform, nil)
}

// ArrayRemove removes ids from the category field.
// Returns shared.ErrNotFound when the document does not exist.
func (d *DocStoreService) ArrayRemove(ctx context.Context, key string, category models.Category, ids ...string) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	transform := fieldTransform{Field: string(category), Remove: ids}
	return d.doRequest(ctx, http.MethodPatch, d.documentURL(key), transform, nil)
}

// DeleteDocument removes the document for key. Deleting an absent document
// is treated as success.
func (d *DocStoreService) DeleteDocument(ctx context.Context, key string) error {
	err := d.doRequest(ctx, http.MethodDelete, d.documentURL(key), nil, nil)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}
