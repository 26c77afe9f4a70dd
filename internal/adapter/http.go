// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Egor Volkov

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ewolkov/sketchsync/internal/config"
	"github.com/ewolkov/sketchsync/internal/logger"
	"github.com/ewolkov/sketchsync/internal/utils"
	"github.com/ewolkov/sketchsync/models"
)

const ifMatchVersionHeader = "If-Match-Version"

type httpSceneStore struct {
	client *utils.HTTPClient

	notFoundThreshold int

	logger *logger.Logger
}

// NewHTTPSceneStore constructs the HTTP implementation of [SceneStore]. It
// normalises and validates the base URL from remoteCfg.BaseURL and configures
// the underlying client with the resolved base URL and request timeout.
//
// Returns an error if remoteCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPSceneStore(remoteCfg config.Remote, logger *logger.Logger) (SceneStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(remoteCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(remoteCfg.RequestTimeout)

	threshold := remoteCfg.NotFoundThreshold
	if threshold <= 0 {
		threshold = 400
	}

	return &httpSceneStore{client: client, notFoundThreshold: threshold, logger: logger}, nil
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

// FetchScene implements [SceneStore]. It GETs /scenes/{roomID} and decodes
// the JSON envelope. A 404 maps to [ErrSceneNotFound].
func (h *httpSceneStore) FetchScene(ctx context.Context, roomID string) (*models.SceneDocument, error) {
	var doc models.SceneDocument

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&doc).
		SetPathParam("roomID", roomID).
		Get("/scenes/{roomID}")
	if err != nil {
		return nil, fmt.Errorf("fetch scene request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &doc, nil
}

// PutScene implements [SceneStore]. It POSTs the whole envelope to
// /scenes/{roomID}, replacing any previous document.
func (h *httpSceneStore) PutScene(ctx context.Context, roomID string, doc models.SceneDocument) error {
	return h.putScene(ctx, roomID, doc, nil)
}

// PutSceneIf implements [SceneStore]. The base version travels in the
// If-Match-Version header; the server answers 409 on mismatch, which maps to
// [ErrVersionConflict].
func (h *httpSceneStore) PutSceneIf(ctx context.Context, roomID string, doc models.SceneDocument, baseVersion models.Version) error {
	return h.putScene(ctx, roomID, doc, &baseVersion)
}

func (h *httpSceneStore) putScene(ctx context.Context, roomID string, doc models.SceneDocument, baseVersion *models.Version) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("roomID", roomID).
		SetBody(doc)

	if baseVersion != nil {
		req.SetHeader(ifMatchVersionHeader, strconv.FormatInt(int64(*baseVersion), 10))
	}

	resp, err := req.Post("/scenes/{roomID}")
	if err != nil {
		return fmt.Errorf("put scene request: %w", err)
	}

	return mapHTTPError(resp)
}

// UploadFile implements [SceneStore]. The body is the raw sealed blob; the
// server stores it verbatim.
func (h *httpSceneStore) UploadFile(ctx context.Context, prefix, id string, data []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		SetPathParams(map[string]string{"prefix": prefix, "id": id}).
		Post("/{prefix}/{id}")
	if err != nil {
		return fmt.Errorf("upload file request: %w", err)
	}

	return mapHTTPError(resp)
}

// DownloadFile implements [SceneStore]. Success is any status below the
// configured not-found threshold; at or above it the blob counts as not yet
// uploaded.
func (h *httpSceneStore) DownloadFile(ctx context.Context, prefix, id string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("alt", "media").
		SetPathParams(map[string]string{"prefix": prefix, "id": id}).
		Get("/{prefix}/{id}")
	if err != nil {
		return nil, fmt.Errorf("download file request: %w", err)
	}

	if resp.StatusCode() >= h.notFoundThreshold {
		return nil, fmt.Errorf("%w: %s/%s status %d", ErrFileNotFound, prefix, id, resp.StatusCode())
	}

	return resp.Body(), nil
}
