package blossom

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	protocol "github.com/11bDev/yall-sub001/internal/protocol/nostr"
)

// How long an upload authorization stays valid. Blossom servers reject
// events whose expiration tag is in the past, so this only needs to
// cover the request itself.
const authValidity = 5 * time.Minute

// Uploader pushes blobs to a Blossom media server.
type Uploader struct {
	server string
	http   *http.Client
	log    logging.Logger
}

// New returns an Uploader for the given server base URL.
func New(server string, client *http.Client, log logging.Logger) *Uploader {
	return &Uploader{
		server: strings.TrimRight(server, "/"),
		http:   client,
		log:    log,
	}
}

// Upload pushes blob to the server, signing the authorization with
// privHex. It returns the public URL the server assigns to the blob.
func (u *Uploader) Upload(ctx context.Context, privHex string, blob []byte, contentType string) (string, error) {
	if len(blob) == 0 {
		return "", fmt.Errorf("empty blob")
	}
	sum := sha256.Sum256(blob)
	blobHash := hex.EncodeToString(sum[:])

	auth, err := protocol.BuildUploadAuth(privHex, "upload", blobHash, time.Now().Add(authValidity))
	if err != nil {
		return "", fmt.Errorf("build upload authorization: %w", err)
	}
	header, err := protocol.AuthorizationHeader(auth)
	if err != nil {
		return "", fmt.Errorf("encode upload authorization: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.server+"/upload", bytes.NewReader(blob))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", header)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := u.http.Do(req)
	if err != nil {
		return "", domain.WrapPlatformError(domain.ErrorNetwork, err, "upload failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := domain.ErrorServer
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = domain.ErrorAuthentication
		}
		return "", domain.NewPlatformError(kind, "server returned %s", resp.Status)
	}

	var descriptor struct {
		URL    string `json:"url"`
		SHA256 string `json:"sha256"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		return "", domain.WrapPlatformError(domain.ErrorServer, err, "malformed blob descriptor")
	}
	if descriptor.URL == "" {
		return "", domain.NewPlatformError(domain.ErrorServer, "blob descriptor missing url")
	}
	if descriptor.SHA256 != "" && descriptor.SHA256 != blobHash {
		return "", domain.NewPlatformError(domain.ErrorServer,
			"server hash %s does not match blob %s", descriptor.SHA256, blobHash)
	}

	u.log.WithFields(logging.Fields{
		"sha256": blobHash,
		"url":    descriptor.URL,
	}).Debug("blob uploaded")
	return descriptor.URL, nil
}
