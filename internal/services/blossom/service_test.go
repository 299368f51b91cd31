package blossom_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/11bDev/yall-sub001/internal/crypto"
	"github.com/11bDev/yall-sub001/internal/domain"
	"github.com/11bDev/yall-sub001/internal/logging"
	protocol "github.com/11bDev/yall-sub001/internal/protocol/nostr"
	"github.com/11bDev/yall-sub001/internal/services/blossom"
)

func TestUpload(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	blob := []byte("not actually a png")
	sum := sha256.Sum256(blob)
	wantHash := hex.EncodeToString(sum[:])

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Nostr ") {
			t.Errorf("Authorization = %q, want Nostr scheme", header)
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Nostr "))
		if err != nil {
			t.Errorf("decode authorization: %v", err)
		}
		var auth protocol.Event
		if err := json.Unmarshal(raw, &auth); err != nil {
			t.Errorf("unmarshal authorization event: %v", err)
		}
		if auth.Kind != protocol.KindUploadAuth {
			t.Errorf("auth kind = %d, want %d", auth.Kind, protocol.KindUploadAuth)
		}
		if err := auth.Validate(); err != nil {
			t.Errorf("authorization event invalid: %v", err)
		}
		if auth.PubKey != kp.PublicKey {
			t.Errorf("auth signed by %s, want %s", auth.PubKey, kp.PublicKey)
		}
		var hashTag bool
		for _, tag := range auth.Tags {
			if len(tag) == 2 && tag[0] == "x" && tag[1] == wantHash {
				hashTag = true
			}
		}
		if !hashTag {
			t.Errorf("authorization missing x tag for %s", wantHash)
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != string(blob) {
			t.Errorf("body mismatch: %q", body)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"url":    "https://media.example/" + wantHash + ".png",
			"sha256": wantHash,
		})
	}))
	defer srv.Close()

	up := blossom.New(srv.URL, srv.Client(), logging.NewNop())
	url, err := up.Upload(context.Background(), kp.PrivateKey, blob, "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(url, wantHash) {
		t.Fatalf("url = %q, want blob hash in path", url)
	}
}

func TestUpload_Rejected(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	up := blossom.New(srv.URL, srv.Client(), logging.NewNop())
	_, err = up.Upload(context.Background(), kp.PrivateKey, []byte("blob"), "")
	if domain.Classify(err) != domain.ErrorAuthentication {
		t.Fatalf("want authenticationError, got %v", err)
	}
}

func TestUpload_HashMismatch(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"url":    "https://media.example/blob.png",
			"sha256": strings.Repeat("0", 64),
		})
	}))
	defer srv.Close()

	up := blossom.New(srv.URL, srv.Client(), logging.NewNop())
	if _, err := up.Upload(context.Background(), kp.PrivateKey, []byte("blob"), ""); err == nil {
		t.Fatal("want error when server reports a different hash")
	}
}

func TestUpload_EmptyBlob(t *testing.T) {
	up := blossom.New("https://media.example", http.DefaultClient, logging.NewNop())
	if _, err := up.Upload(context.Background(), "deadbeef", nil, ""); err == nil {
		t.Fatal("want error for empty blob")
	}
}
