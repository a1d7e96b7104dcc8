package openai_provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 1 {
			t.Fatalf("unexpected request %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "completion text"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, CompletionModel: "gpt-4o-mini"})
	got, err := c.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got != "completion text" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestChatCompletionNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatalf("expected an error for an empty choices array")
	}
}

func TestChatCompletionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatalf("expected an error for a non-200 status")
	}
}

func TestCreateEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		inputs, _ := req["input"].([]interface{})
		if len(inputs) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(inputs))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"object": "embedding", "embedding": []float32{1, 0}, "index": 0},
				{"object": "embedding", "embedding": []float32{0, 1}, "index": 1},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, EmbeddingModel: "text-embedding-3-small"})
	vecs, err := c.CreateEmbedding(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("CreateEmbedding: %v", err)
	}
	if len(vecs) != 2 || vecs[0][0] != 1 || vecs[1][1] != 1 {
		t.Fatalf("unexpected vectors %#v", vecs)
	}
}

func TestCreateEmbeddingEmptyInput(t *testing.T) {
	c := NewClient(Config{APIKey: "k"})
	vecs, err := c.CreateEmbedding(context.Background(), nil)
	if err != nil || vecs != nil {
		t.Fatalf("expected nil, nil for empty input, got %#v, %v", vecs, err)
	}
}
