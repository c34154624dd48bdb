package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEnsureModel_AlreadyPresent(t *testing.T) {
	var pulled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Write(tagsJSON("nomic-embed-text:latest"))
		case "/api/pull":
			pulled = true
			json.NewEncoder(w).Encode(PullProgress{Status: "success"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	c := New(srv.URL)
	if err := EnsureModel(context.Background(), c, "nomic-embed-text", &out); err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}

	if pulled {
		t.Error("EnsureModel pulled a model that was already present")
	}
	if !strings.Contains(out.String(), "model nomic-embed-text: ready") {
		t.Errorf("output = %q, want ready line", out.String())
	}
}

func TestEnsureModel_PullsMissing(t *testing.T) {
	var pulled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Write(tagsJSON("mistral:latest"))
		case "/api/pull":
			pulled = true
			var reqBody pullRequest
			json.NewDecoder(r.Body).Decode(&reqBody)
			if reqBody.Name != "llama3.2" {
				t.Errorf("pull model = %q, want %q", reqBody.Name, "llama3.2")
			}
			enc := json.NewEncoder(w)
			enc.Encode(PullProgress{Status: "downloading", Total: 1000, Completed: 500})
			enc.Encode(PullProgress{Status: "success"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	c := New(srv.URL)
	if err := EnsureModel(context.Background(), c, "llama3.2", &out); err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}

	if !pulled {
		t.Error("EnsureModel did not pull the missing model")
	}
	got := out.String()
	if !strings.Contains(got, "model llama3.2: pulling...") {
		t.Errorf("output = %q, want pulling line", got)
	}
	if !strings.Contains(got, "downloading 50%") {
		t.Errorf("output = %q, want progress percentage", got)
	}
	if !strings.Contains(got, "model llama3.2: ready") {
		t.Errorf("output = %q, want final ready line", got)
	}
}

func TestEnsureModel_PullFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Write(tagsJSON())
		case "/api/pull":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	c := New(srv.URL)
	err := EnsureModel(context.Background(), c, "llama3.2", &out)
	if err == nil {
		t.Fatal("expected error when the pull fails")
	}
	if !strings.Contains(err.Error(), "pulling model llama3.2") {
		t.Errorf("error = %q, want it to name the model", err)
	}
}
