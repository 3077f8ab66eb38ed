package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adamwoolhether/apicall/client"
)

func TestHandle_CancelPending(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	defer close(release)

	c, err := client.Build()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	h := client.Get[map[string]any](t.Context(), c, ts.URL, nil)

	if got := h.State(); got != client.HandlePending {
		t.Fatalf("exp pending state, got %v", got)
	}

	if cleared := client.SafeCancel(h); cleared != nil {
		t.Errorf("SafeCancel must return the cleared sentinel, got %v", cleared)
	}

	if got := h.State(); got != client.HandleCancelled {
		t.Errorf("exp cancelled state, got %v", got)
	}

	res, err := h.Wait()
	if res != nil {
		t.Error("cancelled handle must not expose a result")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("exp context.Canceled, got: %v", err)
	}

	// Cancelling again is a safe no-op and still returns the sentinel.
	if cleared := client.SafeCancel(h); cleared != nil {
		t.Errorf("repeat SafeCancel must return nil, got %v", cleared)
	}
}

func TestHandle_CancelRacesSettlement(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="f.bin"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("bytes"))
	}))
	defer ts.Close()

	c, err := client.Build()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	// Collide Cancel with the settlement over and over. Whichever side
	// wins, Wait must yield a result or an error; never neither.
	for range 100 {
		h := client.DownloadFile(t.Context(), c, ts.URL, nil)
		go h.Cancel()

		res, err := h.Wait()
		if res == nil && err == nil {
			t.Fatal("handle settled with neither a result nor an error")
		}
		if res != nil {
			_, _ = res.Data.Body.Wait()
		}
	}
}

func TestSafeCancel_NilHandle(t *testing.T) {
	if cleared := client.SafeCancel[string](nil); cleared != nil {
		t.Errorf("SafeCancel(nil) must return nil, got %v", cleared)
	}
}

func TestHandle_Settled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"body":"done"}`))
	}))
	defer ts.Close()

	c, err := client.Build()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	h := client.Get[payload](t.Context(), c, ts.URL, nil)

	res, err := h.Wait()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got := h.State(); got != client.HandleSettled {
		t.Errorf("exp settled state, got %v", got)
	}

	// Cancel after settlement is a no-op; the result stays observable.
	if cleared := client.SafeCancel(h); cleared != nil {
		t.Errorf("SafeCancel on settled handle must return nil, got %v", cleared)
	}
	if got := h.State(); got != client.HandleSettled {
		t.Errorf("settled handle must not transition to cancelled, got %v", got)
	}

	again, err := h.Wait()
	if err != nil {
		t.Fatalf("expected no error on repeat Wait, got: %v", err)
	}
	if again != res {
		t.Error("repeat Wait must return the same result")
	}
	if res.Data.Body != "done" {
		t.Errorf("exp body %q, got %q", "done", res.Data.Body)
	}
}

func TestHandle_DoneChannel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, err := client.Build()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	h := client.Get[map[string]any](t.Context(), c, ts.URL, nil)

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done channel never closed")
	}

	if got := h.State(); got != client.HandleSettled {
		t.Errorf("exp settled state after Done, got %v", got)
	}
}

func TestHandle_IndependentCalls(t *testing.T) {
	test := mockServer(t)
	defer test.teardown()

	// Concurrent calls share no state; each settles with its own envelope.
	handles := make([]*client.Handle[payload], 5)
	for i := range handles {
		handles[i] = client.Get[payload](t.Context(), test.Client, test.server.URL, nil)
	}

	seen := make(map[string]bool)
	for _, h := range handles {
		res, err := h.Wait()
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if seen[res.Request.ID] {
			t.Errorf("duplicate request id %q across independent calls", res.Request.ID)
		}
		seen[res.Request.ID] = true
	}
}
