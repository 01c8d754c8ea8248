//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_FinderRoundTrip(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://127.0.0.1:8080"), "/")
	token := envOr("E2E_TOKEN", "")
	worldID := envOr("E2E_WORLD_ID", "world")
	item := envOr("E2E_HELD_ITEM", "diamond_pickaxe")
	target := envOr("E2E_TARGET", "diamond_ore")
	client := &http.Client{Timeout: 20 * time.Second}

	now := time.Now().UTC()
	entityID := now.UnixNano() % 1_000_000_000
	// A far-out column keeps runs from seeing each other's edits.
	originX := int(now.Unix()%100000) * 64

	t.Run("place target block", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPut, baseURL+"/api/world/blocks", token, map[string]any{
			"world_id": worldID,
			"edits": []map[string]any{
				{"at": map[string]int{"x": originX + 2, "y": 200, "z": 0}, "material": target},
			},
		})
		if status != http.StatusOK {
			t.Fatalf("set blocks status=%d body=%s", status, string(body))
		}
	})

	t.Run("interact finds the block", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/interact", token, map[string]any{
			"world_id":    worldID,
			"entity_id":   entityID,
			"action":      "left_click_block",
			"held_item":   item,
			"held_amount": 1,
			"game_mode":   "creative",
			"clicked":     map[string]int{"x": originX, "y": 200, "z": 0},
		})
		if status != http.StatusOK {
			t.Fatalf("interact status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal interact: %v body=%s", err, string(body))
		}
		if got := resp["outcome"]; got != "searched" {
			t.Fatalf("expected searched outcome, got %v body=%s", got, string(body))
		}
		if got := asMap(resp["result"])["distance"]; got != float64(2) {
			t.Fatalf("expected distance 2, got %v body=%s", got, string(body))
		}
		if got := resp["band"]; got != "oneblock_hot" && got != "very_hot" {
			t.Fatalf("unexpected band %v", got)
		}
	})

	t.Run("second click is throttled", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/player/interact", token, map[string]any{
			"world_id":  worldID,
			"entity_id": entityID,
			"action":    "left_click_block",
			"held_item": item,
			"clicked":   map[string]int{"x": originX, "y": 200, "z": 0},
		})
		if status != http.StatusOK {
			t.Fatalf("interact status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		_ = json.Unmarshal(body, &resp)
		if got := resp["outcome"]; got != "throttled" && got != "searched" {
			t.Fatalf("unexpected outcome %v", got)
		}
	})

	t.Run("messages history quit kpi", func(t *testing.T) {
		q := "?entity_id=" + strconv.FormatInt(entityID, 10)
		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/player/messages"+q, token, nil)
		if err != nil || status != http.StatusOK {
			t.Fatalf("messages status=%d err=%v body=%s", status, err, string(body))
		}
		var msgs map[string]any
		_ = json.Unmarshal(body, &msgs)
		if len(asSlice(msgs["messages"])) == 0 {
			t.Fatalf("expected at least one message body=%s", string(body))
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/api/player/history"+q+"&limit=10", token, nil)
		if err != nil || status != http.StatusOK {
			t.Fatalf("history status=%d err=%v body=%s", status, err, string(body))
		}
		var hist map[string]any
		_ = json.Unmarshal(body, &hist)
		if len(asSlice(hist["events"])) == 0 {
			t.Fatalf("expected recorded events body=%s", string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/player/quit", token, map[string]any{"entity_id": entityID})
		if status != http.StatusNoContent {
			t.Fatalf("quit status=%d body=%s", status, string(body))
		}

		status, body, err = doRequest(client, http.MethodGet, baseURL+"/ops/kpi", "", nil)
		if err != nil || status != http.StatusOK {
			t.Fatalf("kpi status=%d err=%v body=%s", status, err, string(body))
		}
		var kpi map[string]any
		_ = json.Unmarshal(body, &kpi)
		if _, ok := kpi["search_total"]; !ok {
			t.Fatalf("expected search_total in kpi body=%s", string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url, token string, body any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, token, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url, token string, body any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if strings.TrimSpace(token) != "" {
			req.Header.Set("X-Orefinder-Token", token)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
