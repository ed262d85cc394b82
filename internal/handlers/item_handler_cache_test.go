package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LeonR92/kafka/internal/cache"
	"github.com/LeonR92/kafka/internal/events"
	"github.com/LeonR92/kafka/internal/models"
	"github.com/LeonR92/kafka/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCachedStack wires the real in-memory implementations together the
// way main does it: repository, recording publisher and read cache.
func setupCachedStack(t *testing.T) (*events.InMemoryEventPublisher, *gin.Engine) {
	t.Helper()

	repo := repository.NewInMemoryItemRepository()
	publisher := events.NewEventPublisher(zap.NewNop())
	readCache := cache.NewInMemoryCache(zap.NewNop())

	handler := NewItemHandler(zap.NewNop(), repo, publisher, readCache, time.Minute, ".")
	return publisher, setupTestRouter(handler)
}

func getItem(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCachedReads_InvalidatedAfterMutation(t *testing.T) {
	_, router := setupCachedStack(t)

	w := postForm(router, map[string]string{
		"first-name": "Widget",
		"price":      "9.99",
		"quantity":   "3",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// First read populates the cache, second read is served from it
	w = getItem(router, "/api/items/1")
	require.Equal(t, http.StatusOK, w.Code)
	w = getItem(router, "/api/items/1")
	require.Equal(t, http.StatusOK, w.Code)

	// A mutation must invalidate cached reads
	body, _ := json.Marshal(map[string]interface{}{"quantity": 10})
	req, _ := http.NewRequest("PUT", "/api/items/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	putW := httptest.NewRecorder()
	router.ServeHTTP(putW, req)
	require.Equal(t, http.StatusOK, putW.Code)

	w = getItem(router, "/api/items/1")
	require.Equal(t, http.StatusOK, w.Code)
	var after models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(t, 10, after.Quantity)
	assert.Equal(t, "Widget", after.Name)
}

func TestListCache_DoesNotServeDeletedItems(t *testing.T) {
	_, router := setupCachedStack(t)

	for _, name := range []string{"Widget", "Gadget"} {
		w := postForm(router, map[string]string{
			"first-name": name,
			"price":      "1.00",
			"quantity":   "1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := getItem(router, "/api/get_items")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)

	req, _ := http.NewRequest("DELETE", "/api/items/1", nil)
	delW := httptest.NewRecorder()
	router.ServeHTTP(delW, req)
	require.Equal(t, http.StatusOK, delW.Code)

	w = getItem(router, "/api/get_items")
	require.Equal(t, http.StatusOK, w.Code)
	items = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Gadget", items[0].Name)
}

func TestMutations_PublishOneEventEach(t *testing.T) {
	publisher, router := setupCachedStack(t)

	w := postForm(router, map[string]string{
		"first-name": "Widget",
		"price":      "9.99",
		"quantity":   "3",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body, _ := json.Marshal(map[string]interface{}{"name": "Renamed"})
	req, _ := http.NewRequest("PUT", "/api/items/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	putW := httptest.NewRecorder()
	router.ServeHTTP(putW, req)
	require.Equal(t, http.StatusOK, putW.Code)

	req, _ = http.NewRequest("DELETE", "/api/items/1", nil)
	delW := httptest.NewRecorder()
	router.ServeHTTP(delW, req)
	require.Equal(t, http.StatusOK, delW.Code)

	recorded := publisher.Events()
	require.Len(t, recorded, 3)
	assert.Equal(t, events.ItemCreated, recorded[0].EventType)
	assert.Equal(t, events.ItemUpdated, recorded[1].EventType)
	assert.Equal(t, events.ItemDeleted, recorded[2].EventType)
	assert.Empty(t, recorded[2].Payload)
	for _, e := range recorded {
		assert.Equal(t, int64(1), e.ItemID)
	}
}
