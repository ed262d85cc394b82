package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/LeonR92/kafka/internal/cache"
	"github.com/LeonR92/kafka/internal/events"
	"github.com/LeonR92/kafka/internal/models"
	"github.com/LeonR92/kafka/internal/repository"
	"github.com/LeonR92/kafka/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cacheKeyAllItems = "items:all"

func cacheKeyItem(id int64) string {
	return fmt.Sprintf("items:id:%d", id)
}

// ItemHandler serves the item CRUD endpoints. The repository, the event
// publisher and the optional read cache are injected at construction; the
// handler itself holds no persistent state.
type ItemHandler struct {
	logger    *zap.Logger
	repo      repository.ItemRepository
	publisher events.EventPublisher
	cache     cache.Cache // nil when the read cache is disabled
	cacheTTL  time.Duration
	webDir    string
}

func NewItemHandler(logger *zap.Logger, repo repository.ItemRepository, publisher events.EventPublisher, readCache cache.Cache, cacheTTL time.Duration, webDir string) *ItemHandler {
	return &ItemHandler{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		cache:     readCache,
		cacheTTL:  cacheTTL,
		webDir:    webDir,
	}
}

// ShowOrderForm handles GET /order
// @Summary      Order form
// @Description  Serves the static HTML order form
// @Tags         items
// @Produce      html
// @Success      200 {string} string "HTML form"
// @Router       /order [get]
func (h *ItemHandler) ShowOrderForm(c *gin.Context) {
	c.File(filepath.Join(h.webDir, "order.html"))
}

// GetItems handles GET /api/get_items
// @Summary      List all items
// @Description  Returns every stored item in insertion order
// @Tags         items
// @Produce      json
// @Success      200 {array} ItemResponse
// @Router       /api/get_items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
	if h.cache != nil {
		var cached []models.Item
		if err := cache.GetJSON(c.Request.Context(), h.cache, cacheKeyAllItems, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	items, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list items", zap.Error(err))
		h.respondError(c, apierrors.NewDatabaseError("Error fetching items"))
		return
	}

	if h.cache != nil {
		if err := cache.SetJSON(c.Request.Context(), h.cache, cacheKeyAllItems, items, h.cacheTTL); err != nil {
			h.logger.Warn("Failed to cache item list", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/items/:id
// @Summary      Get an item by ID
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "Item ID"
// @Success      200 {object} ItemResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if h.cache != nil {
		var cached models.Item
		if err := cache.GetJSON(c.Request.Context(), h.cache, cacheKeyItem(id), &cached); err == nil {
			c.JSON(http.StatusOK, &cached)
			return
		}
	}

	item, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.respondError(c, apierrors.NewItemNotFound())
			return
		}
		h.logger.Error("Failed to find item", zap.Int64("item_id", id), zap.Error(err))
		h.respondError(c, apierrors.NewDatabaseError("Error fetching item"))
		return
	}

	if h.cache != nil {
		if err := cache.SetJSON(c.Request.Context(), h.cache, cacheKeyItem(id), item, h.cacheTTL); err != nil {
			h.logger.Warn("Failed to cache item", zap.Int64("item_id", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /api/items
// @Summary      Create a new item
// @Description  Creates an item from the order form fields. All missing
// @Description  required fields are reported together in one message.
// @Tags         items
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        first-name   formData  string  true   "Item name"
// @Param        price        formData  number  true   "Unit price"
// @Param        quantity     formData  int     true   "Stock quantity"
// @Param        description  formData  string  false  "Optional description"
// @Success      201 {object} ItemResponse
// @Failure      400 {object} ErrorResponse "Missing or non-numeric fields"
// @Failure      500 {object} ErrorResponse "Store write failed"
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var form CreateItemForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		h.respondError(c, apierrors.NewInvalidDataType())
		return
	}

	// Presence first so every missing field is reported at once, then type
	// coercion, then the store. Invalid input never reaches the store.
	if missing := form.missingFields(); len(missing) > 0 {
		h.respondError(c, apierrors.NewMissingFields(missing))
		return
	}

	quantity, qerr := strconv.Atoi(form.Quantity)
	price, perr := strconv.ParseFloat(form.Price, 64)
	if qerr != nil || perr != nil {
		h.respondError(c, apierrors.NewInvalidDataType())
		return
	}

	item := &models.Item{
		Name:     form.FirstName,
		Quantity: quantity,
		Price:    price,
	}
	if form.Description != "" {
		item.Description = &form.Description
	}

	created, err := h.repo.Create(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("Failed to create item", zap.Error(err))
		h.respondError(c, apierrors.NewDatabaseError("Error creating item"))
		return
	}

	h.invalidateCache(c)
	h.publishEvent(c, events.ItemCreated, created.ID, created.ToDict())

	h.logger.Info("Item created", zap.Int64("item_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// UpdateItem handles PUT /api/items/:id
// @Summary      Update an item
// @Description  Applies a partial update; omitted fields keep their values.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path  int                true  "Item ID"
// @Param        request  body  UpdateItemRequest  true  "Fields to change"
// @Success      200 {object} ItemResponse
// @Failure      400 {object} ErrorResponse "Malformed body"
// @Failure      404 {object} ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("Invalid update body", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.respondError(c, apierrors.NewUpdateFailed())
			return
		}
		h.logger.Error("Failed to update item", zap.Int64("item_id", id), zap.Error(err))
		h.respondError(c, apierrors.NewUpdateFailed())
		return
	}

	h.invalidateCache(c)
	h.publishEvent(c, events.ItemUpdated, updated.ID, updated.ToDict())

	c.JSON(http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/items/:id
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Param        id  path  int  true  "Item ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.respondError(c, apierrors.NewDeletionFailed())
			return
		}
		h.logger.Error("Failed to delete item", zap.Int64("item_id", id), zap.Error(err))
		h.respondError(c, apierrors.NewDeletionFailed())
		return
	}

	h.invalidateCache(c)
	// Deletions carry an empty payload: there is no current snapshot left
	h.publishEvent(c, events.ItemDeleted, id, nil)

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Item %d deleted successfully", id)})
}

// itemID parses the path ID. A non-numeric ID can never name a stored item,
// so it is reported as absence rather than a malformed request.
func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.respondError(c, apierrors.NewItemNotFound())
		return 0, false
	}
	return id, true
}

// publishEvent attempts the change notification exactly once per mutation.
// Delivery is best-effort: the HTTP response already reflects the store
// outcome, so a failed publish is logged and swallowed.
func (h *ItemHandler) publishEvent(c *gin.Context, eventType string, itemID int64, payload map[string]interface{}) {
	event := events.NewEvent(eventType, itemID, payload)
	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event",
			zap.String("event_type", eventType),
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
	}
}

// invalidateCache drops all cached reads after a mutation
func (h *ItemHandler) invalidateCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteByPattern(c.Request.Context(), "items:*"); err != nil {
		h.logger.Warn("Failed to invalidate cache", zap.Error(err))
	}
}

func (h *ItemHandler) respondError(c *gin.Context, err *apierrors.ServiceError) {
	c.JSON(err.HTTPStatus(), err)
}
