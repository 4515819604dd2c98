package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"capbot/internal/shared/apperror"
	"capbot/internal/shared/response"
)

const cacheTTL = time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Chat answers a single user message. Replies to history-free messages are
// cached by message digest when redis is wired in, since those are the only
// ones that repeat verbatim across users.
func (h *Handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	cacheable := h.rdb != nil && len(req.ConversationHistory) == 0
	cacheKey := chatCacheKey(req.Message)

	if cacheable {
		if raw, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached ChatResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				cached.Timestamp = time.Now()
				response.Success(c, http.StatusOK, cached, nil)
				return
			}
			_ = h.rdb.Del(ctx, cacheKey).Err()
		}
	}

	resp, err := h.service.Chat(ctx, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if cacheable {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			if err := h.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				zap.L().Debug("chat cache write failed", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Health(c *gin.Context) {
	resp := h.service.Health(c.Request.Context())
	response.Success(c, http.StatusOK, resp, nil)
}

func chatCacheKey(message string) string {
	sum := sha256.Sum256([]byte(message))
	return "chat:reply:" + hex.EncodeToString(sum[:])
}
