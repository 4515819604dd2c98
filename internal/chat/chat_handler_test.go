package chat_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capbot/internal/chat"
	"capbot/internal/shared/apperror"
)

type fakeChatService struct {
	ChatFn   func(ctx context.Context, req chat.ChatRequest) (chat.ChatResponse, error)
	HealthFn func(ctx context.Context) chat.HealthResponse
}

func (f *fakeChatService) Chat(ctx context.Context, req chat.ChatRequest) (chat.ChatResponse, error) {
	return f.ChatFn(ctx, req)
}

func (f *fakeChatService) Health(ctx context.Context) chat.HealthResponse {
	return f.HealthFn(ctx)
}

func setupRouter(h *chat.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chat.RegisterRoutes(r.Group("/v1"), h)
	return r
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cacheKeyFor(message string) string {
	sum := sha256.Sum256([]byte(message))
	return "chat:reply:" + hex.EncodeToString(sum[:])
}

func TestChatHandler_Chat(t *testing.T) {
	apperror.Init()

	t.Run("success envelope", func(t *testing.T) {
		svc := &fakeChatService{
			ChatFn: func(_ context.Context, req chat.ChatRequest) (chat.ChatResponse, error) {
				assert.Equal(t, "Olá", req.Message)
				return chat.ChatResponse{Message: "Olá! Como posso ajudar?", Timestamp: time.Now()}, nil
			},
		}
		router := setupRouter(chat.NewHandler(svc))

		w := postChat(t, router, `{"message":"Olá"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var envelope struct {
			Ok   bool              `json:"ok"`
			Data chat.ChatResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.True(t, envelope.Ok)
		assert.Equal(t, "Olá! Como posso ajudar?", envelope.Data.Message)
	})

	t.Run("missing message is a validation error", func(t *testing.T) {
		svc := &fakeChatService{
			ChatFn: func(_ context.Context, _ chat.ChatRequest) (chat.ChatResponse, error) {
				t.Fatal("service must not be called")
				return chat.ChatResponse{}, nil
			},
		}
		router := setupRouter(chat.NewHandler(svc))

		w := postChat(t, router, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var envelope struct {
			Ok    bool `json:"ok"`
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.False(t, envelope.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, envelope.Error.Code)
	})

	t.Run("invalid history role is rejected", func(t *testing.T) {
		svc := &fakeChatService{
			ChatFn: func(_ context.Context, _ chat.ChatRequest) (chat.ChatResponse, error) {
				t.Fatal("service must not be called")
				return chat.ChatResponse{}, nil
			},
		}
		router := setupRouter(chat.NewHandler(svc))

		w := postChat(t, router, `{"message":"oi","conversation_history":[{"role":"system","content":"x"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatHandler_Cache(t *testing.T) {
	apperror.Init()
	fixed := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("miss calls the service and writes through", func(t *testing.T) {
		resp := chat.ChatResponse{Message: "resposta", Timestamp: fixed}
		payload, err := json.Marshal(resp)
		require.NoError(t, err)

		rdb, mock := redismock.NewClientMock()
		key := cacheKeyFor("pergunta")
		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, payload, time.Hour).SetVal("OK")

		calls := 0
		svc := &fakeChatService{
			ChatFn: func(_ context.Context, _ chat.ChatRequest) (chat.ChatResponse, error) {
				calls++
				return resp, nil
			},
		}
		router := setupRouter(chat.NewHandlerWithRedis(svc, rdb))

		w := postChat(t, router, `{"message":"pergunta"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips the service", func(t *testing.T) {
		cached := chat.ChatResponse{Message: "do cache", Timestamp: fixed}
		payload, err := json.Marshal(cached)
		require.NoError(t, err)

		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKeyFor("pergunta")).SetVal(string(payload))

		svc := &fakeChatService{
			ChatFn: func(_ context.Context, _ chat.ChatRequest) (chat.ChatResponse, error) {
				t.Fatal("service must not be called on a cache hit")
				return chat.ChatResponse{}, nil
			},
		}
		router := setupRouter(chat.NewHandlerWithRedis(svc, rdb))

		w := postChat(t, router, `{"message":"pergunta"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "do cache")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requests with history bypass the cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		svc := &fakeChatService{
			ChatFn: func(_ context.Context, _ chat.ChatRequest) (chat.ChatResponse, error) {
				return chat.ChatResponse{Message: "direto", Timestamp: fixed}, nil
			},
		}
		router := setupRouter(chat.NewHandlerWithRedis(svc, rdb))

		w := postChat(t, router, `{"message":"pergunta","conversation_history":[{"role":"user","content":"oi"}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestChatHandler_Health(t *testing.T) {
	svc := &fakeChatService{
		HealthFn: func(_ context.Context) chat.HealthResponse {
			return chat.HealthResponse{
				Status:    "healthy",
				Timestamp: time.Now(),
				Services: map[string]string{
					"record_store": "active",
					"llm_service":  "offline",
					"web_search":   "active",
				},
			}
		},
	}
	router := setupRouter(chat.NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"llm_service":"offline"`)
}
