package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"book-recommender/backend/internal/agent"
	"book-recommender/backend/internal/agent/history"
	"book-recommender/backend/internal/agent/sanitize"
	"book-recommender/backend/internal/config"
	"book-recommender/backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultSessionCookie names the cookie carrying the session ID
const DefaultSessionCookie = "bookrec_session"

type RecommendRequest struct {
	Genre      string  `json:"genre"`
	Language   string  `json:"language"`
	Region     string  `json:"region"`
	Exclude    string  `json:"exclude"`
	Paragraphs *int    `json:"paragraphs,omitempty" binding:"omitempty,min=1,max=5"`
	SessionID  *string `json:"sessionId,omitempty"`
}

type RecommendResponseDTO struct {
	SessionID      string                `json:"sessionId"`
	Recommendation *model.Recommendation `json:"recommendation"`
	History        []string              `json:"history"`
}

var (
	recommender *agent.Recommender
	agentMu     sync.RWMutex

	sessionCookie = DefaultSessionCookie
	sessionMaxAge = 24 * time.Hour
)

// InitRecommender builds the history store and model client from cfg.
// The returned function releases the store's connections.
func InitRecommender(ctx context.Context, cfg *config.Config) (func() error, error) {
	store, closeStore, err := history.NewStore(ctx, cfg.Session.Backend, history.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		return closeStore, err
	}

	llmClient, err := agent.NewLLMClient(ctx, agent.LLMOptions{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
	})
	if err != nil {
		closeStore()
		return func() error { return nil }, err
	}

	// Cookie settings are fixed before the first request is served
	if cfg.Session.CookieName != "" {
		sessionCookie = cfg.Session.CookieName
	}
	if cfg.Session.TTL > 0 {
		sessionMaxAge = cfg.Session.TTL
	}
	setRecommender(agent.NewRecommender(llmClient, store))

	log.Printf("[INFO] Recommender initialized provider=%s history=%s", cfg.LLM.Provider, cfg.Session.Backend)
	return closeStore, nil
}

// setRecommender replaces the recommender used by the handlers
func setRecommender(r *agent.Recommender) {
	agentMu.Lock()
	defer agentMu.Unlock()
	recommender = r
}

func currentRecommender() *agent.Recommender {
	agentMu.RLock()
	defer agentMu.RUnlock()
	return recommender
}

func HandleRecommend(c *gin.Context) {
	startTime := time.Now()

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "Paragraphs") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "paragraphs must be between 1 and 5",
				"code":  "INVALID_REQUEST",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	rec := currentRecommender()
	if rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	sessionID, ok := resolveSession(c, req.SessionID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "sessionId must be a UUID",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	paragraphs := model.DefaultParagraphs
	if req.Paragraphs != nil {
		paragraphs = *req.Paragraphs
	}
	prefs, err := sanitize.Preferences(req.Genre, req.Language, req.Region, req.Exclude, paragraphs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "INVALID_REQUEST",
		})
		return
	}

	result, err := rec.Recommend(c.Request.Context(), sessionID, prefs)
	if err != nil {
		log.Printf("[PERF] Recommendation failed after %v", time.Since(startTime))
		writeRecommendError(c, err)
		return
	}
	if result != nil {
		log.Printf("[PERF] Recommendation completed in %v", time.Since(startTime))
	}

	c.JSON(http.StatusOK, RecommendResponseDTO{
		SessionID:      sessionID,
		Recommendation: result,
		History:        sessionHistory(c.Request.Context(), rec, sessionID),
	})
}

func HandleGetHistory(c *gin.Context) {
	rec := currentRecommender()
	if rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	sessionID := existingSession(c, c.Query("sessionId"))
	titles := []string{}
	if sessionID != "" {
		titles = sessionHistory(c.Request.Context(), rec, sessionID)
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"history":   titles,
	})
}

type resetRequest struct {
	SessionID string `json:"sessionId"`
}

func HandleResetSession(c *gin.Context) {
	rec := currentRecommender()
	if rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	var req resetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request body",
				"code":  "INVALID_REQUEST",
			})
			return
		}
	}

	sessionID := existingSession(c, req.SessionID)
	if sessionID != "" {
		if err := rec.Reset(c.Request.Context(), sessionID); err != nil {
			log.Printf("[ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to reset session",
				"code":  "INTERNAL_ERROR",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"history":   []string{},
	})
}

// sessionHistory never returns nil so the JSON field is always an array
func sessionHistory(ctx context.Context, rec *agent.Recommender, sessionID string) []string {
	titles, err := rec.History(ctx, sessionID)
	if err != nil {
		log.Printf("[HISTORY] Warning: Failed to load history: %v", err)
	}
	if titles == nil {
		titles = []string{}
	}
	return titles
}

// resolveSession picks the requested ID, then the cookie, then a new ID.
// The cookie is refreshed either way. ok is false for a malformed requested ID.
func resolveSession(c *gin.Context, requested *string) (string, bool) {
	sessionID := ""
	if requested != nil && *requested != "" {
		if !validSessionID(*requested) {
			return "", false
		}
		sessionID = *requested
	}
	if sessionID == "" {
		sessionID = existingSession(c, "")
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
		log.Printf("[SESSION] New session %s", sessionID)
	}
	setSessionCookie(c, sessionID)
	return sessionID, true
}

// existingSession returns the explicit ID or the cookie's, or "" when neither is valid
func existingSession(c *gin.Context, explicit string) string {
	if validSessionID(explicit) {
		return explicit
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil && validSessionID(cookie) {
		return cookie
	}
	return ""
}

func validSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func setSessionCookie(c *gin.Context, sessionID string) {
	secure := c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sessionID, int(sessionMaxAge.Seconds()), "/", "", secure, true)
}

// writeRecommendError maps a recommender failure to a JSON error response
func writeRecommendError(c *gin.Context, err error) {
	httpStatus, code, message := classifyError(err)
	if code == "INVALID_REQUEST" {
		message = err.Error()
	} else {
		log.Printf("[ERROR] Recommendation error: %v", err)
	}
	c.JSON(httpStatus, gin.H{
		"error": message,
		"code":  code,
	})
}

// classifyError returns the HTTP status, error code and user message for err
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, model.ErrParagraphsOutside), errors.Is(err, model.ErrUnknownRegion):
		return http.StatusBadRequest, "INVALID_REQUEST", "Invalid preferences"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "Request timed out. Please try again."
	case isRateLimitError(err):
		log.Printf("[QUOTA] Model API rate limit exceeded")
		return http.StatusTooManyRequests, "MODEL_RATE_LIMITED", "The model is busy. Please try again in a minute."
	case errors.Is(err, agent.ErrModelCall):
		return http.StatusBadGateway, "MODEL_CALL_FAILED", "Failed to generate a recommendation. Please try again."
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate a recommendation. Please try again."
	}
}

// isRateLimitError checks if the error is a model API rate limit error
func isRateLimitError(err error) bool {
	// gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	// String matching for HTTP based SDK errors
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
