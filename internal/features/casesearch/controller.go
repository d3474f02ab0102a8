package casesearch

import (
	"context"
	"errors"
	"sync"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/connectors"
	"go-crossroads/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CaseSearchController struct {
	Service CaseSearchService
	Logger  *zap.Logger
}

func NewCaseSearchController(service CaseSearchService, logger *zap.Logger) *CaseSearchController {
	return &CaseSearchController{
		Service: service,
		Logger:  logger.Named("casesearch"),
	}
}

// Search godoc
// @Summary Search cases
// @Description One-shot case lookup by name, number or email
// @Tags case-search
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/case-search [get]
func (ctrl *CaseSearchController) Search(c *fiber.Ctx) error {
	cases, err := ctrl.Service.Search(c.UserContext(), middleware.SessionFrom(c), c.Query("q"))
	if err != nil {
		retryable := errors.Is(err, connectors.ErrUpstreamUnavailable)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     "Failed to search cases",
			"retryable": retryable,
		})
	}
	return c.JSON(fiber.Map{
		"data": cases,
	})
}

// Upgrade only lets websocket handshakes through to HandleWebSocket.
func (ctrl *CaseSearchController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket reads {query} frames and answers each quiet period with
// {seq, query, results} for the latest query only.
func (ctrl *CaseSearchController) HandleWebSocket(conn *websocket.Conn) {
	connID := uuid.NewString()
	session, _ := conn.Locals(string(models.SessionKey)).(models.Session)
	logger := ctrl.Logger.With(zap.String("conn_id", connID), zap.String("user_id", session.UserID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// closed guards conn once the handler returns it to the pool
	var (
		writeMu sync.Mutex
		closed  bool
	)
	defer func() {
		writeMu.Lock()
		closed = true
		writeMu.Unlock()
	}()

	searcher := ctrl.Service.NewSearcher(session, func(r Result) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if closed {
			return
		}
		if err := conn.WriteJSON(r); err != nil {
			logger.Debug("case search write failed", zap.Error(err))
		}
	})
	defer searcher.Close()

	logger.Debug("case search connected")
	for {
		var q Query
		if err := conn.ReadJSON(&q); err != nil {
			logger.Debug("case search closed", zap.Error(err))
			return
		}
		searcher.Submit(ctx, q.Query)
	}
}
