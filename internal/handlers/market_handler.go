package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockview/internal/logger"
	"stockview/internal/market"
)

// MarketHandler proxies quote requests to the external market-data
// provider.
//
// The transport status is always 200 once the caller is authenticated;
// the outcome lives in the envelope's status field. This decoupling is
// part of the legacy contract and is pinned by tests.
type MarketHandler struct {
	client market.QuoteFetcher
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(client market.QuoteFetcher) *MarketHandler {
	return &MarketHandler{client: client}
}

// MarketEnvelope is the wrapper returned by the proxy endpoint.
type MarketEnvelope struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	StockData interface{} `json:"stock_data,omitempty"`
}

// RetrieveExternalStocks fetches intraday quote data for a symbol and
// returns the provider payload unmodified. Nothing is persisted.
// @Summary     Retrieve external stock data
// @Description Proxy an intraday quote request to the market-data provider
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       name query string true "Ticker symbol"
// @Success     200 {object} MarketEnvelope "Envelope with semantic status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /retrieve-external-stocks [get]
func (h *MarketHandler) RetrieveExternalStocks(c *gin.Context) {
	symbol := c.Query("name")
	if symbol == "" {
		c.JSON(http.StatusOK, MarketEnvelope{
			Status:  http.StatusBadRequest,
			Message: "no stock name provided",
		})
		return
	}

	data, err := h.client.IntradayQuote(c.Request.Context(), symbol)
	if err != nil {
		var statusErr *market.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(http.StatusOK, MarketEnvelope{
				Status:  statusErr.Code,
				Message: "error",
			})
			return
		}

		// Network failure, timeout, or an unparseable body. The failed
		// payload is never referenced.
		logger.Get().Warnw("market data fetch failed",
			"symbol", symbol,
			"error", err.Error(),
		)
		c.JSON(http.StatusOK, MarketEnvelope{
			Status:  http.StatusBadGateway,
			Message: "Server has encountered an error retrieving data",
		})
		return
	}

	c.JSON(http.StatusOK, MarketEnvelope{
		Status:    http.StatusOK,
		Message:   "success",
		StockData: data,
	})
}
