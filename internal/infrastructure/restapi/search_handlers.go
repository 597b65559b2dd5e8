package restapi

import (
	"errors"
	"net/http"

	"wallet_searcher/internal/app/port"
	"wallet_searcher/internal/app/service"
	"wallet_searcher/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIStatusResponse — общий ответ для операций без тела результата.
type APIStatusResponse struct {
	Status string `json:"status"`
}

// APIErrorResponse — общий ответ об ошибке.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// APITokenResultsResponse is the body of GET /searches/tokens/results.
type APITokenResultsResponse struct {
	State        SearchState             `json:"state"`
	Rows         []entity.TokenHolding   `json:"rows"`
	WalletTotals entity.WalletAggregates `json:"walletTotals,omitempty"`
}

// APINFTResultsResponse is the body of GET /searches/nfts/results.
type APINFTResultsResponse struct {
	State        SearchState             `json:"state"`
	Rows         []entity.NFTHolding     `json:"rows"`
	WalletCounts entity.WalletAggregates `json:"walletCounts,omitempty"`
}

// SetRPCRequest is the body of PUT /settings/rpc.
type SetRPCRequest struct {
	URL string `json:"url" binding:"required"`
}

// SearchHandler обрабатывает HTTP запросы, связанные с поиском по кошелькам.
type SearchHandler struct {
	batches  port.BatchOrchestrator
	settings port.SettingsProvider
	store    *ResultStore
	logger   port.Logger
}

// NewSearchHandler создает новый экземпляр SearchHandler.
func NewSearchHandler(b port.BatchOrchestrator, sp port.SettingsProvider, store *ResultStore, l port.Logger) *SearchHandler {
	return &SearchHandler{
		batches:  b,
		settings: sp,
		store:    store,
		logger:   l,
	}
}

// StartTokenSearchHandler запускает поиск токенов по списку кошельков.
func (h *SearchHandler) StartTokenSearchHandler(c *gin.Context) {
	var params entity.TokenSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.batches.StartTokenSearch(c.Request.Context(), params); err != nil {
		h.writeStartError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, APIStatusResponse{Status: "started"})
}

// StartNFTSearchHandler запускает поиск NFT по списку кошельков.
func (h *SearchHandler) StartNFTSearchHandler(c *gin.Context) {
	var params entity.NFTSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.batches.StartNFTSearch(c.Request.Context(), params); err != nil {
		h.writeStartError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, APIStatusResponse{Status: "started"})
}

// writeStartError переводит ошибки оркестратора в HTTP статусы:
// 409 — поиск уже идет, 428 — не настроен RPC endpoint, 422 — ошибка
// валидации запроса.
func (h *SearchHandler) writeStartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, APIErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEndpointNotConfigured):
		c.JSON(http.StatusPreconditionRequired, APIErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse{Error: err.Error()})
	}
}

// GetTokenResultsHandler возвращает текущее состояние и результат поиска токенов.
func (h *SearchHandler) GetTokenResultsHandler(c *gin.Context) {
	state, _, rows, totals := h.store.TokenSnapshot()
	if rows == nil {
		rows = []entity.TokenHolding{}
	}
	c.JSON(http.StatusOK, APITokenResultsResponse{State: state, Rows: rows, WalletTotals: totals})
}

// GetNFTResultsHandler возвращает текущее состояние и результат поиска NFT.
func (h *SearchHandler) GetNFTResultsHandler(c *gin.Context) {
	state, _, rows, counts := h.store.NFTSnapshot()
	if rows == nil {
		rows = []entity.NFTHolding{}
	}
	c.JSON(http.StatusOK, APINFTResultsResponse{State: state, Rows: rows, WalletCounts: counts})
}

// GetTokenProgressHandler возвращает прогресс текущего поиска токенов.
func (h *SearchHandler) GetTokenProgressHandler(c *gin.Context) {
	_, progress, _, _ := h.store.TokenSnapshot()
	c.JSON(http.StatusOK, progress)
}

// GetNFTProgressHandler возвращает прогресс текущего поиска NFT.
func (h *SearchHandler) GetNFTProgressHandler(c *gin.Context) {
	_, progress, _, _ := h.store.NFTSnapshot()
	c.JSON(http.StatusOK, progress)
}

// ExportTokenCSVHandler отдает результат поиска токенов в виде CSV файла.
func (h *SearchHandler) ExportTokenCSVHandler(c *gin.Context) {
	_, _, rows, _ := h.store.TokenSnapshot()
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: "no token data to download"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+service.TokenExportFilename+`"`)
	if err := service.WriteTokenCSV(c.Writer, rows); err != nil {
		h.logger.Error("Failed to write token CSV export", "error", err)
	}
}

// ExportNFTCSVHandler отдает результат поиска NFT в виде CSV файла.
func (h *SearchHandler) ExportNFTCSVHandler(c *gin.Context) {
	_, _, rows, _ := h.store.NFTSnapshot()
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: "no NFT data to download"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+service.NFTExportFilename+`"`)
	if err := service.WriteNFTCSV(c.Writer, rows); err != nil {
		h.logger.Error("Failed to write NFT CSV export", "error", err)
	}
}

// SetRPCEndpointHandler проверяет и сохраняет новый RPC endpoint.
func (h *SearchHandler) SetRPCEndpointHandler(c *gin.Context) {
	var req SetRPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.settings.SetEndpoint(c.Request.Context(), req.URL); err != nil {
		c.JSON(http.StatusUnprocessableEntity, APIErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, APIStatusResponse{Status: "ok"})
}
