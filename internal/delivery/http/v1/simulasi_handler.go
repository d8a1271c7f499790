package v1

import (
	"net/http"
	"strconv"

	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SimulasiHandler struct {
	simulasiUC domain.SimulasiUsecase
	authUC     domain.AuthUsecase
}

func NewSimulasiHandler(public *gin.RouterGroup, protected *gin.RouterGroup, simulasiUC domain.SimulasiUsecase, authUC domain.AuthUsecase) {
	handler := &SimulasiHandler{simulasiUC: simulasiUC, authUC: authUC}

	// Leaderboards are public
	boards := public.Group("/simulasi")
	{
		boards.GET("/leaderboards", handler.Leaderboards)
		boards.GET("/leaderboard/:categoryId", handler.Leaderboard)
	}

	simulasi := protected.Group("/simulasi")
	{
		simulasi.POST("/submit", handler.Submit)
		simulasi.GET("/my-results", handler.MyResults)
		simulasi.GET("/result/:id", handler.GetResult)
		simulasi.GET("/leaderboard/:categoryId/export", handler.ExportLeaderboard)
	}
}

func limitQuery(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		c.Error(apperror.BadRequest("limit must be between 1 and 100"))
		return 0, false
	}
	return limit, true
}

// Submit godoc
// @Summary      Submit an assessment
// @Description  Store a completed attempt. 80% and above earns a badge and a certificate id.
// @Tags         simulasi
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SubmitRequest  true  "Result"
// @Success      201   {object}  response.Response{data=domain.SimulasiResult}
// @Failure      400   {object}  response.Response
// @Router       /simulasi/submit [post]
// @Security     BearerAuth
func (h *SimulasiHandler) Submit(c *gin.Context) {
	var req domain.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := currentUser(c, h.authUC)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.simulasiUC.Submit(c.Request.Context(), user, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Result submitted", result)
}

// MyResults godoc
// @Summary      My assessment results
// @Tags         simulasi
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.SimulasiResult}
// @Router       /simulasi/my-results [get]
// @Security     BearerAuth
func (h *SimulasiHandler) MyResults(c *gin.Context) {
	results, err := h.simulasiUC.MyResults(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Results retrieved", results)
}

// GetResult godoc
// @Summary      Get one of my results
// @Tags         simulasi
// @Produce      json
// @Param        id   path      string  true  "Result ID"
// @Success      200  {object}  response.Response{data=domain.SimulasiResult}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /simulasi/result/{id} [get]
// @Security     BearerAuth
func (h *SimulasiHandler) GetResult(c *gin.Context) {
	result, err := h.simulasiUC.GetResult(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Result retrieved", result)
}

// Leaderboard godoc
// @Summary      Category leaderboard
// @Description  Best attempt per user, highest percentage first, earlier completion wins ties
// @Tags         simulasi
// @Produce      json
// @Param        categoryId  path      string  true   "Category"
// @Param        limit       query     int     false  "Entries (1-100)"
// @Success      200         {object}  response.Response{data=domain.Leaderboard}
// @Failure      400         {object}  response.Response
// @Router       /simulasi/leaderboard/{categoryId} [get]
func (h *SimulasiHandler) Leaderboard(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	board, err := h.simulasiUC.Leaderboard(c.Request.Context(), c.Param("categoryId"), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Leaderboard retrieved", board)
}

// Leaderboards godoc
// @Summary      All leaderboards
// @Tags         simulasi
// @Produce      json
// @Param        limit  query     int  false  "Entries per category (1-100)"
// @Success      200    {object}  response.Response{data=[]domain.Leaderboard}
// @Router       /simulasi/leaderboards [get]
func (h *SimulasiHandler) Leaderboards(c *gin.Context) {
	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	boards, err := h.simulasiUC.Leaderboards(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Leaderboards retrieved", boards)
}

// ExportLeaderboard godoc
// @Summary      Export a leaderboard
// @Tags         simulasi
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        categoryId  path  string  true  "Category"
// @Success      200         {file}  file
// @Router       /simulasi/leaderboard/{categoryId}/export [get]
// @Security     BearerAuth
func (h *SimulasiHandler) ExportLeaderboard(c *gin.Context) {
	data, filename, err := h.simulasiUC.ExportLeaderboard(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.File(c, filename, xlsxContentType, data)
}
