package v1

import (
	"net/http"

	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
	authUC        domain.AuthUsecase
}

// NewApplicationHandler registers job application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, authUC domain.AuthUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC, authUC: authUC}

	applications := r.Group("/applications")
	{
		applications.POST("/apply", handler.Apply)
		applications.GET("/my-applications", handler.GetMyApplications)
		applications.DELETE("/:id/withdraw", handler.Withdraw)
		applications.GET("/stats", handler.Stats)
	}

	company := r.Group("/applications")
	company.Use(middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin))
	{
		company.GET("/company", handler.ListForCompany)
		company.PUT("/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application for an active job (Candidate only, once per job)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := currentUser(c, h.authUC)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), user, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  Get all applications submitted by the current candidate
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Delete one of the caller's applications unless it reached a final stage
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/withdraw [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.applicationUC.Withdraw(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// ListForCompany godoc
// @Summary      List applications to my jobs
// @Description  Applications to the company's jobs, narrowed by the optional filters
// @Tags         applications
// @Produce      json
// @Param        stage       query     string  false  "Stage"
// @Param        jobId       query     string  false  "Job ID"
// @Param        q           query     string  false  "Name, email or skill"
// @Success      200         {object}  response.Response{data=[]domain.Application}
// @Failure      400         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /applications/company [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForCompany(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	applications, err := h.applicationUC.ListForCompany(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Move an application to any stage of the job pipeline (Company only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      domain.StatusChange  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var change domain.StatusChange
	if !bindJSON(c, &change) {
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), currentUserID(c), c.Param("id"), change)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Stats godoc
// @Summary      Application statistics
// @Description  Counts by stage for the company's incoming or the candidate's own applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ApplicationStats}
// @Router       /applications/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	user, err := currentUser(c, h.authUC)
	if err != nil {
		c.Error(err)
		return
	}

	stats, err := h.applicationUC.Stats(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application stats retrieved", stats)
}
