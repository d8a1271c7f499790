package v1

import (
	"net/http"

	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InternshipApplicationHandler struct {
	uc     domain.InternshipApplicationUsecase
	authUC domain.AuthUsecase
}

func NewInternshipApplicationHandler(r *gin.RouterGroup, uc domain.InternshipApplicationUsecase, authUC domain.AuthUsecase) {
	handler := &InternshipApplicationHandler{uc: uc, authUC: authUC}

	applications := r.Group("/internship-applications")
	{
		applications.POST("/apply", handler.Apply)
		applications.GET("/my-applications", handler.GetMyApplications)
		applications.DELETE("/:id/withdraw", handler.Withdraw)
	}

	company := r.Group("/internship-applications")
	company.Use(middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin))
	{
		company.GET("/company", handler.ListForCompany)
		company.GET("/company/stats", handler.CompanyStats)
		company.GET("/company/export", handler.Export)
		company.PUT("/:id/status", handler.UpdateStatus)
	}
}

// internshipFilter binds the shared filter; the posting is addressed as internshipId here
func internshipFilter(c *gin.Context) (domain.ApplicationFilter, bool) {
	filter, ok := bindFilter(c)
	if ok && filter.JobID == "" {
		filter.JobID = c.Query("internshipId")
	}
	return filter, ok
}

// Apply godoc
// @Summary      Apply to an internship
// @Tags         internship-applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.InternshipApplyRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.InternshipApplication}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /internship-applications/apply [post]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) Apply(c *gin.Context) {
	var req domain.InternshipApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := currentUser(c, h.authUC)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.uc.Apply(c.Request.Context(), user, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetMyApplications godoc
// @Summary      Get my internship applications
// @Tags         internship-applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InternshipApplication}
// @Router       /internship-applications/my-applications [get]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) GetMyApplications(c *gin.Context) {
	apps, err := h.uc.GetMyApplications(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// Withdraw godoc
// @Summary      Withdraw an internship application
// @Tags         internship-applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /internship-applications/{id}/withdraw [delete]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.uc.Withdraw(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// ListForCompany godoc
// @Summary      List applicants to my internships
// @Tags         internship-applications
// @Produce      json
// @Param        stage         query     string  false  "Stage"
// @Param        internshipId  query     string  false  "Internship ID"
// @Param        q             query     string  false  "Name, email or skill"
// @Param        minGpa        query     number  false  "Minimum GPA (0-4)"
// @Param        university    query     string  false  "University contains"
// @Success      200           {object}  response.Response{data=[]domain.InternshipApplication}
// @Failure      400           {object}  response.Response
// @Router       /internship-applications/company [get]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) ListForCompany(c *gin.Context) {
	filter, ok := internshipFilter(c)
	if !ok {
		return
	}

	apps, err := h.uc.ListForCompany(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// UpdateStatus godoc
// @Summary      Update internship application status
// @Tags         internship-applications
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Application ID"
// @Param        body  body      domain.StatusChange  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.InternshipApplication}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /internship-applications/{id}/status [put]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) UpdateStatus(c *gin.Context) {
	var change domain.StatusChange
	if !bindJSON(c, &change) {
		return
	}

	app, err := h.uc.UpdateStatus(c.Request.Context(), currentUserID(c), c.Param("id"), change)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// CompanyStats godoc
// @Summary      Internship applicant statistics
// @Tags         internship-applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.InternshipStats}
// @Router       /internship-applications/company/stats [get]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) CompanyStats(c *gin.Context) {
	stats, err := h.uc.CompanyStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internship stats retrieved", stats)
}

// Export godoc
// @Summary      Export applicants
// @Description  Filtered applicants as an xlsx workbook
// @Tags         internship-applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Router       /internship-applications/company/export [get]
// @Security     BearerAuth
func (h *InternshipApplicationHandler) Export(c *gin.Context) {
	filter, ok := internshipFilter(c)
	if !ok {
		return
	}

	data, filename, err := h.uc.Export(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.File(c, filename, xlsxContentType, data)
}
