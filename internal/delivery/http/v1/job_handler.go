package v1

import (
	"net/http"

	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Listing only ever returns active jobs
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	companyJobs := protected.Group("/jobs")
	companyJobs.Use(middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin))
	{
		companyJobs.GET("/company/my-jobs", handler.ListMine)
		companyJobs.POST("", handler.Create)
		companyJobs.PUT("/:id", handler.Update)
		companyJobs.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (1-100, default 10)"
// @Success      200    {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Failure      400    {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.jobUC.ListActiveJobs(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// GetDetails godoc
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// ListMine godoc
// @Summary      List my jobs
// @Description  Every posting of the calling company, any status
// @Tags         jobs
// @Produce      json
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Failure      403    {object}  response.Response
// @Router       /jobs/company/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.jobUC.ListCompanyJobs(c.Request.Context(), currentUserID(c), page)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a new job posting (Company only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.Job  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var job domain.Job
	if !bindJSON(c, &job) {
		return
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), currentUserID(c), &job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      domain.Job  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var job domain.Job
	if !bindJSON(c, &job) {
		return
	}
	job.ID = c.Param("id")

	if err := h.jobUC.UpdateJob(c.Request.Context(), currentUserID(c), &job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
