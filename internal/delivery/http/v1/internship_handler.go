package v1

import (
	"net/http"

	"simhire-backend/internal/delivery/http/middleware"
	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	internshipUC domain.InternshipUsecase
}

func NewInternshipHandler(public *gin.RouterGroup, protected *gin.RouterGroup, internshipUC domain.InternshipUsecase) {
	handler := &InternshipHandler{internshipUC: internshipUC}

	// Listing only ever returns open internships
	publicInternships := public.Group("/internships")
	{
		publicInternships.GET("", handler.List)
		publicInternships.GET("/:id", handler.GetDetails)
	}

	companyInternships := protected.Group("/internships")
	companyInternships.Use(middleware.RequireRole(domain.RoleCompany, domain.RoleAdmin))
	{
		companyInternships.GET("/company/my-internships", handler.ListMine)
		companyInternships.POST("", handler.Create)
		companyInternships.PUT("/:id", handler.Update)
		companyInternships.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List open internships
// @Tags         internships
// @Produce      json
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (1-100, default 10)"
// @Success      200    {object}  response.Response{data=domain.PaginatedResult[domain.Internship]}
// @Failure      400    {object}  response.Response
// @Router       /internships [get]
func (h *InternshipHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.internshipUC.ListOpen(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internships retrieved", result)
}

// GetDetails godoc
// @Summary      Get internship
// @Tags         internships
// @Produce      json
// @Param        id   path      string  true  "Internship ID"
// @Success      200  {object}  response.Response{data=domain.Internship}
// @Failure      404  {object}  response.Response
// @Router       /internships/{id} [get]
func (h *InternshipHandler) GetDetails(c *gin.Context) {
	in, err := h.internshipUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internship retrieved", in)
}

// ListMine godoc
// @Summary      List my internships
// @Description  Every posting of the calling company, any status
// @Tags         internships
// @Produce      json
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=domain.PaginatedResult[domain.Internship]}
// @Failure      403    {object}  response.Response
// @Router       /internships/company/my-internships [get]
// @Security     BearerAuth
func (h *InternshipHandler) ListMine(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.internshipUC.ListByCompany(c.Request.Context(), currentUserID(c), page)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internships retrieved", result)
}

// Create godoc
// @Summary      Create a new internship
// @Description  Create a new internship posting (Company only)
// @Tags         internships
// @Accept       json
// @Produce      json
// @Param        internship  body      domain.Internship  true  "Internship JSON"
// @Success      201  {object}  response.Response{data=domain.Internship}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /internships [post]
// @Security     BearerAuth
func (h *InternshipHandler) Create(c *gin.Context) {
	var in domain.Internship
	if !bindJSON(c, &in) {
		return
	}

	if err := h.internshipUC.Create(c.Request.Context(), currentUserID(c), &in); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Internship created successfully", in)
}

// Update godoc
// @Summary      Update an internship
// @Tags         internships
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Internship ID"
// @Param        internship  body      domain.Internship  true  "Internship JSON"
// @Success      200  {object}  response.Response{data=domain.Internship}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /internships/{id} [put]
// @Security     BearerAuth
func (h *InternshipHandler) Update(c *gin.Context) {
	var in domain.Internship
	if !bindJSON(c, &in) {
		return
	}
	in.ID = c.Param("id")

	if err := h.internshipUC.Update(c.Request.Context(), currentUserID(c), &in); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internship updated successfully", in)
}

// Delete godoc
// @Summary      Delete an internship
// @Tags         internships
// @Produce      json
// @Param        id   path      string  true  "Internship ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /internships/{id} [delete]
// @Security     BearerAuth
func (h *InternshipHandler) Delete(c *gin.Context) {
	if err := h.internshipUC.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Internship deleted successfully", nil)
}
