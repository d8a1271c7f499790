package v1

import (
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// currentUser loads the caller's record; the token only carries id, email and role
func currentUser(c *gin.Context, authUC domain.AuthUsecase) (*domain.User, error) {
	userID := currentUserID(c)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return authUC.GetCurrentUser(c.Request.Context(), userID)
}

func tokenExpiry(c *gin.Context) time.Time {
	v, _ := c.Get(string(domain.KeyTokenExp))
	exp, _ := v.(time.Time)
	return exp
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

func bindPage(c *gin.Context) (domain.Page, bool) {
	var page domain.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		c.Error(apperror.BadRequest("Invalid pagination parameters"))
		return page, false
	}
	return page, true
}

func bindFilter(c *gin.Context) (domain.ApplicationFilter, bool) {
	var filter domain.ApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest("Invalid filter parameters"))
		return filter, false
	}
	return filter, true
}
