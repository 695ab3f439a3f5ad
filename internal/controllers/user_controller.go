package controllers

import (
	"net/http"
	"strconv"

	"technext-be/internal/middleware"
	"technext-be/internal/models"
	"technext-be/internal/response"
	"technext-be/internal/service"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles POST /api/v1/users
func (uc *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := uc.userService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "User created successfully", user)
}

// GetAllUsers handles GET /api/v1/users
func (uc *UserController) GetAllUsers(c *gin.Context) {
	filter := &models.UserFilter{
		SearchTerm:    c.Query("searchTerm"),
		Email:         c.Query("email"),
		Country:       c.Query("country"),
		ContactNumber: c.Query("contactNumber"),
		TimeRange:     c.Query("timeRange"),
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	opts := &models.PaginationOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	result, err := uc.userService.List(c.Request.Context(), filter, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Users fetched successfully", result)
}

// GetUserByID handles GET /api/v1/users/:id
func (uc *UserController) GetUserByID(c *gin.Context) {
	user, err := uc.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "User fetched successfully", user)
}

// GetMyProfile handles GET /api/v1/users/my-profile
func (uc *UserController) GetMyProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := uc.userService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "My profile retrieved successfully", user)
}

// UpdateUser handles PATCH /api/v1/users/update. The body is multipart form
// data with the patch fields plus an optional profileImage file.
func (uc *UserController) UpdateUser(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Image is optional; a missing file is not an error.
	file, err := c.FormFile("profileImage")
	if err != nil {
		file = nil
	}

	user, err := uc.userService.Update(c.Request.Context(), userID, &req, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "User profile updated successfully", user)
}

// DeleteMyAccount handles PATCH /api/v1/users/my-account. The account is
// soft-deleted and the session cookie cleared by this handler, not the service.
func (uc *UserController) DeleteMyAccount(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := uc.userService.Deactivate(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	response.OK(c, http.StatusOK, "My account deleted successfully", nil)
}
