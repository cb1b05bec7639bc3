package controllers

import (
	"net/http"

	"github.com/SteveTM-git/decentraart/lib/responses"
	"github.com/SteveTM-git/decentraart/lib/service"
	"github.com/labstack/echo/v4"
)

// UpdateUserController : Update user controller struct
type UpdateUserController struct {
	svc *service.MarketplaceService
}

func NewUpdateUserController(svc *service.MarketplaceService) *UpdateUserController {
	return &UpdateUserController{svc: svc}
}

type UpdateUserResponseBody struct {
	ID          int64 `json:"id"`
	Deactivated bool  `json:"deactivated"`
}
type UpdateUserRequestBody struct {
	ID          int64 `json:"id" validate:"required"`
	Deactivated bool  `json:"deactivated"`
}

// UpdateUser godoc
// @Summary      Update an account
// @Description  Deactivate or reactivate an account. Deactivated accounts cannot authenticate.
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      UpdateUserRequestBody  True  "Update User"
// @Success      200      {object}  UpdateUserResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /v2/admin/users [put]
func (controller *UpdateUserController) UpdateUser(c echo.Context) error {
	var body UpdateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid update user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.UpdateUser(c.Request().Context(), body.ID, body.Deactivated)
	if err != nil {
		c.Logger().Errorf("Failed to update user: user_id:%v error:%v", body.ID, err)
		resp := responses.From(err)
		return c.JSON(resp.HttpStatusCode, resp)
	}

	return c.JSON(http.StatusOK, &UpdateUserResponseBody{
		ID:          user.ID,
		Deactivated: user.Deactivated,
	})
}
