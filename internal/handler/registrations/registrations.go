package registrations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/api"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	validateRegistration = service.ValidateRegistration
	insertRegistration   = store.InsertRegistration
	listRegistrations    = store.ListRegistrations
	getRegistration      = store.GetRegistration
	updateRegistration   = store.UpdateRegistration
	deleteRegistration   = store.DeleteRegistration
)

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Not found."})
}

// serverError 記錄詳細錯誤，回給用戶端的訊息固定
func serverError(c echo.Context, err error, msg string) error {
	logger.FromContext(c.Request().Context()).Error().Err(err).Msg(msg)
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
}

// parseID id 欄位是 int4，超出範圍的整數不可能存在
func parseID(c echo.Context) (int, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func invalidID(c echo.Context, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return notFound(c)
	}
	return badRequest(c, "Invalid id.")
}

// @Summary     Submit a registration
// @Description 公開的報名表單送出端點
// @Tags        registrations
// @Accept      json
// @Produce     json
// @Param       body body     api.RegistrationRequest true "報名資料"
// @Success     201  {object} api.SavedResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /registrations [post]
func CreateRegistrationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegistrationRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body.")
		}
		r, err := validateRegistration(req)
		if err != nil {
			return badRequest(c, err.Error())
		}

		id, err := insertRegistration(c.Request().Context(), db, &r)
		if err != nil {
			return serverError(c, err, "insert registration failed")
		}
		return c.JSON(http.StatusCreated, api.SavedResponse{Message: "Saved", ID: id})
	}
}

// @Summary     List registrations
// @Description 依建立時間由新到舊
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.RegistrationListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    SessionCookie
// @Router      /admin/registrations [get]
func ListRegistrationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listRegistrations(c.Request().Context(), db)
		if err != nil {
			return serverError(c, err, "list registrations failed")
		}
		return c.JSON(http.StatusOK, api.RegistrationListResponse{Data: list})
	}
}

// @Summary     Get a registration
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "Registration ID"
// @Success     200 {object} api.RegistrationResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    SessionCookie
// @Router      /admin/registrations/{id} [get]
func GetRegistrationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return invalidID(c, err)
		}
		r, err := getRegistration(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c)
		}
		if err != nil {
			return serverError(c, err, "get registration failed")
		}
		return c.JSON(http.StatusOK, api.RegistrationResponse{Data: *r})
	}
}

// @Summary     Update a registration
// @Description 以 body 覆寫所有欄位，id 與 createdAt 不變
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     int                     true "Registration ID"
// @Param       body body     api.RegistrationRequest true "報名資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    SessionCookie
// @Router      /admin/registrations/{id} [put]
func UpdateRegistrationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return invalidID(c, err)
		}
		var req api.RegistrationRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body.")
		}
		r, err := validateRegistration(req)
		if err != nil {
			return badRequest(c, err.Error())
		}

		n, err := updateRegistration(c.Request().Context(), db, id, &r)
		if err != nil {
			return serverError(c, err, "update registration failed")
		}
		if n == 0 {
			return notFound(c)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Updated"})
	}
}

// @Summary     Delete a registration
// @Tags        admin
// @Produce     json
// @Param       id  path     int true "Registration ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    SessionCookie
// @Router      /admin/registrations/{id} [delete]
func DeleteRegistrationHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return invalidID(c, err)
		}
		n, err := deleteRegistration(c.Request().Context(), db, id)
		if err != nil {
			return serverError(c, err, "delete registration failed")
		}
		if n == 0 {
			return notFound(c)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Deleted"})
	}
}
