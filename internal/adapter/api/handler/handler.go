package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tamilsociety/internal/domain/entity"
	ws "tamilsociety/internal/infrastructure/websocket"
	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/errors"
)

var (
	authHandler            *AuthHandler
	orderHandler           *OrderHandler
	catalogHandler         *CatalogHandler
	programHandlers        map[entity.ProgramKind]*ProgramHandler
	contentHandler         *ContentHandler
	paymentSettingsHandler *PaymentSettingsHandler
	fileHandler            *FileHandler
	applicationHandler     *ApplicationHandler
	cartHandler            *CartHandler
	adminHandler           *AdminHandler
	webSocketHandler       *WebSocketHandler
	healthHandler          *HealthHandler
)

// UseCases is everything the handlers are built from.
type UseCases struct {
	Auth            *usecase.AuthUseCase
	Orders          *usecase.OrderUseCase
	Catalog         *usecase.CatalogUseCase
	Programs        []*usecase.ProgramUseCase
	Content         *usecase.WebsiteContentUseCase
	PaymentSettings *usecase.PaymentSettingsUseCase
	Files           *usecase.FileUseCase
	Applications    *usecase.ApplicationUseCase
	Cart            *usecase.CartUseCase
	Dashboard       *usecase.DashboardUseCase
	Activity        *usecase.ActivityUseCase
}

func Setup(uc UseCases, wsManager *ws.Manager, ping func(ctx context.Context) error, secureCookies bool) {
	authHandler = NewAuthHandler(uc.Auth, secureCookies)
	orderHandler = NewOrderHandler(uc.Orders)
	catalogHandler = NewCatalogHandler(uc.Catalog)
	programHandlers = make(map[entity.ProgramKind]*ProgramHandler, len(uc.Programs))
	for _, program := range uc.Programs {
		programHandlers[program.Kind()] = NewProgramHandler(program)
	}
	contentHandler = NewContentHandler(uc.Content)
	paymentSettingsHandler = NewPaymentSettingsHandler(uc.PaymentSettings)
	fileHandler = NewFileHandler(uc.Files)
	applicationHandler = NewApplicationHandler(uc.Applications)
	cartHandler = NewCartHandler(uc.Cart)
	adminHandler = NewAdminHandler(uc.Dashboard, uc.Activity)
	webSocketHandler = NewWebSocketHandler(wsManager)
	healthHandler = NewHealthHandler(ping)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetProgramHandler(kind entity.ProgramKind) *ProgramHandler {
	return programHandlers[kind]
}

func GetContentHandler() *ContentHandler {
	return contentHandler
}

func GetPaymentSettingsHandler() *PaymentSettingsHandler {
	return paymentSettingsHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetApplicationHandler() *ApplicationHandler {
	return applicationHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

// currentUser is set by AccessMiddleware; nil on anonymous requests.
func currentUser(c echo.Context) *entity.User {
	user, _ := c.Get("user").(*entity.User)
	return user
}

func actorID(c echo.Context) primitive.ObjectID {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return primitive.NilObjectID
}

// can reports whether the caller, if any, holds capability.
func can(c echo.Context, capability entity.Capability) bool {
	user := currentUser(c)
	return user != nil && user.Role.Can(capability)
}

func paramID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, errors.BadRequest("Invalid "+name, err)
	}
	return id, nil
}

func boolQuery(c echo.Context, name string) *bool {
	switch c.QueryParam(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

type language struct {
	lang    entity.Language
	present bool
}

func languageFrom(c echo.Context) (language, error) {
	lang, present, err := entity.ParseLanguage(c.QueryParam("lang"))
	if err != nil {
		return language{}, errors.BadRequest("lang must be en or ta", err)
	}
	return language{lang: lang, present: present}, nil
}

// one returns the localized view of item, or item itself when no lang was
// requested.
func (l language) one(item entity.Localizer) interface{} {
	if !l.present {
		return item
	}
	return item.Localize(l.lang)
}

func localizeAll[T entity.Localizer](l language, items []T) interface{} {
	if !l.present {
		return items
	}
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, item.Localize(l.lang))
	}
	return out
}

// formUpload opens a multipart file field. It returns nil without error
// when the field is absent and not required. The caller closes the file.
func formUpload(c echo.Context, field string, required bool) (*usecase.Upload, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if (err == http.ErrMissingFile || err == http.ErrNotMultipart) && !required {
			return nil, nil, nil
		}
		return nil, nil, errors.BadRequest("No "+field+" file provided", err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, errors.BadRequest("Unable to read uploaded file", err)
	}

	return &usecase.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, file, nil
}
