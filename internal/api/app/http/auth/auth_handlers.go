// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"hdnotes/internal/api/app/dto"
	"hdnotes/internal/api/app/http/middleware"
	"hdnotes/internal/api/app/http/request"
	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/api/config"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/auth/ports/api"
	"hdnotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSendOTP        = "auth handler: send otp"
	LogHandlerSignup         = "auth handler: signup"
	LogHandlerSignin         = "auth handler: signin"
	LogHandlerGetProfile     = "auth handler: get profile"
	LogHandlerGoogleRedirect = "auth handler: google redirect"
	LogHandlerGoogleCallback = "auth handler: google callback"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения ответов.
const (
	MsgOTPSent              = "OTP sent successfully"
	MsgAccountCreated       = "Account created successfully"
	MsgSignInSuccessful     = "Sign in successful"
	MsgSendOTPFailed        = "Failed to send OTP"
	MsgSignupFailed         = "Signup failed"
	MsgSignInFailed         = "Sign in failed"
	MsgGetProfileFailed     = "Failed to get profile"
	MsgGoogleNotImplemented = "Google sign-in is not implemented"
	MsgGoogleNotConfigured  = "Google sign-in is not configured"
)

var googleScopes = []string{"email", "profile"}

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	responder   *response.Responder
	oauth       *oauth2.Config
}

// NewHandler создает новый экземпляр обработчика авторизации.
// Без GOOGLE_CLIENT_ID или GOOGLE_REDIRECT_URI маршруты Google отвечают 503.
func NewHandler(authUseCase api.AuthUseCase, google config.GoogleConfig, r *response.Responder) *Handler {
	h := &Handler{
		authUseCase: authUseCase,
		responder:   r,
	}
	if google.Configured() {
		h.oauth = &oauth2.Config{
			ClientID:     google.ClientID,
			ClientSecret: google.ClientSecret,
			RedirectURL:  google.RedirectURI,
			Scopes:       googleScopes,
			Endpoint:     endpoints.Google,
		}
	}
	return h
}

// SendOTP начинает регистрацию и отправляет код на email.
func (h *Handler) SendOTP(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSendOTP)

	var req dto.SendOTPRequest
	if err := request.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return h.responder.Message(c, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	err := h.authUseCase.StartSignup(requestCtx, services.SignupRequest{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Password:    req.Password,
	})
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgSendOTPFailed)
	}

	return h.responder.Message(c, fiber.StatusOK, MsgOTPSent)
}

// Signup подтверждает код и создает учетную запись.
func (h *Handler) Signup(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := request.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return h.responder.Message(c, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.CompleteSignup(requestCtx, req.Email, req.OTP)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgSignupFailed)
	}

	return h.responder.JSON(c, fiber.StatusCreated, dto.AuthResponse{
		Message: MsgAccountCreated,
		Token:   result.Token,
		User:    dto.NewUser(result.User),
	})
}

// Signin проверяет учетные данные и выдает токен.
func (h *Handler) Signin(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSignin)

	var req dto.SigninRequest
	if err := request.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return h.responder.Message(c, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.SignIn(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return h.responder.Error(c, err, MsgSignInFailed)
	}

	return h.responder.JSON(c, fiber.StatusOK, dto.AuthResponse{
		Message: MsgSignInSuccessful,
		Token:   result.Token,
		User:    dto.NewUser(result.User),
	})
}

// GetProfile возвращает профиль, загруженный auth middleware.
func (h *Handler) GetProfile(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetProfile)

	current, ok := middleware.CurrentUser(c)
	if !ok {
		return h.responder.Error(c, services.ErrMissingToken, MsgGetProfileFailed)
	}

	return h.responder.JSON(c, fiber.StatusOK, dto.ProfileResponse{User: dto.NewUser(current)})
}

// GoogleRedirect перенаправляет на страницу согласия Google.
func (h *Handler) GoogleRedirect(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGoogleRedirect)

	if h.oauth == nil {
		return h.responder.Message(c, fiber.StatusServiceUnavailable, MsgGoogleNotConfigured)
	}

	url := h.oauth.AuthCodeURL(uuid.NewString())
	return c.Redirect().Status(fiber.StatusFound).To(url)
}

// GoogleCallback не обменивает код на токены; вход через Google не реализован.
func (h *Handler) GoogleCallback(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGoogleCallback)

	if h.oauth == nil {
		return h.responder.Message(c, fiber.StatusServiceUnavailable, MsgGoogleNotConfigured)
	}
	return h.responder.Message(c, fiber.StatusNotImplemented, MsgGoogleNotImplemented)
}
