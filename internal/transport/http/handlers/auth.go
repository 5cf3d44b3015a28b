package http_handlers

import (
	"net/http"

	"github.com/baechuer/eventflow/internal/application/auth"
	"github.com/baechuer/eventflow/internal/application/events"
	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/logger"
	"github.com/baechuer/eventflow/internal/transport/http/dto"
	"github.com/baechuer/eventflow/internal/transport/http/middleware"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

const maxUploadBytes = 10 << 20 // 10 MiB form memory cap

type AuthHandler struct {
	svc    *auth.Service
	images events.ImageStorage
}

func NewAuthHandler(svc *auth.Service, images events.ImageStorage) *AuthHandler {
	return &AuthHandler{svc: svc, images: images}
}

// Signup accepts multipart form data: the profile fields plus an optional
// profileImage file. The issued code is echoed in the response (demo).
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.WriteError(w, r, domain.ErrInvalidForm(err))
		return
	}

	req := dto.SignupRequestFromForm(r)
	if err := req.Validate(); err != nil {
		middleware.SignupAttemptsTotal.WithLabelValues("invalid").Inc()
		response.WriteError(w, r, err)
		return
	}

	profileImage := ""
	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		stored, err := h.images.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}
		profileImage = stored
	}

	res, err := h.svc.Signup(r.Context(), auth.SignupInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		ProfileImage: profileImage,
	})
	if err != nil {
		middleware.SignupAttemptsTotal.WithLabelValues("failed").Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.SignupAttemptsTotal.WithLabelValues("started").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("phone", res.Phone).
		Msg("signup_started")

	response.Created(w, dto.SignupData{Phone: res.Phone, Code: res.Code})
}

func (h *AuthHandler) VerifySignup(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifySignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.VerifySignup(r.Context(), req.Phone, req.Code)
	if err != nil {
		middleware.SignupAttemptsTotal.WithLabelValues("invalid_code").Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.SignupAttemptsTotal.WithLabelValues("verified").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("signup_verified")

	response.Created(w, dto.NewAuthData(res.User, res.Tokens))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.NewAuthData(res.User, res.Tokens))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "ok"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "ok"})
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.SendOTPRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	code, err := h.svc.SendOTP(r.Context(), req.Phone)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.OTPData{Phone: req.Phone, Code: code})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), req.Phone, req.Code)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAuthData(res.User, res.Tokens))
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}
