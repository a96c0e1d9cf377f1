package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legalmitra/legalmitra/internal/domain/auth"
	"github.com/legalmitra/legalmitra/internal/domain/chat"
	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

// Uploads above this size are rejected rather than buffered.
const maxAttachmentBytes = 10 << 20

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chatSvc chat.Service
	authSvc auth.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chatSvc chat.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		authSvc: authSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

// Chat resolves one user message against the knowledge base with a
// generative fallback. It accepts either a JSON body or a multipart form
// with optional audio/file attachments.
func (h *Handler) Chat(c *gin.Context) {
	req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}

	resp, err := h.chatSvc.Resolve(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		switch apperrors.CodeOf(err) {
		case "invalid_input":
			status = http.StatusBadRequest
			code = "invalid_request"
		case "llm_error":
			status = http.StatusBadGateway
			code = "llm_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Trending returns the most common chat queries.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.chatSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chat_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	view, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		h.abortAuthError(c, err, "signup_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully.", "user": view})
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		h.abortAuthError(c, err, "login_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForgotPassword issues a password reset link.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	message, err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.abortAuthError(c, err, "forgot_password_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ValidateReset checks a reset token before showing the reset form.
func (h *Handler) ValidateReset(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")
	if err := h.authSvc.ValidateReset(c.Request.Context(), email, token); err != nil {
		if apperrors.IsCode(err, "invalid_token") {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": gin.H{"code": "invalid_token", "message": "invalid or expired token"}})
			return
		}
		h.abortAuthError(c, err, "validate_reset_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// ResetPassword completes a reset.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if err := h.authSvc.ResetPassword(c.Request.Context(), req); err != nil {
		h.abortAuthError(c, err, "reset_password_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful. Please login."})
}

// Refresh exchanges a refresh token for a new pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.abortAuthError(c, err, "refresh_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated account.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing claims", nil))
		return
	}
	view, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.abortAuthError(c, err, "profile_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindChatRequest(c *gin.Context) (chat.Request, bool) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		var req chat.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return chat.Request{}, false
		}
		return req, true
	}

	req := chat.Request{Message: c.PostForm("message")}
	audio, ok := h.readUpload(c, "audio")
	if !ok {
		return chat.Request{}, false
	}
	req.Audio = audio
	file, ok := h.readUpload(c, "file")
	if !ok {
		return chat.Request{}, false
	}
	req.File = file
	return req, true
}

func (h *Handler) readUpload(c *gin.Context, field string) (*chat.Attachment, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		// Absent field is fine; only a malformed form is an error.
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed multipart form", err))
		return nil, false
	}
	if header.Size > maxAttachmentBytes {
		abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "attachment_too_large", "attachment exceeds size limit", nil))
		return nil, false
	}
	f, err := header.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read attachment", err))
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxAttachmentBytes))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read attachment", err))
		return nil, false
	}
	return &chat.Attachment{
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Data: data,
	}, true
}

func (h *Handler) abortAuthError(c *gin.Context, err error, fallbackCode string) {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch appCode := apperrors.CodeOf(err); appCode {
	case "invalid_input":
		status = http.StatusBadRequest
		code = "invalid_request"
	case "email_exists":
		status = http.StatusBadRequest
		code = appCode
	case "invalid_credentials":
		status = http.StatusUnauthorized
		code = appCode
	case "invalid_token":
		status = http.StatusBadRequest
		code = appCode
	case "user_not_found":
		status = http.StatusNotFound
		code = appCode
	case "mail_error":
		status = http.StatusBadGateway
		code = appCode
	}
	abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
