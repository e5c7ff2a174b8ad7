package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/promptsmith"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type generateRequest struct {
	Role string `json:"role"`
	Task string `json:"task"`
}

type generateResponse struct {
	Prompt        string `json:"prompt"`
	ToolName      string `json:"tool_name"`
	ToolReasoning string `json:"tool_reasoning"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, &promptsmith.Error{Kind: promptsmith.KindLocalValidation, Detail: "Request body must be JSON with role and task.", Err: err})
		return
	}

	keys := promptsmith.NewKeyring()
	keys.Set(c.GetHeader(KeyHeader))
	credential, _ := keys.Get()
	role, task := strings.TrimSpace(req.Role), strings.TrimSpace(req.Task)
	switch {
	case role == "" || task == "":
		s.fail(c, promptsmith.ErrMissingInput)
		return
	case credential == "":
		s.fail(c, promptsmith.ErrNoCredential)
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		s.fail(c, &promptsmith.Error{
			Kind:   promptsmith.KindRateLimited,
			Status: http.StatusTooManyRequests,
			Detail: fmt.Sprintf("this server allows %d requests per minute", s.perMinute),
		})
		return
	}

	// Identical submissions in flight share one upstream call. Detached
	// from the request context so one caller leaving does not fail the rest.
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, shared := s.flight.Do(credential+"\x00"+role+"\x00"+task, func() (any, error) {
		return s.generate(ctx, keys, role, task)
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	res := v.(promptsmith.Result)
	s.logger.Info("Generated prompt",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("tool", res.ToolName),
		zap.Bool("shared", shared),
	)
	c.JSON(http.StatusOK, generateResponse{
		Prompt:        res.Prompt,
		ToolName:      res.ToolName,
		ToolReasoning: res.ToolReasoning,
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	kind := promptsmith.KindOf(err)
	s.logger.Warn("Generate request failed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)
	c.JSON(statusFor(kind), errorResponse{
		Error: promptsmith.ErrorMessage(err),
		Kind:  kind.String(),
	})
}

// statusFor maps an error kind to the HTTP status returned to the page.
func statusFor(kind promptsmith.ErrorKind) int {
	switch kind {
	case promptsmith.KindLocalValidation, promptsmith.KindBadRequest:
		return http.StatusBadRequest
	case promptsmith.KindAuthFailure:
		return http.StatusForbidden
	case promptsmith.KindRateLimited:
		return http.StatusTooManyRequests
	case promptsmith.KindEmptyReply, promptsmith.KindMalformedReply,
		promptsmith.KindNetworkFailure, promptsmith.KindUnknownServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
