package zap

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/promptsmith"
	"go.uber.org/zap"
)

// Interface compliance check.
var _ promptsmith.Generator = (*Generator)(nil)

// Generator logs every upstream call made through the wrapped generator.
// The credential and the task text are never logged.
type Generator struct {
	next   promptsmith.Generator
	logger *zap.Logger
	model  string
}

// NewGenerator wraps next. model is recorded on each log entry.
func NewGenerator(next promptsmith.Generator, logger *zap.Logger, model string) *Generator {
	return &Generator{next: next, logger: logger, model: model}
}

func (g *Generator) Generate(ctx context.Context, req promptsmith.GenerationRequest, credential string) (string, error) {
	start := time.Now()
	raw, err := g.next.Generate(ctx, req, credential)

	fields := []zap.Field{
		zap.String("model", g.model),
		zap.Int("instruction_version", promptsmith.InstructionVersion),
		zap.String("role", req.Role),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		fields = append(fields, zap.String("kind", promptsmith.KindOf(err).String()))
		var e *promptsmith.Error
		if errors.As(err, &e) && e.Status != 0 {
			fields = append(fields, zap.Int("status", e.Status))
		}
		g.logger.Warn("Generate failed", append(fields, zap.Error(err))...)
		return "", err
	}
	g.logger.Info("Generate succeeded", append(fields, zap.Int("reply_bytes", len(raw)))...)
	return raw, nil
}
