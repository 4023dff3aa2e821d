package logs

import (
	"context"
	"log/slog"
)

type unitKey struct{}

// WithUnit names the compilation unit that records logged under ctx belong to.
func WithUnit(ctx context.Context, unit string) context.Context {
	return context.WithValue(ctx, unitKey{}, unit)
}

// Unit returns the compilation unit stored in ctx, or "".
func Unit(ctx context.Context) string {
	unit, _ := ctx.Value(unitKey{}).(string)
	return unit
}

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if unit := Unit(ctx); unit != "" {
		record.Add("unit", unit)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
