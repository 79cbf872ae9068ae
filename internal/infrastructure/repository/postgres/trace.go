package postgres

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxTracedQueryLength = 512

var (
	pgTracer             = otel.Tracer("the-gaffer/internal/infrastructure/repository/postgres")
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
)

func startQuerySpan(ctx context.Context, name, query string) (context.Context, trace.Span) {
	return pgTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.statement", formatQueryForTrace(query)),
		),
	)
}

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
