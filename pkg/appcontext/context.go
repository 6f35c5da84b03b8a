package appcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextId int

const (
	ruleNameKeyId contextId = iota
	runIdKeyId
	indexNameKeyId
	requestIdKeyId
)

func WithRequestId(ctx context.Context, requestId string) context.Context {
	return context.WithValue(ctx, requestIdKeyId, requestId)
}

func WithRunId(ctx context.Context, runId string) context.Context {
	return context.WithValue(ctx, runIdKeyId, runId)
}

func WithRuleName(ctx context.Context, rule string) context.Context {
	return context.WithValue(ctx, ruleNameKeyId, rule)
}

func WithIndexName(ctx context.Context, index string) context.Context {
	return context.WithValue(ctx, indexNameKeyId, index)
}

func RunIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if runId, ok := ctx.Value(runIdKeyId).(string); ok {
		return runId
	}

	return ""
}

func LoggerFromContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}

	result := logger

	if ctxRuleName, ok := ctx.Value(ruleNameKeyId).(string); ok {
		result = result.WithField("rule", ctxRuleName)
	}

	if ctxRunId, ok := ctx.Value(runIdKeyId).(string); ok && ctxRunId != "" {
		result = result.WithField("run_id", ctxRunId)
	}

	if ctxIndexName, ok := ctx.Value(indexNameKeyId).(string); ok && ctxIndexName != "" {
		result = result.WithField("index", ctxIndexName)
	}

	if ctxRequestId, ok := ctx.Value(requestIdKeyId).(string); ok && ctxRequestId != "" {
		result = result.WithField("request_id", ctxRequestId)
	}

	return result
}
