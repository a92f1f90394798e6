package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SlowQueryThreshold marks SQL spans slower than this with db.slow_query
const SlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db so every statement becomes a
// child span of the request, plus a callback that tags slow and failed
// statements. It is a no-op unless telemetry and DB tracing are enabled.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger, opts ...otelgorm.Option) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts = append([]otelgorm.Option{otelgorm.WithDBName("postgresql")}, opts...)
	if !cfg.DBTraceFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := registerQueryTiming(db, SlowQueryThreshold); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("full_sql", cfg.DBTraceFullSQL),
		zap.Duration("slow_query_threshold", SlowQueryThreshold),
	)
	return nil
}

func registerQueryTiming(db *gorm.DB, threshold time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		annotateQuerySpan(tx, threshold)
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("storefront:timing_before_create", before); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("storefront:timing_before_query", before); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("storefront:timing_before_update", before); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("storefront:timing_before_delete", before); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("storefront:timing_before_row", before); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("storefront:timing_before_raw", before); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register("storefront:timing_after_create", after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("storefront:timing_after_query", after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("storefront:timing_after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("storefront:timing_after_delete", after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("storefront:timing_after_row", after); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("storefront:timing_after_raw", after)
}

// annotateQuerySpan tags the span active in the statement context
func annotateQuerySpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
