package logger

import "go.uber.org/zap"

// Campos estándar para logs estructurados del dashboard.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

func UserID(v string) zap.Field     { return zap.String("user_id", v) }
func Role(v string) zap.Field       { return zap.String("role", v) }
func InvoiceID(v string) zap.Field  { return zap.String("invoice_id", v) }
func CustomerID(v string) zap.Field { return zap.String("customer_id", v) }

func Addr(v string) zap.Field      { return zap.String("addr", v) }
func Component(v string) zap.Field { return zap.String("component", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
