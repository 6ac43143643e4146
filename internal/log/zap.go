package log

import "go.uber.org/zap"

// ZapLogger records events in memory and mirrors each one to a structured zap logger.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

// NewZapLogger wraps z. Extra fields (e.g. a game id) can be attached with z.With before the call.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fields := []zap.Field{
		zap.Int("seq", l.seq),
		zap.Int("turn", event.Turn),
		zap.Int("player", event.Player),
		zap.String("type", event.Type.String()),
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	if event.Amount != 0 {
		fields = append(fields, zap.Int("amount", event.Amount))
	}
	l.z.Debug(event.Details, fields...)
}
