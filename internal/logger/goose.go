package logger

// GooseLogger adapts the zap logger to goose's Logger interface.
type GooseLogger struct{}

func NewGooseLogger() *GooseLogger {
	return &GooseLogger{}
}

func (GooseLogger) Fatalf(format string, v ...interface{}) {
	Log.Sugar().Fatalf(format, v...)
}

func (GooseLogger) Printf(format string, v ...interface{}) {
	Log.Sugar().Infof(format, v...)
}
