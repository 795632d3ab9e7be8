package log

// Null returns a Logger that discards everything, for tests and for
// embedders that want silence.
func Null() Logger {
	return &nullLogger{}
}

type nullLogger struct{}

func (*nullLogger) Infof(string, ...interface{})  {}
func (*nullLogger) Warnf(string, ...interface{})  {}
func (*nullLogger) Errorf(string, ...interface{}) {}
func (*nullLogger) Debugf(string, ...interface{}) {}
