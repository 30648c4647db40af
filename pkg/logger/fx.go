package logger

import (
	"go.uber.org/fx/fxevent"
)

// FxLogger routes fx lifecycle events through our Logger so dependency
// wiring noise shows up as debug logs instead of fx's own output.
type FxLogger struct {
	logger Logger
}

func NewFxLogger(logger Logger) fxevent.Logger {
	return &FxLogger{logger: logger.With(String("component", "fx"))}
}

func (l *FxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error("OnStart hook failed", String("callee", e.FunctionName), Error(e.Err))
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error("OnStop hook failed", String("callee", e.FunctionName), Error(e.Err))
		}
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("provided", String("constructor", e.ConstructorName), String("type", rtype))
		}
	case *fxevent.Invoking:
		l.logger.Debug("invoking", String("function", e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error("invoke failed", String("function", e.FunctionName), Error(e.Err))
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error("start failed", Error(e.Err))
		} else {
			l.logger.Debug("started")
		}
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error("stop failed", Error(e.Err))
		}
	case *fxevent.RollingBack:
		l.logger.Error("start failed, rolling back", Error(e.StartErr))
	}
}
