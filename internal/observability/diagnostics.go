package observability

import (
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/param"
)

// GestureDiagnostics writes validation checkpoints to a logger at debug
// level. Failed checks are the interesting ones, so passing checks are
// only logged when Verbose is set.
type GestureDiagnostics struct {
	logger  *zap.Logger
	Verbose bool
}

// NewGestureDiagnostics returns diagnostics logging to logger.
func NewGestureDiagnostics(logger *zap.Logger) *GestureDiagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GestureDiagnostics{logger: logger.Named("diagnostics")}
}

var _ gesture.Diagnostics = (*GestureDiagnostics)(nil)

// ParametersSelected implements gesture.Diagnostics.
func (d *GestureDiagnostics) ParametersSelected(name string, which gesture.ParameterSet) {
	if !d.Verbose {
		return
	}
	d.logger.Debug("validating",
		zap.String("gesture", name),
		zap.String("parameters", string(which)))
}

// ParameterChecked implements gesture.Diagnostics.
func (d *GestureDiagnostics) ParameterChecked(name string, c param.Check) {
	if c.Passed && !d.Verbose {
		return
	}
	fields := []zap.Field{
		zap.String("gesture", name),
		zap.String("timespan", string(c.Timespan)),
		zap.String("key", string(c.Key)),
		zap.Stringer("spec", c.Spec),
		zap.Stringer("value", c.Value),
		zap.Bool("passed", c.Passed),
	}
	if !c.Found {
		// Not computed by the input at all: a gesture configuration bug.
		d.logger.Warn("parameter not provided by input", fields...)
		return
	}
	d.logger.Debug("parameter checked", fields...)
}

// StateChanged implements gesture.Diagnostics.
func (d *GestureDiagnostics) StateChanged(name string, from, to gesture.State) {
	d.logger.Debug("gesture state changed",
		zap.String("gesture", name),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
}
