package balance

import "github.com/sirupsen/logrus"

// discardLogger is the fallback used when a Balancer is constructed
// without WithLogger, so call sites never need a nil check (§2.2).
var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}()

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// logRecovery records a malformed-content recovery at Debug level (§7
// category 2). It never affects control flow or output.
func (b *Balancer) logRecovery(reason, tag string, mode insertionMode, stackDepth int) {
	b.log.WithFields(logrus.Fields{
		"tag":         tag,
		"mode":        mode.String(),
		"stack_depth": stackDepth,
	}).Debug(reason)
}
